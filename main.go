package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/courselight/courselight/internal/adapters/cache"
	"github.com/courselight/courselight/internal/adapters/database"
	"github.com/courselight/courselight/internal/adapters/upstream"
	"github.com/courselight/courselight/internal/adapters/visitrepository"
	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/config"
	"github.com/courselight/courselight/internal/logging"
	"github.com/courselight/courselight/internal/ports"
	"github.com/courselight/courselight/internal/reporting"
	"github.com/courselight/courselight/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "courselight.app"
const STAGING_DOMAIN_SUFFIX = "courselight.pages.dev"

// Upstream request budget shared by all callers
const upstreamRequestLimit = 480
const upstreamRequestWindow = 1 * time.Minute

const pendingPollInterval = 30 * time.Second

func main() {
	instanceID := uuid.New().String()
	logger := slog.New(
		logging.NewTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil)),
	).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.SetupOTelSDK(ctx, "courselight")
	if err != nil {
		fail("Failed to initialize telemetry", "error", err.Error())
	}
	defer shutdownTelemetry(context.Background())

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	store := cachestore.New()
	defer store.Teardown()

	httpClient := upstream.NewLimitedHTTPClient(
		&http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		upstreamRequestLimit,
		upstreamRequestWindow,
	)
	upstreamClient := upstream.NewClient(store, config.UpstreamAPIURL(), httpClient)
	logger.Info("Initialized upstream client", "url", config.UpstreamAPIURL())

	logger.Info("Initializing database connection")
	db, err := database.NewConfiguredPostgresDatabase(config)
	if err != nil {
		fail("Failed to initialize database connection", "error", err.Error())
	}
	logger.Info("Initialized database connection")

	schemaName := database.GetSchemaName(!config.IsProduction())

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(context.Background(), schemaName)
	if err != nil {
		fail("Failed to migrate database", "error", err.Error())
	}

	visitRepo := visitrepository.NewPostgresVisitRepository(db, schemaName)
	logger.Info("Initialized VisitRepository")

	overviewCache := cache.NewTTLOverviewCache(1 * time.Minute)

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX, STAGING_DOMAIN_SUFFIX)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	getPublishedCourses := app.BuildGetPublishedCourses(upstreamClient)
	checkAccess := app.BuildCheckAccess(upstreamClient)
	getCourseContent := app.BuildGetCourseContent(upstreamClient, checkAccess)
	registerVisit := app.BuildRegisterVisit(visitRepo, time.Now)

	enrollFree := app.BuildEnrollFree(upstreamClient)
	requestAccess := app.BuildRequestAccess(upstreamClient)
	approveEnrollment := app.BuildApproveEnrollment(upstreamClient)
	rejectEnrollment := app.BuildRejectEnrollment(upstreamClient)
	revokeEnrollment := app.BuildRevokeEnrollment(upstreamClient)
	getAllEnrollments := app.BuildGetAllEnrollments(upstreamClient)
	getPendingEnrollments := app.BuildGetPendingEnrollments(upstreamClient)

	addLecture := app.BuildAddLecture(upstreamClient)
	updateLecture := app.BuildUpdateLecture(upstreamClient)
	deleteLecture := app.BuildDeleteLecture(upstreamClient)

	getArticles := app.BuildGetArticles(upstreamClient)
	createArticle := app.BuildCreateArticle(upstreamClient)
	updateArticle := app.BuildUpdateArticle(upstreamClient)
	deleteArticle := app.BuildDeleteArticle(upstreamClient)
	getPlacements := app.BuildGetPlacements(upstreamClient)
	createPlacement := app.BuildCreatePlacement(upstreamClient)
	deletePlacement := app.BuildDeletePlacement(upstreamClient)
	getContacts := app.BuildGetContacts(upstreamClient)
	deleteContact := app.BuildDeleteContact(upstreamClient)
	createEnquiry := app.BuildCreateEnquiry(upstreamClient)

	getUsers := app.BuildGetUsers(upstreamClient)
	updateUserRole := app.BuildUpdateUserRole(upstreamClient)
	deleteUser := app.BuildDeleteUser(upstreamClient)

	getStatsOverview := app.BuildGetStatsOverview(overviewCache, upstreamClient, visitRepo, time.Now)

	watchPending := app.BuildWatchPendingEnrollments(upstreamClient, pendingPollInterval)

	var pendingCount atomic.Int64
	watchCtx := logging.AddToContext(ctx, logger.With("component", "pendingwatcher"))
	unsubscribePending, err := watchPending(watchCtx, func(count int) {
		pendingCount.Store(int64(count))
	})
	if err != nil {
		fail("Failed to start pending enrollment watcher", "error", err.Error())
	}
	defer unsubscribePending()
	logger.Info("Started pending enrollment watcher")

	registerCORS := func(pattern string) {
		http.HandleFunc("OPTIONS "+pattern, ports.BuildCORSHandler(allowedOrigins))
	}

	registerCORS("/v1/courses")
	http.HandleFunc(
		"GET /v1/courses",
		ports.MakeGetPublishedCoursesHandler(getPublishedCourses, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/courses/{courseId}/content")
	http.HandleFunc(
		"GET /v1/courses/{courseId}/content",
		ports.MakeGetCourseContentHandler(getCourseContent, registerVisit, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/courses/{courseId}/access")
	http.HandleFunc(
		"GET /v1/courses/{courseId}/access",
		ports.MakeCheckAccessHandler(checkAccess, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/courses/{courseId}/enroll")
	http.HandleFunc(
		"POST /v1/courses/{courseId}/enroll",
		ports.MakeEnrollFreeHandler(enrollFree, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/courses/{courseId}/request-access")
	http.HandleFunc(
		"POST /v1/courses/{courseId}/request-access",
		ports.MakeRequestAccessHandler(requestAccess, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/courses/{courseId}/lectures")
	http.HandleFunc(
		"POST /v1/courses/{courseId}/lectures",
		ports.MakeSaveLectureHandler(addLecture, "add-lecture", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/courses/{courseId}/lectures/{id}")
	http.HandleFunc(
		"PUT /v1/courses/{courseId}/lectures/{id}",
		ports.MakeSaveLectureHandler(updateLecture, "update-lecture", allowedOrigins, logger, sentryMiddleware),
	)
	http.HandleFunc(
		"DELETE /v1/courses/{courseId}/lectures/{id}",
		ports.MakeDeleteLectureHandler(deleteLecture, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/enrollments")
	http.HandleFunc(
		"GET /v1/enrollments",
		ports.MakeGetEnrollmentsHandler(getAllEnrollments, "enrollments", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/enrollments/pending")
	http.HandleFunc(
		"GET /v1/enrollments/pending",
		ports.MakeGetEnrollmentsHandler(getPendingEnrollments, "pending-enrollments", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/enrollments/pending/count")
	http.HandleFunc(
		"GET /v1/enrollments/pending/count",
		ports.MakeGetPendingCountHandler(
			func() int { return int(pendingCount.Load()) },
			allowedOrigins,
			logger,
			sentryMiddleware,
		),
	)

	registerCORS("/v1/enrollments/{id}/approve")
	http.HandleFunc(
		"POST /v1/enrollments/{id}/approve",
		ports.MakeDecideEnrollmentHandler(approveEnrollment, "approve", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/enrollments/{id}/reject")
	http.HandleFunc(
		"POST /v1/enrollments/{id}/reject",
		ports.MakeDecideEnrollmentHandler(rejectEnrollment, "reject", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/enrollments/{id}/revoke")
	http.HandleFunc(
		"POST /v1/enrollments/{id}/revoke",
		ports.MakeDecideEnrollmentHandler(revokeEnrollment, "revoke", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/articles")
	http.HandleFunc(
		"GET /v1/articles",
		ports.MakeGetArticlesHandler(getArticles, allowedOrigins, logger, sentryMiddleware),
	)
	http.HandleFunc(
		"POST /v1/articles",
		ports.MakeSaveArticleHandler(createArticle, "create-article", allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/articles/{id}")
	http.HandleFunc(
		"PUT /v1/articles/{id}",
		ports.MakeSaveArticleHandler(updateArticle, "update-article", allowedOrigins, logger, sentryMiddleware),
	)
	http.HandleFunc(
		"DELETE /v1/articles/{id}",
		ports.MakeDeleteArticleHandler(deleteArticle, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/placements")
	http.HandleFunc(
		"GET /v1/placements",
		ports.MakeGetPlacementsHandler(getPlacements, allowedOrigins, logger, sentryMiddleware),
	)
	http.HandleFunc(
		"POST /v1/placements",
		ports.MakeCreatePlacementHandler(createPlacement, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/placements/{id}")
	http.HandleFunc(
		"DELETE /v1/placements/{id}",
		ports.MakeDeletePlacementHandler(deletePlacement, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/contacts")
	http.HandleFunc(
		"GET /v1/contacts",
		ports.MakeGetContactsHandler(getContacts, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/contacts/{id}")
	http.HandleFunc(
		"DELETE /v1/contacts/{id}",
		ports.MakeDeleteContactHandler(deleteContact, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/enquiries")
	http.HandleFunc(
		"POST /v1/enquiries",
		ports.MakeCreateEnquiryHandler(createEnquiry, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/users")
	http.HandleFunc(
		"GET /v1/users",
		ports.MakeGetUsersHandler(getUsers, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/users/{id}/role")
	http.HandleFunc(
		"PATCH /v1/users/{id}/role",
		ports.MakeUpdateUserRoleHandler(updateUserRole, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/users/{id}")
	http.HandleFunc(
		"DELETE /v1/users/{id}",
		ports.MakeDeleteUserHandler(deleteUser, allowedOrigins, logger, sentryMiddleware),
	)

	registerCORS("/v1/stats/overview")
	http.HandleFunc(
		"GET /v1/stats/overview",
		ports.MakeGetStatsOverviewHandler(getStatsOverview, allowedOrigins, logger, sentryMiddleware),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), nil)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
