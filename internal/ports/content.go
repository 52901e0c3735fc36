package ports

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/courselight/courselight/internal/app"
	"github.com/courselight/courselight/internal/domain"
)

type articlePayload struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}

type placementPayload struct {
	ID          string    `json:"id,omitempty"`
	StudentName string    `json:"studentName"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	PlacedAt    time.Time `json:"placedAt,omitempty"`
}

type contactPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type enquiryPayload struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	CourseID string `json:"courseId"`
}

func contentRateLimits() rateLimits {
	return rateLimits{
		ipRefillPerSecond:      4,
		ipBurstSize:            120,
		sessionRefillPerSecond: 2,
		sessionBurstSize:       60,
	}
}

func MakeGetArticlesHandler(
	getArticles app.GetArticles,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("articles", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := requestContext(r)

		articles, err := getArticles(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		payloads := make([]articlePayload, 0, len(articles))
		for _, article := range articles {
			payloads = append(payloads, articlePayload{
				ID:          article.ID,
				Title:       article.Title,
				Body:        article.Body,
				Published:   article.Published,
				PublishedAt: article.PublishedAt,
			})
		}
		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "articles": payloads})
	})
}

func MakeSaveArticleHandler(
	saveArticle app.SaveArticle,
	port string,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware(port, allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		var payload articlePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "invalid request body"})
			return
		}
		if payload.Title == "" {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "title is required"})
			return
		}

		if id := r.PathValue("id"); id != "" {
			payload.ID = id
		}

		article, err := saveArticle(ctx, session, domain.Article{
			ID:          payload.ID,
			Title:       payload.Title,
			Body:        payload.Body,
			Published:   payload.Published,
			PublishedAt: payload.PublishedAt,
		})
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "article": articlePayload{
			ID:          article.ID,
			Title:       article.Title,
			Body:        article.Body,
			Published:   article.Published,
			PublishedAt: article.PublishedAt,
		}})
	})
}

func MakeDeleteArticleHandler(
	deleteArticle app.DeleteArticle,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("delete-article", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		if err := deleteArticle(ctx, session, r.PathValue("id")); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}

func MakeGetPlacementsHandler(
	getPlacements app.GetPlacements,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("placements", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := requestContext(r)

		placements, err := getPlacements(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		payloads := make([]placementPayload, 0, len(placements))
		for _, placement := range placements {
			payloads = append(payloads, placementPayload{
				ID:          placement.ID,
				StudentName: placement.StudentName,
				Company:     placement.Company,
				Role:        placement.Role,
				PlacedAt:    placement.PlacedAt,
			})
		}
		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "placements": payloads})
	})
}

func MakeCreatePlacementHandler(
	createPlacement app.SavePlacement,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("create-placement", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		var payload placementPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "invalid request body"})
			return
		}

		placement, err := createPlacement(ctx, session, domain.Placement{
			StudentName: payload.StudentName,
			Company:     payload.Company,
			Role:        payload.Role,
			PlacedAt:    payload.PlacedAt,
		})
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "placement": placementPayload{
			ID:          placement.ID,
			StudentName: placement.StudentName,
			Company:     placement.Company,
			Role:        placement.Role,
			PlacedAt:    placement.PlacedAt,
		}})
	})
}

func MakeDeletePlacementHandler(
	deletePlacement app.DeletePlacement,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("delete-placement", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		if err := deletePlacement(ctx, session, r.PathValue("id")); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}

func MakeGetContactsHandler(
	getContacts app.GetContacts,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("contacts", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		contacts, err := getContacts(ctx, session)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		payloads := make([]contactPayload, 0, len(contacts))
		for _, contact := range contacts {
			payloads = append(payloads, contactPayload{
				ID:        contact.ID,
				Name:      contact.Name,
				Email:     contact.Email,
				Message:   contact.Message,
				CreatedAt: contact.CreatedAt,
			})
		}
		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "contacts": payloads})
	})
}

func MakeDeleteContactHandler(
	deleteContact app.DeleteContact,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := standardMiddleware("delete-contact", allowedOrigins, rootLogger, sentryMiddleware, contentRateLimits())

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, session := requestContext(r)

		if err := deleteContact(ctx, session, r.PathValue("id")); err != nil {
			writeError(ctx, w, err)
			return
		}
		writeJSON(ctx, w, http.StatusOK, errorResponse{Success: true})
	})
}

func MakeCreateEnquiryHandler(
	createEnquiry app.CreateEnquiry,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	// The public enquiry form is the most abuse-prone endpoint
	middleware := standardMiddleware("create-enquiry", allowedOrigins, rootLogger, sentryMiddleware, rateLimits{
		ipRefillPerSecond:      1,
		ipBurstSize:            10,
		sessionRefillPerSecond: 1,
		sessionBurstSize:       10,
	})

	return middleware(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := requestContext(r)

		var payload enquiryPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "invalid request body"})
			return
		}
		if payload.Name == "" {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "name is required"})
			return
		}
		if payload.Email == "" && payload.Phone == "" {
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Success: false, Cause: "an email or phone number is required"})
			return
		}

		enquiry, err := createEnquiry(ctx, domain.Enquiry{
			Name:     payload.Name,
			Email:    payload.Email,
			Phone:    payload.Phone,
			CourseID: payload.CourseID,
		})
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		writeJSON(ctx, w, http.StatusOK, map[string]any{"success": true, "enquiry": enquiryPayload{
			ID:       enquiry.ID,
			Name:     enquiry.Name,
			Email:    enquiry.Email,
			Phone:    enquiry.Phone,
			CourseID: enquiry.CourseID,
		}})
	})
}
