package upstream

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/courselight/courselight/internal/cachestore"
	"github.com/courselight/courselight/internal/domain"
	"github.com/courselight/courselight/internal/resource"
)

// Client is the typed face of the upstream LMS API. Every read goes
// through the shared cache store; every write declares the tags it
// invalidates so dependent reads refetch.
type Client struct {
	publishedCourses *resource.Query[struct{}, []wireCourse]
	courseContent    *resource.Query[string, wireCourseContent]
	addLecture       *resource.Mutation[wireLecture, wireLecture]
	updateLecture    *resource.Mutation[wireLecture, wireLecture]
	deleteLecture    *resource.Mutation[deleteLectureArgs, struct{}]

	checkAccess        *resource.Query[checkAccessArgs, wireAccess]
	enrollFree         *resource.Mutation[string, struct{}]
	requestAccess      *resource.Mutation[string, struct{}]
	approveEnrollment  *resource.Mutation[string, wireEnrollment]
	rejectEnrollment   *resource.Mutation[string, wireEnrollment]
	revokeEnrollment   *resource.Mutation[string, wireEnrollment]
	allEnrollments     *resource.Query[struct{}, []wireEnrollment]
	pendingEnrollments *resource.Query[struct{}, []wireEnrollment]

	articles      *resource.Query[struct{}, []wireArticle]
	createArticle *resource.Mutation[wireArticle, wireArticle]
	updateArticle *resource.Mutation[wireArticle, wireArticle]
	deleteArticle *resource.Mutation[string, struct{}]

	placements      *resource.Query[struct{}, []wirePlacement]
	createPlacement *resource.Mutation[wirePlacement, wirePlacement]
	deletePlacement *resource.Mutation[string, struct{}]

	contacts      *resource.Query[struct{}, []wireContact]
	deleteContact *resource.Mutation[string, struct{}]
	createEnquiry *resource.Mutation[wireEnquiry, wireEnquiry]

	users          *resource.Query[struct{}, []wireUser]
	updateUserRole *resource.Mutation[updateUserRoleArgs, wireUser]
	deleteUser     *resource.Mutation[string, struct{}]

	overview *resource.Query[struct{}, wireOverview]
}

type checkAccessArgs struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

type deleteLectureArgs struct {
	CourseID  string `json:"courseId"`
	LectureID string `json:"lectureId"`
}

type updateUserRoleArgs struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func accessTag(courseID string) cachestore.Tag {
	return cachestore.IDTag("enrollment-access", "course-"+courseID)
}

func NewClient(store *cachestore.Store, baseURL string, httpClient resource.HTTPClient, options ...resource.ClientOption) *Client {
	client := resource.NewClient(store, baseURL, httpClient, options...)

	courses := client.Resource("course", "/course")
	videos := client.Resource("video", "/video")
	enrollments := client.Resource("enrollment", "/enrollment")
	articles := client.Resource("article", "/article")
	placements := client.Resource("placement", "/placement")
	contacts := client.Resource("contact", "/contact")
	enquiries := client.Resource("enquiry", "/enquiry")
	users := client.Resource("user", "/user")
	stats := client.Resource("stats", "/stats")

	return &Client{
		publishedCourses: resource.NewQuery(
			courses,
			"published",
			func(struct{}) string { return "published-course" },
			func(_ struct{}, result []wireCourse) []cachestore.Tag {
				tags := []cachestore.Tag{cachestore.ResourceTag("course")}
				for _, course := range result {
					tags = append(tags, cachestore.IDTag("course", course.ID))
				}
				return tags
			},
		),
		courseContent: resource.NewQuery(
			courses,
			"content",
			func(courseID string) string { return courseID + "/content" },
			func(courseID string, _ wireCourseContent) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("course", courseID)}
			},
		),
		addLecture: resource.NewMutation(
			videos,
			"add-lecture",
			func(lecture wireLecture) resource.Request {
				return resource.Request{Method: http.MethodPost, Path: "lecture", Body: lecture}
			},
			func(lecture wireLecture, _ wireLecture) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("course", lecture.CourseID)}
			},
		),
		updateLecture: resource.NewMutation(
			videos,
			"update-lecture",
			func(lecture wireLecture) resource.Request {
				return resource.Request{Method: http.MethodPut, Path: "lecture/" + lecture.ID, Body: lecture}
			},
			func(lecture wireLecture, _ wireLecture) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("course", lecture.CourseID)}
			},
		),
		deleteLecture: resource.NewMutation(
			videos,
			"delete-lecture",
			func(args deleteLectureArgs) resource.Request {
				return resource.Request{Method: http.MethodDelete, Path: "lecture/" + args.LectureID}
			},
			func(args deleteLectureArgs, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("course", args.CourseID)}
			},
		),

		checkAccess: resource.NewQuery(
			enrollments,
			"check-access",
			func(args checkAccessArgs) string { return "check-access/" + args.CourseID },
			func(args checkAccessArgs, _ wireAccess) []cachestore.Tag {
				return []cachestore.Tag{accessTag(args.CourseID)}
			},
		),
		enrollFree: resource.NewMutation(
			enrollments,
			"enroll-free",
			func(courseID string) resource.Request {
				return resource.Request{Method: http.MethodPost, Path: "enroll-free/" + courseID}
			},
			func(courseID string, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{
					cachestore.ResourceTag("enrollment"),
					cachestore.ResourceTag("stats"),
					accessTag(courseID),
				}
			},
		),
		requestAccess: resource.NewMutation(
			enrollments,
			"request",
			func(courseID string) resource.Request {
				return resource.Request{Method: http.MethodPost, Path: "request/" + courseID}
			},
			func(courseID string, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{
					cachestore.ResourceTag("enrollment"),
					cachestore.ResourceTag("stats"),
					accessTag(courseID),
				}
			},
		),
		approveEnrollment: newEnrollmentDecision(enrollments, "approve"),
		rejectEnrollment:  newEnrollmentDecision(enrollments, "reject"),
		revokeEnrollment:  newEnrollmentDecision(enrollments, "revoke"),
		allEnrollments: resource.NewQuery(
			enrollments,
			"all",
			func(struct{}) string { return "all" },
			func(_ struct{}, result []wireEnrollment) []cachestore.Tag {
				tags := []cachestore.Tag{cachestore.ResourceTag("enrollment")}
				for _, enrollment := range result {
					tags = append(tags, cachestore.IDTag("enrollment", enrollment.ID))
				}
				return tags
			},
		),
		pendingEnrollments: resource.NewQuery(
			enrollments,
			"pending",
			func(struct{}) string { return "pending" },
			func(_ struct{}, _ []wireEnrollment) []cachestore.Tag {
				return []cachestore.Tag{cachestore.ResourceTag("enrollment")}
			},
		),

		articles: resource.NewQuery(
			articles,
			"list",
			func(struct{}) string { return "" },
			func(_ struct{}, result []wireArticle) []cachestore.Tag {
				tags := []cachestore.Tag{cachestore.ResourceTag("article")}
				for _, article := range result {
					tags = append(tags, cachestore.IDTag("article", article.ID))
				}
				return tags
			},
		),
		createArticle: resource.NewMutation(
			articles,
			"create",
			func(article wireArticle) resource.Request {
				return resource.Request{Method: http.MethodPost, Path: "", Body: article}
			},
			func(_ wireArticle, _ wireArticle) []cachestore.Tag {
				return []cachestore.Tag{cachestore.ResourceTag("article")}
			},
		),
		updateArticle: resource.NewMutation(
			articles,
			"update",
			func(article wireArticle) resource.Request {
				return resource.Request{Method: http.MethodPut, Path: article.ID, Body: article}
			},
			func(article wireArticle, _ wireArticle) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("article", article.ID)}
			},
		),
		deleteArticle: resource.NewMutation(
			articles,
			"delete",
			func(articleID string) resource.Request {
				return resource.Request{Method: http.MethodDelete, Path: articleID}
			},
			func(articleID string, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("article", articleID)}
			},
		),

		placements: resource.NewQuery(
			placements,
			"list",
			func(struct{}) string { return "" },
			func(_ struct{}, result []wirePlacement) []cachestore.Tag {
				tags := []cachestore.Tag{cachestore.ResourceTag("placement")}
				for _, placement := range result {
					tags = append(tags, cachestore.IDTag("placement", placement.ID))
				}
				return tags
			},
		),
		createPlacement: resource.NewMutation(
			placements,
			"create",
			func(placement wirePlacement) resource.Request {
				return resource.Request{Method: http.MethodPost, Path: "", Body: placement}
			},
			func(_ wirePlacement, _ wirePlacement) []cachestore.Tag {
				return []cachestore.Tag{cachestore.ResourceTag("placement")}
			},
		),
		deletePlacement: resource.NewMutation(
			placements,
			"delete",
			func(placementID string) resource.Request {
				return resource.Request{Method: http.MethodDelete, Path: placementID}
			},
			func(placementID string, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("placement", placementID)}
			},
		),

		contacts: resource.NewQuery(
			contacts,
			"list",
			func(struct{}) string { return "" },
			func(_ struct{}, result []wireContact) []cachestore.Tag {
				tags := []cachestore.Tag{cachestore.ResourceTag("contact")}
				for _, contact := range result {
					tags = append(tags, cachestore.IDTag("contact", contact.ID))
				}
				return tags
			},
		),
		deleteContact: resource.NewMutation(
			contacts,
			"delete",
			func(contactID string) resource.Request {
				return resource.Request{Method: http.MethodDelete, Path: contactID}
			},
			func(contactID string, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("contact", contactID)}
			},
		),
		createEnquiry: resource.NewMutation(
			enquiries,
			"create",
			func(enquiry wireEnquiry) resource.Request {
				return resource.Request{Method: http.MethodPost, Path: "", Body: enquiry}
			},
			func(_ wireEnquiry, _ wireEnquiry) []cachestore.Tag {
				return []cachestore.Tag{cachestore.ResourceTag("enquiry")}
			},
		),

		users: resource.NewQuery(
			users,
			"list",
			func(struct{}) string { return "" },
			func(_ struct{}, result []wireUser) []cachestore.Tag {
				tags := []cachestore.Tag{cachestore.ResourceTag("user")}
				for _, user := range result {
					tags = append(tags, cachestore.IDTag("user", user.ID))
				}
				return tags
			},
		),
		updateUserRole: resource.NewMutation(
			users,
			"update-role",
			func(args updateUserRoleArgs) resource.Request {
				return resource.Request{Method: http.MethodPatch, Path: args.UserID + "/role", Body: args}
			},
			func(args updateUserRoleArgs, _ wireUser) []cachestore.Tag {
				return []cachestore.Tag{cachestore.IDTag("user", args.UserID)}
			},
		),
		deleteUser: resource.NewMutation(
			users,
			"delete",
			func(userID string) resource.Request {
				return resource.Request{Method: http.MethodDelete, Path: userID}
			},
			func(userID string, _ struct{}) []cachestore.Tag {
				return []cachestore.Tag{
					cachestore.IDTag("user", userID),
					cachestore.ResourceTag("stats"),
				}
			},
		),

		overview: resource.NewQuery(
			stats,
			"overview",
			func(struct{}) string { return "overview" },
			func(_ struct{}, _ wireOverview) []cachestore.Tag {
				return []cachestore.Tag{cachestore.ResourceTag("stats")}
			},
		),
	}
}

// Enrollment decisions share their shape: a PATCH keyed by enrollment
// id, returning the updated record so invalidation can target the
// affected course's access entries.
func newEnrollmentDecision(enrollments *resource.Resource, action string) *resource.Mutation[string, wireEnrollment] {
	return resource.NewMutation(
		enrollments,
		action,
		func(enrollmentID string) resource.Request {
			return resource.Request{Method: http.MethodPatch, Path: action + "/" + enrollmentID}
		},
		func(enrollmentID string, result wireEnrollment) []cachestore.Tag {
			tags := []cachestore.Tag{
				cachestore.IDTag("enrollment", enrollmentID),
				cachestore.ResourceTag("stats"),
			}
			if result.CourseID != "" {
				tags = append(tags, accessTag(result.CourseID))
			}
			return tags
		},
	)
}

// translateError maps transport-level failures onto domain sentinels.
// 404s are left alone so each operation can attach its own sentinel.
func translateError(err error) error {
	if errors.Is(err, resource.ErrNetwork) {
		return fmt.Errorf("%w: %s", domain.ErrTemporarilyUnavailable, err.Error())
	}

	var httpError *resource.HTTPError
	if errors.As(err, &httpError) {
		switch {
		case httpError.StatusCode == http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", domain.ErrNotAuthenticated, httpError.Message)
		case httpError.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %s", domain.ErrAccessDenied, httpError.Message)
		case httpError.StatusCode >= 500:
			return fmt.Errorf("%w: upstream returned status %d", domain.ErrTemporarilyUnavailable, httpError.StatusCode)
		}
	}

	return err
}

func isNotFound(err error) bool {
	var httpError *resource.HTTPError
	return errors.As(err, &httpError) && httpError.StatusCode == http.StatusNotFound
}
