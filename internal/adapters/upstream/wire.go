package upstream

import (
	"fmt"
	"time"

	"github.com/courselight/courselight/internal/domain"
)

// Wire shapes for the upstream LMS API. Responses are validated at this
// boundary so the rest of the gateway only sees well-formed domain values.

type wireCourse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	CourseType       string    `json:"courseType"`
	FreePreviewCount int       `json:"freePreviewCount"`
	Published        bool      `json:"published"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (w wireCourse) toDomain() (domain.Course, error) {
	if w.ID == "" {
		return domain.Course{}, fmt.Errorf("course is missing an id")
	}

	var courseType domain.CourseType
	switch w.CourseType {
	case "free":
		courseType = domain.CourseTypeFree
	case "paid":
		courseType = domain.CourseTypePaid
	default:
		return domain.Course{}, fmt.Errorf("course %s has unknown type %q", w.ID, w.CourseType)
	}

	if w.FreePreviewCount < 0 {
		return domain.Course{}, fmt.Errorf("course %s has negative free preview count %d", w.ID, w.FreePreviewCount)
	}

	return domain.Course{
		ID:               w.ID,
		Title:            w.Title,
		Slug:             w.Slug,
		Description:      w.Description,
		CourseType:       courseType,
		FreePreviewCount: w.FreePreviewCount,
		Published:        w.Published,
		CreatedAt:        w.CreatedAt,
	}, nil
}

type wireLecture struct {
	ID              string `json:"id"`
	CourseID        string `json:"courseId"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	DurationSeconds int    `json:"durationSeconds"`
	VideoURL        string `json:"videoUrl"`
}

func (w wireLecture) toDomain() (domain.Lecture, error) {
	if w.ID == "" {
		return domain.Lecture{}, fmt.Errorf("lecture is missing an id")
	}
	return domain.Lecture{
		ID:       w.ID,
		CourseID: w.CourseID,
		Title:    w.Title,
		Position: w.Position,
		Duration: time.Duration(w.DurationSeconds) * time.Second,
		VideoURL: w.VideoURL,
	}, nil
}

func lectureToWire(lecture domain.Lecture) wireLecture {
	return wireLecture{
		ID:              lecture.ID,
		CourseID:        lecture.CourseID,
		Title:           lecture.Title,
		Position:        lecture.Position,
		DurationSeconds: int(lecture.Duration / time.Second),
		VideoURL:        lecture.VideoURL,
	}
}

type wireCourseContent struct {
	Course   wireCourse    `json:"course"`
	Lectures []wireLecture `json:"lectures"`
}

type wireAccess struct {
	Status string `json:"status"`
}

type wireEnrollment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	CourseID  string    `json:"courseId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w wireEnrollment) toDomain() (domain.Enrollment, error) {
	if w.ID == "" {
		return domain.Enrollment{}, fmt.Errorf("enrollment is missing an id")
	}

	var status domain.EnrollmentStatus
	switch w.Status {
	case "active":
		status = domain.EnrollmentStatusActive
	case "pending":
		status = domain.EnrollmentStatusPending
	case "rejected":
		status = domain.EnrollmentStatusRejected
	case "revoked":
		status = domain.EnrollmentStatusRevoked
	default:
		return domain.Enrollment{}, fmt.Errorf("enrollment %s has unknown status %q", w.ID, w.Status)
	}

	return domain.Enrollment{
		ID:        w.ID,
		StudentID: w.StudentID,
		CourseID:  w.CourseID,
		Status:    status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}, nil
}

type wireArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (w wireArticle) toDomain() domain.Article {
	return domain.Article{
		ID:          w.ID,
		Title:       w.Title,
		Body:        w.Body,
		Published:   w.Published,
		PublishedAt: w.PublishedAt,
	}
}

func articleToWire(article domain.Article) wireArticle {
	return wireArticle{
		ID:          article.ID,
		Title:       article.Title,
		Body:        article.Body,
		Published:   article.Published,
		PublishedAt: article.PublishedAt,
	}
}

type wirePlacement struct {
	ID          string    `json:"id"`
	StudentName string    `json:"studentName"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	PlacedAt    time.Time `json:"placedAt"`
}

func (w wirePlacement) toDomain() domain.Placement {
	return domain.Placement{
		ID:          w.ID,
		StudentName: w.StudentName,
		Company:     w.Company,
		Role:        w.Role,
		PlacedAt:    w.PlacedAt,
	}
}

func placementToWire(placement domain.Placement) wirePlacement {
	return wirePlacement{
		ID:          placement.ID,
		StudentName: placement.StudentName,
		Company:     placement.Company,
		Role:        placement.Role,
		PlacedAt:    placement.PlacedAt,
	}
}

type wireContact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireContact) toDomain() domain.Contact {
	return domain.Contact{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Message:   w.Message,
		CreatedAt: w.CreatedAt,
	}
}

type wireEnquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CourseID  string    `json:"courseId"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireEnquiry) toDomain() domain.Enquiry {
	return domain.Enquiry{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Phone:     w.Phone,
		CourseID:  w.CourseID,
		Resolved:  w.Resolved,
		CreatedAt: w.CreatedAt,
	}
}

func enquiryToWire(enquiry domain.Enquiry) wireEnquiry {
	return wireEnquiry{
		ID:        enquiry.ID,
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		CourseID:  enquiry.CourseID,
		Resolved:  enquiry.Resolved,
		CreatedAt: enquiry.CreatedAt,
	}
}

type wireUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireUser) toDomain() (domain.User, error) {
	if w.ID == "" {
		return domain.User{}, fmt.Errorf("user is missing an id")
	}

	var role domain.UserRole
	switch w.Role {
	case "student":
		role = domain.RoleStudent
	case "employee":
		role = domain.RoleEmployee
	case "admin":
		role = domain.RoleAdmin
	default:
		return domain.User{}, fmt.Errorf("user %s has unknown role %q", w.ID, w.Role)
	}

	return domain.User{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Role:      role,
		CreatedAt: w.CreatedAt,
	}, nil
}

type wireOverview struct {
	TotalCourses       int64 `json:"totalCourses"`
	TotalStudents      int64 `json:"totalStudents"`
	ActiveEnrollments  int64 `json:"activeEnrollments"`
	PendingEnrollments int64 `json:"pendingEnrollments"`
}

func (w wireOverview) toDomain() domain.StatsOverview {
	return domain.StatsOverview{
		TotalCourses:       w.TotalCourses,
		TotalStudents:      w.TotalStudents,
		ActiveEnrollments:  w.ActiveEnrollments,
		PendingEnrollments: w.PendingEnrollments,
	}
}
