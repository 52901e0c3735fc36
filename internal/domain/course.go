package domain

import (
	"time"
)

type CourseType string

const (
	CourseTypeFree CourseType = "free"
	CourseTypePaid CourseType = "paid"
)

type Course struct {
	ID               string
	Title            string
	Slug             string
	Description      string
	CourseType       CourseType
	FreePreviewCount int
	Published        bool
	CreatedAt        time.Time
}

type Lecture struct {
	ID       string
	CourseID string
	Title    string
	Position int
	Duration time.Duration
	VideoURL string
}

// CourseContent is a course together with its ordered lecture list, as
// served to a single caller. Locks are applied per caller, not stored.
type CourseContent struct {
	Course   Course
	Lectures []GatedLecture
}

// GatedLecture is a lecture as visible to one caller. The video URL is
// cleared when the lecture is locked.
type GatedLecture struct {
	Lecture Lecture
	Locked  bool
}
