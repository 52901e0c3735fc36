package domain

import "time"

type Article struct {
	ID          string
	Title       string
	Body        string
	Published   bool
	PublishedAt time.Time
}

type Placement struct {
	ID          string
	StudentName string
	Company     string
	Role        string
	PlacedAt    time.Time
}

type Contact struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

type Enquiry struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CourseID  string
	Resolved  bool
	CreatedAt time.Time
}
