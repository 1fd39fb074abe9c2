package events

import (
	"time"

	"github.com/google/uuid"
)

type CourseCreated struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	InstructorID uuid.UUID `json:"instructorId"`
}

type CourseApproved struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	InstructorID uuid.UUID `json:"instructorId"`
}

type BatchCreated struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"courseId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	StartDate time.Time `json:"startDate"`
}

type BatchStatusChanged struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
