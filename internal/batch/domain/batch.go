package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus acepta el valor en cualquier capitalización.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

const (
	MsgCourseIDRequired       = "Course ID is required"
	MsgInvalidStartDate       = "Invalid start date"
	MsgInvalidEndDate         = "Invalid end date"
	MsgEndBeforeStart         = "End date must be greater than start date"
	MsgInvalidEnrollmentStart = "Invalid enrollment start date"
	MsgInvalidEnrollmentEnd   = "Invalid enrollment end date"
	MsgEnrollmentWindow       = "Enrollment end date must be greater than enrollment start date"
	MsgCapacity               = "Capacity must be greater than 0"
	MsgNegativePrice          = "Price cannot be negative"
	MsgDiscountAbovePrice     = "Discount price cannot be greater than price"
	MsgNameRequired           = "Batch name is required"
	MsgInvalidStatus          = "Invalid batch status"
)

var ErrInvalidStatus = sharedDomain.NewValidationError(MsgInvalidStatus,
	sharedDomain.FieldError{Path: "status", Message: "status must be one of UPCOMING, ONGOING, COMPLETED, CANCELLED"})

// Batch es una edición concreta de un curso con fechas y plazas.
type Batch struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	CourseID        uuid.UUID  `json:"courseId"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	EnrollmentStart time.Time  `json:"enrollmentStart"`
	EnrollmentEnd   time.Time  `json:"enrollmentEnd"`
	MaxStudents     int        `json:"maxStudents"`
	Price           float64    `json:"price"`
	DiscountPrice   *float64   `json:"discountPrice,omitempty"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Toggle alterna entre CANCELLED y UPCOMING; cualquier otro estado se cancela.
func (b *Batch) Toggle() {
	if b.Status == StatusCancelled {
		b.Status = StatusUpcoming
		return
	}
	b.Status = StatusCancelled
}

// Validate revisa los invariantes en el mismo orden en que se comprueban al
// crear, a partir del rango de fechas.
func (b *Batch) Validate() error {
	if b.EndDate != nil && !b.EndDate.After(b.StartDate) {
		return invalid("endDate", MsgEndBeforeStart)
	}
	if b.EnrollmentStart.After(b.EnrollmentEnd) {
		return invalid("enrollmentEnd", MsgEnrollmentWindow)
	}
	if b.MaxStudents <= 0 {
		return invalid("maxStudents", MsgCapacity)
	}
	if b.Price < 0 {
		return invalid("price", MsgNegativePrice)
	}
	if b.DiscountPrice != nil && *b.DiscountPrice > b.Price {
		return invalid("discountPrice", MsgDiscountAbovePrice)
	}
	if strings.TrimSpace(b.Name) == "" {
		return invalid("name", MsgNameRequired)
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func invalid(path, msg string) error {
	return sharedDomain.NewValidationError(msg, sharedDomain.FieldError{Path: path, Message: msg})
}
