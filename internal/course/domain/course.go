package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

type CourseType string

const (
	TypeOnline  CourseType = "ONLINE"
	TypeOffline CourseType = "OFFLINE"
	TypeHybrid  CourseType = "HYBRID"
)

type Access string

const (
	AccessFree Access = "FREE"
	AccessPaid Access = "PAID"
)

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

const MetaTitleSuffix = " | Premium Academy"

// Mensajes de los invariantes de precio, acceso y fechas.
const (
	MsgFreeCoursePrice     = "Free course must have price 0"
	MsgPaidCoursePrice     = "Paid course must have a valid price greater than 0"
	MsgDiscountAbovePrice  = "Discount price cannot be greater than price"
	MsgNegativePrice       = "Price cannot be negative"
	MsgOfflineLocation     = "Location is required for offline courses"
	MsgEnrollmentWindow    = "Enrollment end date must be after start date"
	MsgCourseDateRange     = "End date must be after start date"
	MsgInvalidCourseFields = "Invalid course type, access, level or status"
)

type CurriculumItem struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Lessons     []string `json:"lessons"`
}

type Learning struct {
	Text string `json:"text" binding:"required"`
}

type FAQ struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type Course struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	Type            CourseType       `json:"type"`
	Access          Access           `json:"access"`
	Level           Level            `json:"level"`
	Status          Status           `json:"status"`
	Price           float64          `json:"price"`
	DiscountPrice   *float64         `json:"discountPrice,omitempty"`
	IsPremium       bool             `json:"isPremium"`
	Approved        bool             `json:"approved"`
	IsDeleted       bool             `json:"isDeleted"`
	Location        string           `json:"location"`
	Thumbnail       string           `json:"thumbnail"`
	MetaTitle       string           `json:"metaTitle"`
	MetaDescription string           `json:"metaDescription"`
	InstructorID    uuid.UUID        `json:"instructorId"`
	CategoryID      *string          `json:"categoryId,omitempty"`
	StartDate       *time.Time       `json:"startDate,omitempty"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
	EnrollmentStart *time.Time       `json:"enrollmentStart,omitempty"`
	EnrollmentEnd   *time.Time       `json:"enrollmentEnd,omitempty"`
	Curriculum      []CurriculumItem `json:"curriculum"`
	Learnings       []Learning       `json:"learnings"`
	FAQs            []FAQ            `json:"faqs"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// DefaultMetaTitle rellena metaTitle a partir del título si viene vacío.
func (c *Course) DefaultMetaTitle() {
	if strings.TrimSpace(c.MetaTitle) == "" {
		c.MetaTitle = c.Title + MetaTitleSuffix
	}
}

// Validate comprueba los invariantes que deben cumplirse antes de cualquier
// escritura. El mensaje es el de la primera violación; Fields las lista todas.
func (c *Course) Validate() error {
	var fields []sharedDomain.FieldError
	add := func(path, msg string) {
		fields = append(fields, sharedDomain.FieldError{Path: path, Message: msg})
	}

	if !c.Type.valid() || !c.Access.valid() || !c.Level.valid() || !c.Status.valid() {
		add("type", MsgInvalidCourseFields)
	}

	switch {
	case c.Price < 0:
		add("price", MsgNegativePrice)
	case c.Access == AccessFree && c.Price != 0:
		add("price", MsgFreeCoursePrice)
	case c.Access == AccessPaid && c.Price <= 0:
		add("price", MsgPaidCoursePrice)
	}

	if c.DiscountPrice != nil {
		if *c.DiscountPrice < 0 {
			add("discountPrice", MsgNegativePrice)
		} else if *c.DiscountPrice > c.Price {
			add("discountPrice", MsgDiscountAbovePrice)
		}
	}

	if c.Type == TypeOffline && strings.TrimSpace(c.Location) == "" {
		add("location", MsgOfflineLocation)
	}

	if c.EnrollmentStart != nil && c.EnrollmentEnd != nil && c.EnrollmentStart.After(*c.EnrollmentEnd) {
		add("enrollmentEnd", MsgEnrollmentWindow)
	}
	if c.StartDate != nil && c.EndDate != nil && c.StartDate.After(*c.EndDate) {
		add("endDate", MsgCourseDateRange)
	}

	if len(fields) == 0 {
		return nil
	}
	return sharedDomain.NewValidationError(fields[0].Message, fields...)
}

func (t CourseType) valid() bool {
	return t == TypeOnline || t == TypeOffline || t == TypeHybrid
}

func (a Access) valid() bool {
	return a == AccessFree || a == AccessPaid
}

func (l Level) valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

func (s Status) valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}
