package application

import (
	"strings"
	"time"

	"github.com/davicafu/academylab/internal/course/domain"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

// CreateCourseInput llega validado en forma por el binding de gin; precio,
// acceso y fechas los revisa el dominio.
type CreateCourseInput struct {
	Title           string                  `json:"title" binding:"required,min=3,max=200"`
	Description     string                  `json:"description" binding:"required,min=20"`
	Type            domain.CourseType       `json:"type" binding:"required,oneof=ONLINE OFFLINE HYBRID"`
	Access          domain.Access           `json:"access" binding:"required,oneof=FREE PAID"`
	Level           domain.Level            `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Price           float64                 `json:"price"`
	DiscountPrice   *float64                `json:"discountPrice"`
	IsPremium       bool                    `json:"isPremium"`
	Location        string                  `json:"location" binding:"max=200"`
	Thumbnail       string                  `json:"thumbnail" binding:"omitempty,url"`
	MetaTitle       string                  `json:"metaTitle" binding:"max=200"`
	MetaDescription string                  `json:"metaDescription" binding:"max=500"`
	CategoryID      *string                 `json:"categoryId" binding:"omitempty,min=1"`
	StartDate       *string                 `json:"startDate"`
	EndDate         *string                 `json:"endDate"`
	EnrollmentStart *string                 `json:"enrollmentStart"`
	EnrollmentEnd   *string                 `json:"enrollmentEnd"`
	Curriculum      []domain.CurriculumItem `json:"curriculum" binding:"omitempty,dive"`
	Learnings       []domain.Learning       `json:"learnings" binding:"omitempty,dive"`
	FAQs            []domain.FAQ            `json:"faqs" binding:"omitempty,dive"`
}

func (in CreateCourseInput) toCourse() (*domain.Course, error) {
	c := &domain.Course{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Type:            in.Type,
		Access:          in.Access,
		Level:           in.Level,
		Price:           in.Price,
		DiscountPrice:   in.DiscountPrice,
		IsPremium:       in.IsPremium,
		Location:        strings.TrimSpace(in.Location),
		Thumbnail:       in.Thumbnail,
		MetaTitle:       strings.TrimSpace(in.MetaTitle),
		MetaDescription: in.MetaDescription,
		CategoryID:      in.CategoryID,
		Curriculum:      nonNil(in.Curriculum),
		Learnings:       nonNil(in.Learnings),
		FAQs:            nonNil(in.FAQs),
	}

	dates, err := parseDates(in.StartDate, in.EndDate, in.EnrollmentStart, in.EnrollmentEnd)
	if err != nil {
		return nil, err
	}
	c.StartDate, c.EndDate, c.EnrollmentStart, c.EnrollmentEnd = dates[0], dates[1], dates[2], dates[3]
	return c, nil
}

// UpdateCourseInput es parcial: sólo cambian los campos presentes.
// El slug y el instructor no se editan.
type UpdateCourseInput struct {
	Title           *string                  `json:"title" binding:"omitempty,min=3,max=200"`
	Description     *string                  `json:"description" binding:"omitempty,min=20"`
	Type            *domain.CourseType       `json:"type" binding:"omitempty,oneof=ONLINE OFFLINE HYBRID"`
	Access          *domain.Access           `json:"access" binding:"omitempty,oneof=FREE PAID"`
	Level           *domain.Level            `json:"level" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Status          *domain.Status           `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Price           *float64                 `json:"price"`
	DiscountPrice   *float64                 `json:"discountPrice"`
	IsPremium       *bool                    `json:"isPremium"`
	Location        *string                  `json:"location" binding:"omitempty,max=200"`
	Thumbnail       *string                  `json:"thumbnail" binding:"omitempty,url"`
	MetaTitle       *string                  `json:"metaTitle" binding:"omitempty,max=200"`
	MetaDescription *string                  `json:"metaDescription" binding:"omitempty,max=500"`
	CategoryID      *string                  `json:"categoryId"`
	StartDate       *string                  `json:"startDate"`
	EndDate         *string                  `json:"endDate"`
	EnrollmentStart *string                  `json:"enrollmentStart"`
	EnrollmentEnd   *string                  `json:"enrollmentEnd"`
	Curriculum      *[]domain.CurriculumItem `json:"curriculum"`
	Learnings       *[]domain.Learning       `json:"learnings"`
	FAQs            *[]domain.FAQ            `json:"faqs"`
}

func (in UpdateCourseInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Type == nil && in.Access == nil &&
		in.Level == nil && in.Status == nil && in.Price == nil && in.DiscountPrice == nil &&
		in.IsPremium == nil && in.Location == nil && in.Thumbnail == nil && in.MetaTitle == nil &&
		in.MetaDescription == nil && in.CategoryID == nil && in.StartDate == nil && in.EndDate == nil &&
		in.EnrollmentStart == nil && in.EnrollmentEnd == nil && in.Curriculum == nil &&
		in.Learnings == nil && in.FAQs == nil
}

// apply mezcla la entrada sobre el curso. Una fecha vacía ("") la borra.
func (in UpdateCourseInput) apply(c *domain.Course) error {
	raw := []*string{in.StartDate, in.EndDate, in.EnrollmentStart, in.EnrollmentEnd}
	dates, err := parseDates(raw...)
	if err != nil {
		return err
	}

	setString(&c.Title, in.Title)
	setString(&c.Description, in.Description)
	setString(&c.Location, in.Location)
	setString(&c.Thumbnail, in.Thumbnail)
	setString(&c.MetaTitle, in.MetaTitle)
	setString(&c.MetaDescription, in.MetaDescription)
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.Access != nil {
		c.Access = *in.Access
	}
	if in.Level != nil {
		c.Level = *in.Level
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		c.DiscountPrice = in.DiscountPrice
	}
	if in.IsPremium != nil {
		c.IsPremium = *in.IsPremium
	}
	if in.CategoryID != nil {
		c.CategoryID = in.CategoryID
	}
	for i, target := range []**time.Time{&c.StartDate, &c.EndDate, &c.EnrollmentStart, &c.EnrollmentEnd} {
		if raw[i] != nil {
			*target = dates[i]
		}
	}
	if in.Curriculum != nil {
		c.Curriculum = nonNil(*in.Curriculum)
	}
	if in.Learnings != nil {
		c.Learnings = nonNil(*in.Learnings)
	}
	if in.FAQs != nil {
		c.FAQs = nonNil(*in.FAQs)
	}
	c.DefaultMetaTitle()
	return nil
}

var dateFields = []struct{ path, label string }{
	{"startDate", "start date"},
	{"endDate", "end date"},
	{"enrollmentStart", "enrollment start date"},
	{"enrollmentEnd", "enrollment end date"},
}

func parseDates(raw ...*string) ([]*time.Time, error) {
	out := make([]*time.Time, len(raw))
	for i, r := range raw {
		t, err := sharedUtils.ParseOptionalDate(r)
		if err != nil {
			f := dateFields[i]
			return nil, sharedDomain.NewValidationError("Invalid "+f.label,
				sharedDomain.FieldError{Path: f.path, Message: "must be YYYY-MM-DD or RFC3339"})
		}
		out[i] = t
	}
	return out, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
