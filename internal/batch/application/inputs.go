package application

import (
	"strings"

	"github.com/davicafu/academylab/internal/batch/domain"
	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

// CreateBatchInput no lleva tags de binding: el servicio valida en orden y
// devuelve el mensaje del primer fallo. "title" y "capacity" son alias de
// "name" y "maxStudents".
type CreateBatchInput struct {
	CourseID        string   `json:"courseId"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	StartDate       string   `json:"startDate"`
	EndDate         *string  `json:"endDate"`
	EnrollmentStart *string  `json:"enrollmentStart"`
	EnrollmentEnd   *string  `json:"enrollmentEnd"`
	MaxStudents     *int     `json:"maxStudents"`
	Capacity        *int     `json:"capacity"`
	Price           float64  `json:"price"`
	DiscountPrice   *float64 `json:"discountPrice"`
	Status          string   `json:"status"`
}

// capacity prefiere "capacity" sobre "maxStudents" cuando vienen los dos.
func (in CreateBatchInput) capacity() int {
	switch {
	case in.Capacity != nil:
		return *in.Capacity
	case in.MaxStudents != nil:
		return *in.MaxStudents
	}
	return 0
}

// UpdateBatchInput es parcial. Un endDate vacío ("") lo borra.
type UpdateBatchInput struct {
	Name            *string  `json:"name"`
	StartDate       *string  `json:"startDate"`
	EndDate         *string  `json:"endDate"`
	EnrollmentStart *string  `json:"enrollmentStart"`
	EnrollmentEnd   *string  `json:"enrollmentEnd"`
	MaxStudents     *int     `json:"maxStudents"`
	Price           *float64 `json:"price"`
	DiscountPrice   *float64 `json:"discountPrice"`
	Status          *string  `json:"status"`
}

func (in UpdateBatchInput) empty() bool {
	return in.Name == nil && in.StartDate == nil && in.EndDate == nil && in.EnrollmentStart == nil &&
		in.EnrollmentEnd == nil && in.MaxStudents == nil && in.Price == nil && in.DiscountPrice == nil &&
		in.Status == nil
}

func (in UpdateBatchInput) apply(b *domain.Batch) error {
	if in.StartDate != nil {
		t, err := sharedUtils.ParseDate(*in.StartDate)
		if err != nil {
			return invalid("startDate", domain.MsgInvalidStartDate)
		}
		b.StartDate = t
	}
	if in.EndDate != nil {
		t, err := sharedUtils.ParseOptionalDate(in.EndDate)
		if err != nil {
			return invalid("endDate", domain.MsgInvalidEndDate)
		}
		b.EndDate = t
	}
	if in.EnrollmentStart != nil {
		t, err := sharedUtils.ParseDate(*in.EnrollmentStart)
		if err != nil {
			return invalid("enrollmentStart", domain.MsgInvalidEnrollmentStart)
		}
		b.EnrollmentStart = t
	}
	if in.EnrollmentEnd != nil {
		t, err := sharedUtils.ParseDate(*in.EnrollmentEnd)
		if err != nil {
			return invalid("enrollmentEnd", domain.MsgInvalidEnrollmentEnd)
		}
		b.EnrollmentEnd = t
	}
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.MaxStudents != nil {
		b.MaxStudents = *in.MaxStudents
	}
	if in.Price != nil {
		b.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		b.DiscountPrice = in.DiscountPrice
	}
	if in.Status != nil {
		b.Status = domain.Status(strings.ToUpper(strings.TrimSpace(*in.Status)))
	}
	return nil
}
