package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davicafu/academylab/shared/domain"
)

func TestNormalize_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", domain.NewValidationError("Price cannot be negative"), http.StatusBadRequest, "Price cannot be negative"},
		{"authentication", domain.NewAuthenticationError("Invalid or expired token"), http.StatusUnauthorized, "Invalid or expired token"},
		{"authorization", domain.NewAuthorizationError("Forbidden access"), http.StatusForbidden, "Forbidden access"},
		{"not found", domain.NewNotFoundError("Course not found"), http.StatusNotFound, "Course not found"},
		{"conflict", domain.NewConflictError("Email already registered"), http.StatusConflict, "Email already registered"},
		{"foreign key", &domain.ConflictError{Msg: "Foreign key constraint failed", ForeignKey: true}, http.StatusBadRequest, "Foreign key constraint failed"},
		{"db unreachable", &domain.UpstreamError{Service: "database", Gateway: true, Err: errors.New("dial tcp")}, http.StatusBadGateway, "Upstream service unavailable"},
		{"upstream", domain.NewUpstreamError("mail", errors.New("quota")), http.StatusInternalServerError, "Something went wrong"},
		{"unexpected", errors.New("nil pointer somewhere"), http.StatusInternalServerError, "Something went wrong"},
		{"wrapped", fmt.Errorf("service: %w", domain.NewNotFoundError("Batch not found")), http.StatusNotFound, "Batch not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := Normalize(tc.err, true)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, body.Message)
			assert.False(t, body.Success)
			assert.Empty(t, body.Error)
		})
	}
}

func TestNormalize_DetailOnlyOutsideProduction(t *testing.T) {
	err := errors.New("pq: relation does not exist")

	_, prod := Normalize(err, true)
	assert.Empty(t, prod.Error)

	_, dev := Normalize(err, false)
	assert.Equal(t, "pq: relation does not exist", dev.Error)
}

func TestNormalize_ValidationFields(t *testing.T) {
	err := domain.NewValidationError("Validation error", domain.FieldError{Path: "email", Message: "Invalid email address"})

	status, body := Normalize(err, true)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []domain.FieldError{{Path: "email", Message: "Invalid email address"}}, body.Errors)
}

func TestBindError_NonValidatorError(t *testing.T) {
	err := BindError(errors.New("unexpected EOF"))

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid request body", verr.Msg)
}
