package domain

import (
	"errors"
	"fmt"
)

// Taxonomía de errores de la aplicación. Los servicios devuelven estos tipos
// y sólo el normalizador HTTP los traduce a códigos de estado.

// FieldError describe un fallo de validación sobre un campo concreto.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type ValidationError struct {
	Msg    string
	Fields []FieldError
}

func NewValidationError(msg string, fields ...FieldError) *ValidationError {
	return &ValidationError{Msg: msg, Fields: fields}
}

func (e *ValidationError) Error() string { return e.Msg }

type AuthenticationError struct {
	Msg string
}

func NewAuthenticationError(msg string) *AuthenticationError {
	return &AuthenticationError{Msg: msg}
}

func (e *AuthenticationError) Error() string { return e.Msg }

type AuthorizationError struct {
	Msg string
}

func NewAuthorizationError(msg string) *AuthorizationError {
	return &AuthorizationError{Msg: msg}
}

func (e *AuthorizationError) Error() string { return e.Msg }

type NotFoundError struct {
	Msg string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{Msg: msg}
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConflictError cubre violaciones de unicidad y de clave foránea.
type ConflictError struct {
	Msg        string
	ForeignKey bool
	Err        error
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Msg: msg}
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConflictError) Unwrap() error { return e.Err }

// UpstreamError envuelve fallos de colaboradores externos (BD, caché, correo, S3).
// Gateway=true indica que el colaborador no es alcanzable.
type UpstreamError struct {
	Service string
	Gateway bool
	Err     error
}

func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ---------------- Helpers ----------------

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}
