package apperrors

import (
	"net/http"
)

// Factories and predefined errors for the allocation domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrDonorIneligible carries the hard-failure reason from the matching
// engine. 422: the request was well-formed, the donor just cannot be
// offered.
func ErrDonorIneligible(err error, reason string) *AppError {
	return Wrap(err, CodeIneligible, "matching", "Donor is not eligible for allocation", http.StatusUnprocessableEntity).
		WithDetails(map[string]string{"reason": reason})
}

// ErrOrganNotViable signals that the donor's preservation window has
// already elapsed.
func ErrOrganNotViable(message string) *AppError {
	return New(CodeOrganNotViable, "matching", message, http.StatusUnprocessableEntity)
}

// ErrUnsupportedOrgan signals an organ type outside the policy tables.
func ErrUnsupportedOrgan(organ string) *AppError {
	return New(CodeUnsupportedOrgan, "matching", "Unsupported organ type: "+organ, http.StatusBadRequest)
}

// ErrAllocationTransitionFrom rejects an illegal lifecycle move.
func ErrAllocationTransitionFrom(from, to string) *AppError {
	return New(CodeInvalidStatus, "allocation", "Allocation status transition is not allowed", http.StatusConflict).
		WithDetails(map[string]string{"from": from, "to": to})
}
