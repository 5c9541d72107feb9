package apperrors

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrConflict                = errors.New("conflict")
	ErrEmptyProfile            = errors.New("company profile is empty")
	ErrInvalidOpportunityType  = errors.New("invalid opportunity type")
	ErrInvalidStatusTransition = errors.New("invalid match status transition")
)
