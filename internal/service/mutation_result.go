package service

import (
	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/internal/validation"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

// MutationResult mirrors the GraphQL mutation response contract. Expected
// failures (validation, not found, conflict, invalid state) travel as
// Success=false payloads; only authentication and internal failures are
// raised as errors.
type MutationResult struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	Employee *models.Employee         `json:"employee,omitempty"`
	Record   *models.AttendanceRecord `json:"record,omitempty"`
	Errors   []validation.FieldError  `json:"errors,omitempty"`
}

func validationFailed(errs []validation.FieldError) *MutationResult {
	return &MutationResult{Success: false, Message: "validation failed", Errors: errs}
}

func failure(field, message, code string) *MutationResult {
	return &MutationResult{
		Success: false,
		Message: message,
		Errors:  []validation.FieldError{{Field: field, Message: message, Code: code}},
	}
}

func conflictResult(field string, err error) *MutationResult {
	message := appErrors.ErrConflict.Message
	if appErr := appErrors.FromError(err); appErr != nil {
		message = appErr.Message
	}
	return failure(field, message, appErrors.ErrConflict.Code)
}
