package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/studytracker/pkg/database"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
)

// fieldMessages holds the operator-facing wording for fields whose rule is
// better described as a whole than per tag.
var fieldMessages = map[string]string{
	"DueDate":         "Due date must be in YYYY-MM-DD format",
	"Date":            "Date must be in YYYY-MM-DD format",
	"DurationMinutes": "Duration must be a positive number of minutes",
	"Grade":           "Grade must be between 0 and 100",
	"Credits":         "Credits must be a positive integer",
}

// validationError converts validator output into an ErrValidation carrying a readable message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	fe := fieldErrs[0]
	message, ok := fieldMessages[fe.StructField()]
	if !ok {
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s cannot be empty", fe.StructField())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", fe.StructField(), fe.Param())
		default:
			message = fmt.Sprintf("%s is invalid", fe.StructField())
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func invalid(format string, args ...interface{}) error {
	return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(format, args...))
}

// storageError wraps repository failures, keeping constraint violations distinct.
func storageError(err error, message string) error {
	if errors.Is(err, database.ErrConstraint) {
		return appErrors.Wrap(err, appErrors.ErrConstraint.Code, appErrors.ErrConstraint.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, message)
}
