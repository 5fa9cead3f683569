package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ClassifiedError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Fixture errors

func ImageToolMissing(candidates []string) *ClassifiedError {
	return New(CategoryFixture, SeverityFatal, "no image tool available to synthesize fixture images").
		WithContext("candidates", candidates)
}

func FixtureFailed(step string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFixture, SeverityFatal, "sample gallery creation failed").
		WithContext("step", step)
}

// Runner errors

func GeneratorFailed(implementation string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryRunner, SeverityError, "generator run failed").
		WithContext("implementation", implementation)
}

// ParityFailed reports that the outputs differ; it carries no cause.
func ParityFailed(failing int) *ClassifiedError {
	return New(CategoryParity, SeverityError, fmt.Sprintf("outputs differ (%d failing checks)", failing)).
		WithContext("failing", failing)
}

// Filesystem errors

func WorkspaceError(operation string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

func InputMissing(path string) *ClassifiedError {
	return New(CategoryValidation, SeverityFatal, "input directory does not exist").
		WithContext("path", path)
}

// Store and notification errors

func StoreError(operation string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryStore, SeverityError, "history store operation failed").
		WithContext("operation", operation)
}

func NotifyError(subject string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryNotify, SeverityWarning, "notification failed").
		WithContext("subject", subject)
}

// Internal errors

func InternalError(message string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
