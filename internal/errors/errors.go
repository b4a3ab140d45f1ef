package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind identifies the failure class of a pipeline invocation
type Kind string

const (
	KindValidation                 Kind = "validation"
	KindBadRequest                 Kind = "bad_request"
	KindUnsupportedCountry         Kind = "unsupported_country"
	KindDownloadFailed             Kind = "download_failed"
	KindConversionFailed           Kind = "conversion_failed"
	KindJobSubmissionFailed        Kind = "job_submission_failed"
	KindTranscriptionFailed        Kind = "transcription_failed"
	KindNoTranscriptionOutput      Kind = "no_transcription_output"
	KindTranslationFailed          Kind = "translation_failed"
	KindStoragePersistFailed       Kind = "storage_persist_failed"
	KindNotificationDeliveryFailed Kind = "notification_delivery_failed"
	KindInternal                   Kind = "internal"
)

// PipelineError is the structured error surfaced to callers of the pipeline
type PipelineError struct {
	Kind               Kind              `json:"kind"`
	Message            string            `json:"message"`
	Details            map[string]string `json:"details,omitempty"`
	SupportedCountries []string          `json:"supported_countries,omitempty"`
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *PipelineError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest, KindUnsupportedCountry:
		return http.StatusBadRequest
	case KindDownloadFailed, KindJobSubmissionFailed, KindTranscriptionFailed,
		KindNoTranscriptionOutput, KindTranslationFailed, KindNotificationDeliveryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// KindOf extracts the error kind, or KindInternal for non-pipeline errors
func KindOf(err error) Kind {
	if perr, ok := err.(*PipelineError); ok {
		return perr.Kind
	}
	return KindInternal
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *PipelineError {
	return &PipelineError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *PipelineError {
	return &PipelineError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewUnsupportedCountryError carries the full supported-country list for
// caller display, in table order
func NewUnsupportedCountryError(token string, supported []string) *PipelineError {
	return &PipelineError{
		Kind: KindUnsupportedCountry,
		Message: fmt.Sprintf("unsupported country: %s. Supported countries: %s",
			token, strings.Join(supported, ", ")),
		SupportedCountries: supported,
	}
}

// NewDownloadFailedError creates a download failure for a source media URL
func NewDownloadFailedError(url string, reason string) *PipelineError {
	return &PipelineError{
		Kind:    KindDownloadFailed,
		Message: fmt.Sprintf("failed to download %s: %s", url, reason),
	}
}

// NewConversionFailedError creates a media conversion failure
func NewConversionFailedError(reason string) *PipelineError {
	return &PipelineError{
		Kind:    KindConversionFailed,
		Message: fmt.Sprintf("audio conversion failed: %s", reason),
	}
}

// NewJobSubmissionFailedError carries the remote diagnostic body
func NewJobSubmissionFailedError(body string) *PipelineError {
	return &PipelineError{
		Kind:    KindJobSubmissionFailed,
		Message: fmt.Sprintf("transcription job submission failed: %s", body),
	}
}

// NewTranscriptionFailedError carries the remote status message if present
func NewTranscriptionFailedError(message string) *PipelineError {
	if message == "" {
		message = "transcription job failed without a status message"
	}
	return &PipelineError{
		Kind:    KindTranscriptionFailed,
		Message: message,
	}
}

// NewNoTranscriptionOutputError reports a succeeded job with an empty result manifest
func NewNoTranscriptionOutputError() *PipelineError {
	return &PipelineError{
		Kind:    KindNoTranscriptionOutput,
		Message: "transcription job succeeded but produced no result files",
	}
}

// NewTranslationFailedError carries the remote response body
func NewTranslationFailedError(body string) *PipelineError {
	return &PipelineError{
		Kind:    KindTranslationFailed,
		Message: fmt.Sprintf("translation failed: %s", body),
	}
}

// NewStoragePersistFailedError names which transcript artifact failed to persist
func NewStoragePersistFailedError(artifact string, err error) *PipelineError {
	return &PipelineError{
		Kind:    KindStoragePersistFailed,
		Message: fmt.Sprintf("failed to persist %s transcript: %v", artifact, err),
		Details: map[string]string{"artifact": artifact},
	}
}

// NewNotificationDeliveryFailedError reports webhook retry exhaustion.
// Delivery is best-effort: this error never aborts the pipeline.
func NewNotificationDeliveryFailedError(attempts int, reason string) *PipelineError {
	return &PipelineError{
		Kind:    KindNotificationDeliveryFailed,
		Message: fmt.Sprintf("webhook notification failed after %d attempts: %s", attempts, reason),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *PipelineError {
	return &PipelineError{
		Kind:    KindInternal,
		Message: message,
	}
}
