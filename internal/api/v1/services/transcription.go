package services

import (
	"context"

	"transcribe-translate/internal/api/v1/dto"
	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/app/model"
	"transcribe-translate/internal/app/publish"
)

// PipelineRunner is the single operation the API needs from the pipeline
type PipelineRunner interface {
	Run(ctx context.Context, sourceURL, country string) (*model.TranscriptResult, *publish.Outcome, error)
}

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	Run(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error)
	Countries() dto.CountriesResponse
}

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	runner PipelineRunner
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(runner PipelineRunner) *TranscriptionServiceImpl {
	return &TranscriptionServiceImpl{runner: runner}
}

// Run executes one pipeline invocation synchronously
func (s *TranscriptionServiceImpl) Run(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error) {
	result, outcome, err := s.runner.Run(ctx, req.FileURL, req.Country)
	if err != nil {
		return nil, err
	}

	return &dto.TranscriptionResponse{
		FileID:           result.FileID,
		Country:          result.Country,
		LanguageName:     result.LanguageName,
		OriginalText:     result.OriginalText,
		EnglishText:      result.EnglishText,
		TranscriptURL:    outcome.TranscriptURL,
		NotificationSent: outcome.NotificationSent,
	}, nil
}

// Countries returns the supported country names and codes in table order
func (s *TranscriptionServiceImpl) Countries() dto.CountriesResponse {
	return dto.CountriesResponse{
		Countries: locale.SupportedCountries(),
		Codes:     locale.SupportedCountryCodes(),
	}
}
