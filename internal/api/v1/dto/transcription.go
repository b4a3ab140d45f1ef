package dto

// CreateTranscriptionRequest is the body of POST /api/v1/transcriptions
type CreateTranscriptionRequest struct {
	FileURL string `json:"file_url" binding:"required,url"`
	Country string `json:"country" binding:"required"`
}

// TranscriptionResponse is the result of a completed pipeline invocation
type TranscriptionResponse struct {
	FileID           string `json:"file_id"`
	Country          string `json:"country"`
	LanguageName     string `json:"language_name"`
	OriginalText     string `json:"original_text"`
	EnglishText      string `json:"english_text"`
	TranscriptURL    string `json:"transcript_url"`
	NotificationSent bool   `json:"notification_sent"`
}

// CountriesResponse lists the supported countries for client-side validation
type CountriesResponse struct {
	Countries []string `json:"countries"`
	Codes     []string `json:"codes"`
}
