package model

// TranscriptResult is the artifact produced by one pipeline invocation.
// Immutable once produced; persisted to object storage under two keys
// derived from FileID.
type TranscriptResult struct {
	FileID       string `json:"file_id"`
	Country      string `json:"country"`
	LanguageName string `json:"language_name"`
	OriginalText string `json:"original_text"`
	EnglishText  string `json:"english_text"`
}

// OriginalKey is the storage key for the source-language transcript
func (r *TranscriptResult) OriginalKey() string {
	return "transcripts/" + r.FileID + "_original.txt"
}

// EnglishKey is the storage key for the English transcript
func (r *TranscriptResult) EnglishKey() string {
	return "transcripts/" + r.FileID + "_english.txt"
}
