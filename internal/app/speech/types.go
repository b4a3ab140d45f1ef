package speech

// JobState is the driver-visible lifecycle state of a recognition job
type JobState string

const (
	StateCreated   JobState = "Created"
	StateRunning   JobState = "Running"
	StateSucceeded JobState = "Succeeded"
	StateFailed    JobState = "Failed"
)

// Terminal reports whether no further transition can occur
func (s JobState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

type transcriptionRequest struct {
	ContentURLs []string                `json:"contentUrls"`
	Locale      string                  `json:"locale"`
	DisplayName string                  `json:"displayName"`
	Properties  transcriptionProperties `json:"properties"`
}

type transcriptionProperties struct {
	DiarizationEnabled         bool `json:"diarizationEnabled"`
	WordLevelTimestampsEnabled bool `json:"wordLevelTimestampsEnabled"`
}

type transcriptionStatus struct {
	Self   string `json:"self"`
	Status string `json:"status"`
	Links  struct {
		Files string `json:"files"`
	} `json:"links"`
	Properties struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"properties"`
}

type resultFileList struct {
	Values []resultFile `json:"values"`
}

type resultFile struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Links struct {
		ContentURL string `json:"contentUrl"`
	} `json:"links"`
}

type resultDocument struct {
	RecognizedPhrases []recognizedPhrase `json:"recognizedPhrases"`
}

type recognizedPhrase struct {
	NBest []struct {
		Display string `json:"display"`
	} `json:"nBest"`
}
