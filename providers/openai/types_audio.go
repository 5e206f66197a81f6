package openai

// AudioResponseFormat selects the transcript encoding.
type AudioResponseFormat string

const (
	AudioResponseFormatJSON        AudioResponseFormat = "json"
	AudioResponseFormatText        AudioResponseFormat = "text"
	AudioResponseFormatSRT         AudioResponseFormat = "srt"
	AudioResponseFormatVerboseJSON AudioResponseFormat = "verbose_json"
	AudioResponseFormatVTT         AudioResponseFormat = "vtt"
)

// isJSON reports whether the response body for f is a JSON object.
func (f AudioResponseFormat) isJSON() bool {
	return f == "" || f == AudioResponseFormatJSON || f == AudioResponseFormatVerboseJSON
}

// TranscriptionRequest is the form of POST /v1/audio/transcriptions.
type TranscriptionRequest struct {
	File           FileResource
	Model          string
	Prompt         string
	ResponseFormat AudioResponseFormat
	Temperature    *float64
	Language       string
}

// TranslationRequest is the form of POST /v1/audio/translations.
type TranslationRequest struct {
	File           FileResource
	Model          string
	Prompt         string
	ResponseFormat AudioResponseFormat
	Temperature    *float64
}

// AudioResponse is the transcript. For the text, srt and vtt formats Text
// holds the raw body.
type AudioResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}
