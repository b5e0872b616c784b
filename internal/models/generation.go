package models

import "encoding/json"

// LabelReason is the wire form of a user segment / marketing rationale pair
type LabelReason struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// GenerationRequest is the body POSTed to the generation service
type GenerationRequest struct {
	BrandContextPath string      `json:"brand_context_path"`
	Channel          string      `json:"channel"`
	LabelReason      LabelReason `json:"label_reason"`
	Prompt           string      `json:"prompt,omitempty"` // Omitted entirely when empty
	Count            int         `json:"count"`
	Language         string      `json:"language"`
}

// GeneratedMessage is a single message produced and validated by the service
type GeneratedMessage struct {
	Text    string `json:"text"`
	Channel string `json:"channel"`
	Valid   bool   `json:"valid"`
}

// GenerationResponse is the service's success body
type GenerationResponse struct {
	Messages []GeneratedMessage `json:"messages"`
}

// InvalidCount returns how many messages failed validation
func (r *GenerationResponse) InvalidCount() int {
	n := 0
	for _, m := range r.Messages {
		if !m.Valid {
			n++
		}
	}
	return n
}

// ErrorResponse is the service's failure body. Detail is kept raw because
// its type is not guaranteed to be a string.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// DetailString returns the detail when it is a non-empty JSON string
func (e *ErrorResponse) DetailString() (string, bool) {
	if len(e.Detail) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
