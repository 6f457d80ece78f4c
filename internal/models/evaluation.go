package models

import "time"

// EvaluationInput is a user feedback payload. Validation tags are enforced at
// the transport boundary; the evaluation logger itself trusts its caller.
type EvaluationInput struct {
	Question  string                 `json:"question" validate:"required"`
	Answer    string                 `json:"answer" validate:"required"`
	Rating    int                    `json:"rating" validate:"required,min=1,max=5"`
	Feedback  string                 `json:"feedback,omitempty"`
	SourceIDs []string               `json:"source_ids,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// EvaluationRecord is one line of the append-only evaluation log.
// ID and Timestamp are filled by the logger.
type EvaluationRecord struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Question  string                 `json:"question"`
	Answer    string                 `json:"answer"`
	Rating    int                    `json:"rating"`
	Feedback  string                 `json:"feedback,omitempty"`
	SourceIDs []string               `json:"source_ids,omitempty"`
	Metadata  map[string]interface{} `json:"metadata"`
}
