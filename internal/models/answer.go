package models

// Answer is a generated answer together with the chunks it was grounded on,
// in retrieval order.
type Answer struct {
	Text    string  `json:"text"`
	Sources []Chunk `json:"sources"`
}
