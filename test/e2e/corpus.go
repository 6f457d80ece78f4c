// Package e2e provides end-to-end tests; this file builds a small JSONL
// corpus with query test cases.
package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// QueryCase pairs a question with the document expected to ground its answer.
type QueryCase struct {
	Description   string
	Question      string
	ExpectedDocID string
}

// Corpus is a fixture corpus plus its query test cases.
type Corpus struct {
	Records   []map[string]interface{}
	TestCases []QueryCase
}

// BuildCorpus returns a fixture corpus of distinct topics so the mock
// embedder's bag-of-words vectors separate them cleanly.
func BuildCorpus() *Corpus {
	return &Corpus{
		Records: []map[string]interface{}{
			{"id": "sky", "source": "nature.txt", "text": "The sky appears blue because air molecules scatter short blue wavelengths of sunlight more than red wavelengths."},
			{"id": "grass", "source": "nature.txt", "text": "Grass looks green because chlorophyll in the blades absorbs red and blue light and reflects green light."},
			{"id": "paris", "source": "geography.txt", "text": "Paris is the capital of France and sits on the river Seine in the north of the country."},
			{"id": "coffee", "source": "food.txt", "text": "Coffee is brewed from roasted coffee beans and contains caffeine, a mild stimulant."},
		},
		TestCases: []QueryCase{
			{Description: "sky color question retrieves the sky document", Question: "why is the sky blue", ExpectedDocID: "sky"},
			{Description: "grass question retrieves the grass document", Question: "what makes grass green", ExpectedDocID: "grass"},
			{Description: "capital question retrieves the geography document", Question: "what is the capital of France", ExpectedDocID: "paris"},
			{Description: "coffee question retrieves the food document", Question: "does coffee contain caffeine", ExpectedDocID: "coffee"},
		},
	}
}

// WriteJSONL writes the corpus records as a JSONL file at path, with a few
// malformed and blank lines interleaved to exercise loader tolerance.
func (c *Corpus) WriteJSONL(path string) error {
	var b strings.Builder
	for i, rec := range c.Records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i, err)
		}
		b.Write(line)
		b.WriteString("\n")
		if i == 1 {
			b.WriteString("\n{this line is not valid json\n// a comment line\n")
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
