package llm

import "context"

// MockGenerator returns canned output for tests. When Err is set, Generate
// fails with it; otherwise Response is returned and the prompt recorded.
type MockGenerator struct {
	Response string
	Err      error
	Prompts  []string
}

// Generate records the prompt and returns the configured response or error.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
