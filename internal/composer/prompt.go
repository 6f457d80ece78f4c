package composer

import (
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// systemInstruction constrains the model to the retrieved context.
// Grounding is prompt-level only; the composer does not verify the answer
// against the sources.
const systemInstruction = `You are an AI assistant answering questions using only the context below.
If the context does not contain the answer, say "I don't know"; do not make up an answer.`

// BuildPrompt assembles the grounding prompt from the question and the
// retrieved chunks, in retrieval order. Pure function, independent of any
// model client.
func BuildPrompt(question string, chunks []models.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\nContext:\n")
	for i, rc := range chunks {
		b.WriteString(rc.Chunk.Content)
		if i < len(chunks)-1 {
			b.WriteString("\n\n")
		}
	}
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")
	return b.String()
}
