// Package models defines core data structures for documents, chunks, answers, and evaluations.
package models

// Document is a loaded source document. Source and ID come from the corpus record
// when present; the loader fills defaults ("Unknown", "line_<n>") otherwise.
type Document struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

// Chunk is a bounded substring of a document's content, the unit of embedding
// and retrieval. ID is chunk-level ("<docID>_<index>"); DocumentID and Source
// carry the parent document's attribution.
type Chunk struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Source     string `json:"source"`
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
}

// RetrievedChunk is a chunk returned by similarity search. Distance is
// 1 - cosine similarity (embeddings are normalized), so lower is closer.
type RetrievedChunk struct {
	Chunk    Chunk   `json:"chunk"`
	Distance float64 `json:"distance"`
}
