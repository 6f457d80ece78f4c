package eval

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/hyperjump/kotae/internal/models"
)

// Review is a full-text search over a set of evaluation records, used to
// find past questions and feedback during quality review. The index lives
// in memory and is rebuilt from the log file on each use.
type Review struct {
	index   bleve.Index
	records map[string]models.EvaluationRecord
}

// reviewDoc is the indexed shape of an evaluation record.
type reviewDoc struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

// NewReview indexes records into an in-memory bleve index.
func NewReview(records []models.EvaluationRecord) (*Review, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize without stemming, so query
	// terms match the words users actually wrote.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("question", textFieldMapping)
	docMapping.AddFieldMappingsAt("answer", textFieldMapping)
	docMapping.AddFieldMappingsAt("feedback", textFieldMapping)
	docMapping.AddFieldMappingsAt("rating", bleve.NewNumericFieldMapping())
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("create review index: %w", err)
	}

	byID := make(map[string]models.EvaluationRecord, len(records))
	batch := index.NewBatch()
	for _, rec := range records {
		byID[rec.ID] = rec
		doc := reviewDoc{
			Question: rec.Question,
			Answer:   rec.Answer,
			Feedback: rec.Feedback,
			Rating:   rec.Rating,
		}
		if err := batch.Index(rec.ID, doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("index evaluation record %s: %w", rec.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("commit review batch: %w", err)
	}
	return &Review{index: index, records: byID}, nil
}

// OpenReview reads a log file and indexes its records.
func OpenReview(logPath string) (*Review, error) {
	records, err := ReadLog(logPath)
	if err != nil {
		return nil, err
	}
	return NewReview(records)
}

// Search returns up to limit records matching query, best first.
func (r *Review) Search(query string, limit int) ([]models.EvaluationRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := r.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("review search failed: %w", err)
	}
	out := make([]models.EvaluationRecord, 0, len(results.Hits))
	for _, hit := range results.Hits {
		if rec, ok := r.records[hit.ID]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Close releases the in-memory index.
func (r *Review) Close() error {
	return r.index.Close()
}
