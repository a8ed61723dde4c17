// Package storage persists fetched articles. Writes are best effort: a failed
// save is logged and never reaches the HTTP caller.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kulshreya03/NewsAggregatorAws/internal/logger"
	"github.com/kulshreya03/NewsAggregatorAws/internal/models"
)

// Store upserts one record keyed by its ArticleID. No existence check, no
// conditional write.
type Store interface {
	PutArticle(ctx context.Context, record models.StoredArticleRecord) error
}

type Persister struct {
	store  Store
	logger *logger.Logger
}

func NewPersister(store Store, log *logger.Logger) *Persister {
	return &Persister{store: store, logger: log}
}

// Save maps one raw upstream item and writes it. It reports whether the write
// succeeded so callers can count, but errors are already logged here.
func (p *Persister) Save(ctx context.Context, raw json.RawMessage) bool {
	var article models.Article
	if err := json.Unmarshal(raw, &article); err != nil {
		p.logger.Error("store save failed", "error", fmt.Errorf("decode article: %w", err))
		return false
	}

	record := article.Record()
	if err := p.store.PutArticle(ctx, record); err != nil {
		p.logger.Error("store save failed", "article_id", record.ArticleID, "url", record.URL, "error", err)
		return false
	}

	p.logger.Debug("article saved", "article_id", record.ArticleID, "category", record.Category)
	return true
}
