package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/sjson"

	"github.com/kulshreya03/NewsAggregatorAws/internal/config"
	"github.com/kulshreya03/NewsAggregatorAws/internal/logger"
	"github.com/kulshreya03/NewsAggregatorAws/internal/models"
	"github.com/kulshreya03/NewsAggregatorAws/internal/sources"
	"github.com/kulshreya03/NewsAggregatorAws/internal/storage"
)

// NewsSource builds upstream URLs and fetches them.
type NewsSource interface {
	EverythingURL(page, pageSize int) string
	CountryURL(iso string, page, pageSize int) string
	HeadlinesURL(category string, page, pageSize int) string
	Fetch(ctx context.Context, url string) (*sources.NewsAPIResponse, error)
	GetName() string
}

type Aggregator struct {
	config    *config.Config
	source    NewsSource
	persister *storage.Persister
	logger    *logger.Logger
	server    *http.Server
}

// New wires the fetch flow. A nil persister means articles are only
// forwarded, never stored.
func New(cfg *config.Config, source NewsSource, persister *storage.Persister, log *logger.Logger) *Aggregator {
	return &Aggregator{
		config:    cfg,
		source:    source,
		persister: persister,
		logger:    log,
	}
}

// FetchNews performs one upstream request and shapes the result. Every item
// gets category attached; with persistence enabled each item is then saved,
// one at a time and in upstream order. Save failures never change the
// returned envelope.
func (a *Aggregator) FetchNews(ctx context.Context, url, category string) models.Envelope {
	resp, err := a.source.Fetch(ctx, url)
	if err != nil {
		a.logger.Warn("upstream fetch failed", "source", a.source.GetName(), "category", category, "error", err)
		return models.FetchFailed(err)
	}

	if resp.TotalResults <= 0 {
		return models.NoMoreResults()
	}

	items := make([]json.RawMessage, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		items = append(items, withCategory(raw, category))
	}

	if a.persister != nil {
		// Writes outlive a disconnected caller.
		saveCtx := context.WithoutCancel(ctx)

		saved := 0
		for _, item := range items {
			if a.persister.Save(saveCtx, item) {
				saved++
			}
		}
		a.logger.Info("articles persisted", "category", category, "fetched", len(items), "saved", saved)

		return models.FetchedAndSaved(items)
	}

	return models.Fetched(withArticles(resp.Raw, items))
}

func withCategory(raw json.RawMessage, category string) json.RawMessage {
	tagged, err := sjson.SetBytes(raw, "category", category)
	if err != nil {
		return raw
	}
	return tagged
}

// withArticles returns the upstream payload with its articles array replaced
// by items.
func withArticles(payload []byte, items []json.RawMessage) json.RawMessage {
	encoded, err := json.Marshal(items)
	if err != nil {
		return payload
	}

	out, err := sjson.SetRawBytes(payload, "articles", encoded)
	if err != nil {
		return payload
	}
	return out
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *Aggregator) Run(ctx context.Context) error {
	a.server = &http.Server{
		Addr:              a.config.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server Running", "port", a.config.ServerPort, "persistence", a.persister != nil)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return a.shutdown()
}

func (a *Aggregator) shutdown() error {
	a.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
