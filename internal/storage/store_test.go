package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/kulshreya03/NewsAggregatorAws/internal/config"
	"github.com/kulshreya03/NewsAggregatorAws/internal/logger"
	"github.com/kulshreya03/NewsAggregatorAws/internal/models"
)

type fakeStore struct {
	records []models.StoredArticleRecord
	err     error
}

func (f *fakeStore) PutArticle(ctx context.Context, record models.StoredArticleRecord) error {
	f.records = append(f.records, record)
	return f.err
}

type fakePutItem struct {
	inputs []*dynamodb.PutItemInput
	err    error
}

func (f *fakePutItem) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func TestPersisterSave(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store, logger.Nop())

	raw := json.RawMessage(`{"url":"https://example.com/a","title":"T","source":{"name":"Wire"},"urlToImage":"https://img","category":"sports"}`)

	if ok := p.Save(context.Background(), raw); !ok {
		t.Fatal("Save() = false, want true")
	}

	if len(store.records) != 1 {
		t.Fatalf("store got %d records, want 1", len(store.records))
	}
	rec := store.records[0]
	if rec.ArticleID != models.ArticleID("https://example.com/a") {
		t.Errorf("ArticleID = %q", rec.ArticleID)
	}
	if rec.Source != "Wire" || rec.ImageURL != "https://img" || rec.Category != "sports" {
		t.Errorf("record mapped incorrectly: %+v", rec)
	}
}

func TestPersisterSameURLSameKey(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store, logger.Nop())

	raw := json.RawMessage(`{"url":"https://example.com/a","title":"v1"}`)
	p.Save(context.Background(), raw)
	raw = json.RawMessage(`{"url":"https://example.com/a","title":"v2"}`)
	p.Save(context.Background(), raw)

	if store.records[0].ArticleID != store.records[1].ArticleID {
		t.Errorf("keys differ for the same url: %q vs %q", store.records[0].ArticleID, store.records[1].ArticleID)
	}
}

func TestPersisterSwallowsStoreErrors(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{err: errors.New("ProvisionedThroughputExceededException")}
	p := NewPersister(store, logger.NewWithWriter(&buf, "info"))

	if ok := p.Save(context.Background(), json.RawMessage(`{"url":"https://example.com/a"}`)); ok {
		t.Error("Save() = true, want false on store error")
	}

	out := buf.String()
	if !strings.Contains(out, "store save failed") || !strings.Contains(out, "ProvisionedThroughputExceededException") {
		t.Errorf("store error not logged: %q", out)
	}
}

func TestPersisterUndecodableItem(t *testing.T) {
	store := &fakeStore{}
	p := NewPersister(store, logger.Nop())

	if ok := p.Save(context.Background(), json.RawMessage(`"just a string"`)); ok {
		t.Error("Save() = true, want false for undecodable item")
	}
	if len(store.records) != 0 {
		t.Error("undecodable item should not reach the store")
	}
}

func TestDynamoStorePutArticle(t *testing.T) {
	api := &fakePutItem{}
	store := NewDynamoStore(api, "NewsArticles")

	rec := models.Article{URL: "https://example.com/a", Title: "T"}.Record()
	if err := store.PutArticle(context.Background(), rec); err != nil {
		t.Fatalf("PutArticle() error = %v", err)
	}

	if len(api.inputs) != 1 {
		t.Fatalf("PutItem called %d times, want 1", len(api.inputs))
	}
	in := api.inputs[0]
	if *in.TableName != "NewsArticles" {
		t.Errorf("TableName = %q", *in.TableName)
	}
	if in.ConditionExpression != nil {
		t.Error("PutItem should be unconditional")
	}

	var got models.StoredArticleRecord
	if err := attributevalue.UnmarshalMap(in.Item, &got); err != nil {
		t.Fatalf("UnmarshalMap() error = %v", err)
	}
	if got != rec {
		t.Errorf("item = %+v, want %+v", got, rec)
	}
	if _, ok := in.Item["articleId"]; !ok {
		t.Error("item missing articleId key attribute")
	}
	if _, ok := in.Item["imageUrl"]; !ok {
		t.Error("item missing imageUrl attribute")
	}
}

func TestDynamoStorePutArticleError(t *testing.T) {
	api := &fakePutItem{err: errors.New("AccessDeniedException")}
	store := NewDynamoStore(api, "NewsArticles")

	err := store.PutArticle(context.Background(), models.StoredArticleRecord{ArticleID: "id"})
	if err == nil || !strings.Contains(err.Error(), "AccessDeniedException") {
		t.Errorf("PutArticle() error = %v", err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StoreBackend: "redis"})
	if !errors.Is(err, config.ErrUnknownStoreBackend) {
		t.Errorf("Open() error = %v, want %v", err, config.ErrUnknownStoreBackend)
	}
}
