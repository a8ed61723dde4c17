package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/kulshreya03/NewsAggregatorAws/internal/models"
)

const createArticlesTable = `
	CREATE TABLE IF NOT EXISTS news_articles (
		article_id   TEXT PRIMARY KEY,
		title        TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		content      TEXT NOT NULL DEFAULT '',
		author       TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL DEFAULT '',
		published_at TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT 'general',
		url          TEXT NOT NULL,
		image_url    TEXT NOT NULL DEFAULT '',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const upsertArticle = `
	INSERT INTO news_articles (article_id, title, description, content, author, source, published_at, category, url, image_url, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	ON CONFLICT (article_id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		content = EXCLUDED.content,
		author = EXCLUDED.author,
		source = EXCLUDED.source,
		published_at = EXCLUDED.published_at,
		category = EXCLUDED.category,
		url = EXCLUDED.url,
		image_url = EXCLUDED.image_url,
		updated_at = now()
`

type PostgresStore struct {
	conn *sql.DB
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return NewPostgresStore(conn), nil
}

func NewPostgresStore(conn *sql.DB) *PostgresStore {
	return &PostgresStore{conn: conn}
}

// Migrate creates the articles table if it is missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, createArticlesTable); err != nil {
		return fmt.Errorf("failed to create news_articles: %w", err)
	}
	return nil
}

func (s *PostgresStore) PutArticle(ctx context.Context, record models.StoredArticleRecord) error {
	_, err := s.conn.ExecContext(ctx, upsertArticle,
		record.ArticleID, record.Title, record.Description, record.Content,
		record.Author, record.Source, record.PublishedAt, record.Category,
		record.URL, record.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to upsert article %s: %w", record.ArticleID, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.conn.Close()
}
