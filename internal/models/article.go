package models

import (
	"encoding/base64"
	"fmt"
)

const DefaultCategory = "general"

// Article is one item of the newsapi.org "articles" array, plus the
// category the router attaches to it.
type Article struct {
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
	Category    string        `json:"category,omitempty"`
}

type ArticleSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoredArticleRecord is the persisted shape of an Article.
type StoredArticleRecord struct {
	ArticleID   string `json:"articleId" dynamodbav:"articleId"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	Content     string `json:"content" dynamodbav:"content"`
	Author      string `json:"author" dynamodbav:"author"`
	Source      string `json:"source" dynamodbav:"source"`
	PublishedAt string `json:"publishedAt" dynamodbav:"publishedAt"`
	Category    string `json:"category" dynamodbav:"category"`
	URL         string `json:"url" dynamodbav:"url"`
	ImageURL    string `json:"imageUrl" dynamodbav:"imageUrl"`
}

// ArticleID derives the storage key from an article URL. The same URL always
// maps to the same key, so repeated saves overwrite one record.
func ArticleID(url string) string {
	return base64.StdEncoding.EncodeToString([]byte(url))
}

// DecodeArticleID reverses ArticleID.
func DecodeArticleID(id string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return "", fmt.Errorf("decode article id: %w", err)
	}
	return string(raw), nil
}

// Record maps the article onto its stored form.
func (a Article) Record() StoredArticleRecord {
	category := a.Category
	if category == "" {
		category = DefaultCategory
	}

	return StoredArticleRecord{
		ArticleID:   ArticleID(a.URL),
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Author:      a.Author,
		Source:      a.Source.Name,
		PublishedAt: a.PublishedAt,
		Category:    category,
		URL:         a.URL,
		ImageURL:    a.URLToImage,
	}
}
