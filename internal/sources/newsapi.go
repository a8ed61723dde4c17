package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 40
)

var ErrMalformedResponse = errors.New("newsapi returned a malformed response")

// UpstreamError is a non-2xx answer from newsapi.org.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("newsapi returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("newsapi returned status %d: %s", e.StatusCode, e.Message)
}

type NewsAPIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewsAPIResponse keeps the articles as raw JSON so fields the proxy does not
// know about reach the caller untouched.
type NewsAPIResponse struct {
	TotalResults int
	Articles     []json.RawMessage
	Raw          []byte
}

// NewNewsAPIClient builds a client for baseURL (for example
// https://newsapi.org/v2). A zero timeout leaves requests unbounded.
func NewNewsAPIClient(apiKey, baseURL string, timeout time.Duration) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// EverythingURL targets the "everything" search endpoint. The search term is
// the literal "page=<page>" that the service has always sent.
func (c *NewsAPIClient) EverythingURL(page, pageSize int) string {
	return fmt.Sprintf("%s/everything?q=page=%d&pageSize=%d&apiKey=%s", c.baseURL, page, pageSize, c.apiKey)
}

// CountryURL targets top headlines for a country. iso is not validated; only
// bytes that cannot appear raw in a query are percent-encoded.
func (c *NewsAPIClient) CountryURL(iso string, page, pageSize int) string {
	return fmt.Sprintf("%s/top-headlines?country=%s&page=%d&pageSize=%d&apiKey=%s", c.baseURL, escapeQueryValue(iso), page, pageSize, c.apiKey)
}

// HeadlinesURL targets English top headlines in one category.
func (c *NewsAPIClient) HeadlinesURL(category string, page, pageSize int) string {
	return fmt.Sprintf("%s/top-headlines?language=en&page=%d&pageSize=%d&category=%s&apiKey=%s", c.baseURL, page, pageSize, escapeQueryValue(category), c.apiKey)
}

// Fetch issues one GET against a URL built by one of the *URL methods.
func (c *NewsAPIClient) Fetch(ctx context.Context, url string) (*NewsAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read newsapi response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(body, "message").String(),
		}
	}

	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedResponse
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, ErrMalformedResponse
	}

	if status := parsed.Get("status"); status.Exists() && status.String() != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", parsed.Get("message").String())
	}

	result := &NewsAPIResponse{
		TotalResults: int(parsed.Get("totalResults").Int()),
		Raw:          body,
	}

	parsed.Get("articles").ForEach(func(_, article gjson.Result) bool {
		result.Articles = append(result.Articles, json.RawMessage(article.Raw))
		return true
	})

	return result, nil
}

func (c *NewsAPIClient) GetName() string {
	return "newsapi"
}
