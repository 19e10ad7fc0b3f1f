// Package sanity is a minimal client for the Sanity content-store HTTP API:
// the mutation endpoint for creating and deleting posts, the query endpoint
// for listing them, and the asset endpoint for hero-image uploads.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client communicates with one project dataset.
type Client struct {
	baseURL    string
	dataset    string
	token      string
	httpClient *http.Client
}

func NewClient(projectID, dataset, token, apiVersion string) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/%s", projectID, apiVersion),
		dataset: dataset,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type mutateRequest struct {
	Mutations []map[string]any `json:"mutations"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID string `json:"id"`
	} `json:"results"`
}

// CreatePost publishes one post document and returns its assigned ID.
func (c *Client) CreatePost(ctx context.Context, post Post) (string, error) {
	resp, err := c.mutate(ctx, map[string]any{"create": post})
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("create post: mutation returned no results")
	}
	return resp.Results[0].ID, nil
}

// DeletePost removes a post document by ID.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	if _, err := c.mutate(ctx, map[string]any{"delete": map[string]string{"id": id}}); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, mutations ...map[string]any) (*mutateResponse, error) {
	body, err := json.Marshal(mutateRequest{Mutations: mutations})
	if err != nil {
		return nil, fmt.Errorf("marshal mutations: %w", err)
	}
	u := fmt.Sprintf("%s/data/mutate/%s?returnIds=true", c.baseURL, c.dataset)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mutate: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode mutation response: %w", err)
	}
	return &out, nil
}

// PostSummary is one row of a post listing.
type PostSummary struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	PublishedAt string `json:"publishedAt"`
}

// ListPosts queries the dataset for the most recently published posts.
func (c *Client) ListPosts(ctx context.Context, limit int) ([]PostSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(
		`*[_type == "post"] | order(publishedAt desc) [0...%d]{_id, title, "slug": slug.current, publishedAt}`,
		limit,
	)
	u := fmt.Sprintf("%s/data/query/%s?query=%s", c.baseURL, c.dataset, url.QueryEscape(query))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out struct {
		Result []PostSummary `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return out.Result, nil
}

// UploadImage stores raw image bytes as an asset and returns the asset
// document ID for referencing from a post.
func (c *Client) UploadImage(ctx context.Context, data []byte, filename string) (string, error) {
	u := fmt.Sprintf("%s/assets/images/%s?filename=%s", c.baseURL, c.dataset, url.QueryEscape(filename))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "image/png")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out struct {
		Document struct {
			ID string `json:"_id"`
		} `json:"document"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode asset response: %w", err)
	}
	if out.Document.ID == "" {
		return "", fmt.Errorf("asset response missing document id")
	}
	return out.Document.ID, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
}

// RetryableError indicates a transient store failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, e.Message)
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
