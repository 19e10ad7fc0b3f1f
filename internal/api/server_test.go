package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hvalle/blogforge/internal/config"
	"github.com/hvalle/blogforge/internal/genai"
	"github.com/hvalle/blogforge/internal/pipeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		BlogforgeAPIKey:   "secret",
		MaxTitlesPerBatch: 3,
		MaxQueueSize:      10,
		JobTTL:            time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	articles := genai.NewClient("k", "test-model", genai.NewMetrics(time.Hour))
	// No workers are started: submitted jobs stay queued, which is all the
	// handlers need.
	orch := pipeline.NewOrchestrator(cfg, articles, nil, nil, log)
	return NewServer(orch, articles, log, cfg)
}

func authedRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Authorization", "Bearer secret")
	return req
}

func TestHealth_Public(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_Required(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"titles":["x"]}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"titles":["x"]}`))
	req.Header.Set("Authorization", "Bearer wrong")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestGenerate_SubmitAndStatus(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/generate", `{"titles":[" One ","Two"],"category_id":"cat-1"}`))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		JobID   string `json:"job_id"`
		Titles  int    `json:"titles"`
		Status  string `json:"status"`
		PollURL string `json:"poll_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Titles != 2 || resp.Status != string(pipeline.StatusQueued) {
		t.Errorf("unexpected response: %+v", resp)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(http.MethodGet, resp.PollURL, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from status, got %d", rec.Code)
	}
	var status struct {
		JobID  string `json:"job_id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.JobID != resp.JobID || status.Status != string(pipeline.StatusQueued) {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestGenerate_Validation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"blank titles", `{"titles":["  ",""]}`},
		{"not json", `nope`},
		{"too many titles", `{"titles":["a","b","c","d"]}`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/generate", tt.body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}
	}
}

func TestGenerateStatus_NotFound(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/generate/doesnotexist/status", ""))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestLLMStats(t *testing.T) {
	s := testServer(t)
	s.articles.Stats.Record(genai.OpArticle, 120*time.Millisecond)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/stats/llm", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Model string                      `json:"model"`
		Stats map[string]genai.OpSnapshot `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.Model != "test-model" {
		t.Errorf("expected model test-model, got %q", resp.Model)
	}
	if resp.Stats[genai.OpArticle].Count != 1 {
		t.Errorf("expected one article sample, got %+v", resp.Stats)
	}
}
