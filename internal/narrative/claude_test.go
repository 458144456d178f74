// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agenttessaa/narrative-detection/internal/httputil"
	"github.com/agenttessaa/narrative-detection/pkg/types"
)

func sampleNarrative() types.Narrative {
	return types.Narrative{
		Name:       "Ordinals Revival",
		Score:      59,
		Stage:      types.StageEmergence,
		Confidence: 0.75,
		Signals: types.Signals{
			Social:    types.SocialSnapshot{PostCount: 10, AvgEngagement: 120, UniqueAuthors: 5, KeyTerms: []string{"inscriptions"}},
			Developer: types.DevSnapshot{RepoCount: 8, TotalStars: 40, AvgStars: 5, KeyTerms: []string{"indexer"}},
		},
		Explanation: "rule-based explanation",
	}
}

func claudeReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := claudeResponse{Content: []claudeContent{{Type: "text", Text: text}}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestClaudeSynthesizeParsesResponse(t *testing.T) {
	var gotReq claudeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
			return
		}
		claudeReply(t, w, `{"explanation": "model explanation", "ideas": [{"title": "idea", "description": "d", "difficulty": "easy", "category": "tooling"}]}`)
	}))
	defer server.Close()

	original := claudeAPIURL
	claudeAPIURL = server.URL
	defer func() { claudeAPIURL = original }()

	synth := &ClaudeSynthesizer{APIKey: "test-key", Model: "test-model"}
	got, err := synth.Synthesize(context.Background(), sampleNarrative())
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if got.Explanation != "model explanation" {
		t.Errorf("Explanation = %q, want model explanation", got.Explanation)
	}
	if len(got.Ideas) != 1 || got.Ideas[0].Title != "idea" {
		t.Errorf("Ideas = %+v, want the single model idea", got.Ideas)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q, want test-model", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("request messages = %+v, want one user message", gotReq.Messages)
	}
}

func TestClaudeSynthesizeCapsIdeasAtFive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claudeReply(t, w, `{"explanation": "e", "ideas": [
			{"title": "1"}, {"title": "2"}, {"title": "3"},
			{"title": "4"}, {"title": "5"}, {"title": "6"}, {"title": "7"}]}`)
	}))
	defer server.Close()

	original := claudeAPIURL
	claudeAPIURL = server.URL
	defer func() { claudeAPIURL = original }()

	synth := &ClaudeSynthesizer{APIKey: "k", Model: "m"}
	got, err := synth.Synthesize(context.Background(), sampleNarrative())
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if len(got.Ideas) != 5 {
		t.Errorf("got %d ideas, want 5", len(got.Ideas))
	}
}

func TestClaudeSynthesizeRetriesRateLimit(t *testing.T) {
	originalDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = originalDelay }()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		// The retried request must carry the full body again.
		var req claudeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Model == "" {
			t.Errorf("retried request body unreadable: %v (model %q)", err, req.Model)
		}
		claudeReply(t, w, `{"explanation": "after retry", "ideas": []}`)
	}))
	defer server.Close()

	original := claudeAPIURL
	claudeAPIURL = server.URL
	defer func() { claudeAPIURL = original }()

	synth := &ClaudeSynthesizer{APIKey: "k", Model: "m", MaxRetries: 2}
	got, err := synth.Synthesize(context.Background(), sampleNarrative())
	if err != nil {
		t.Fatalf("Synthesize returned error: %v", err)
	}
	if got.Explanation != "after retry" {
		t.Errorf("Explanation = %q, want after retry", got.Explanation)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}

func TestClaudeSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusInternalServerError)
		}},
		{"empty explanation", func(w http.ResponseWriter, r *http.Request) {
			claudeReply(t, w, `{"explanation": "", "ideas": []}`)
		}},
		{"non-JSON text block", func(w http.ResponseWriter, r *http.Request) {
			claudeReply(t, w, `Sure! Here is the analysis you asked for.`)
		}},
		{"no text content", func(w http.ResponseWriter, r *http.Request) {
			resp := claudeResponse{Content: []claudeContent{{Type: "tool_use"}}}
			json.NewEncoder(w).Encode(resp)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			original := claudeAPIURL
			claudeAPIURL = server.URL
			defer func() { claudeAPIURL = original }()

			synth := &ClaudeSynthesizer{APIKey: "k", Model: "m"}
			if _, err := synth.Synthesize(context.Background(), sampleNarrative()); err == nil {
				t.Error("Synthesize succeeded, want error")
			}
		})
	}
}
