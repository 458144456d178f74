// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"

	"github.com/agenttessaa/narrative-detection/internal/httputil"
	"github.com/agenttessaa/narrative-detection/pkg/types"
)

// synthesisPromptTmpl is the prompt sent to the Claude API for one narrative.
// The model rewrites the explanation and may replace the build ideas; the
// rule-based versions are included as grounding so the model cannot invent
// signal that is not there.
var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(`You are an ecosystem analyst. Rewrite the explanation for a detected narrative and suggest 1-5 build ideas.

Narrative: {{.Name}}
Stage: {{.Stage}}
Composite score: {{.Score}}/100
Social signal: {{.Signals.Social.PostCount}} posts, avg engagement {{.Signals.Social.AvgEngagement}}, {{.Signals.Social.UniqueAuthors}} unique authors. Key terms: {{range .Signals.Social.KeyTerms}}{{.}} {{end}}
Developer signal: {{.Signals.Developer.RepoCount}} repositories, {{.Signals.Developer.TotalStars}} stars. Key terms: {{range .Signals.Developer.KeyTerms}}{{.}} {{end}}

Current rule-based explanation: {{.Explanation}}

Respond with a JSON object only: {"explanation": "...", "ideas": [{"title": "...", "description": "...", "difficulty": "easy|medium|hard", "category": "..."}]}
Do not claim numbers other than those above. Do not include any text outside the JSON object.
`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeSynthesizer calls the Claude API to write narrative prose. Errors
// surface to the caller, which keeps the rule-based text instead.
type ClaudeSynthesizer struct {
	APIKey     string
	Model      string
	MaxRetries int
	Client     *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// claudeSynthesis is the JSON shape the prompt demands back.
type claudeSynthesis struct {
	Explanation string            `json:"explanation"`
	Ideas       []types.BuildIdea `json:"ideas"`
}

// Synthesize implements Synthesizer.
func (c *ClaudeSynthesizer) Synthesize(ctx context.Context, n types.Narrative) (Synthesis, error) {
	var buf bytes.Buffer
	if err := synthesisPromptTmpl.Execute(&buf, n); err != nil {
		return Synthesis{}, fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: 1024,
		Messages: []claudeMessage{
			{Role: "user", Content: buf.String()},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Synthesis{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return Synthesis{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return Synthesis{}, fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Synthesis{}, fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Synthesis{}, fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type != "text" {
			continue
		}
		var syn claudeSynthesis
		if err := json.Unmarshal([]byte(block.Text), &syn); err != nil {
			return Synthesis{}, fmt.Errorf("parsing synthesis JSON: %w", err)
		}
		if syn.Explanation == "" {
			return Synthesis{}, fmt.Errorf("synthesis response has empty explanation")
		}
		if len(syn.Ideas) > 5 {
			syn.Ideas = syn.Ideas[:5]
		}
		return Synthesis{Explanation: syn.Explanation, Ideas: syn.Ideas}, nil
	}

	return Synthesis{}, fmt.Errorf("no text content in Claude API response")
}
