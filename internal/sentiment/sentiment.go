// Package sentiment talks to an external sentiment-analysis backend and
// normalizes every backend behind one fail-soft contract.
//
// THE CENTRAL DESIGN DECISION:
// Analyze never returns an error. Every failure mode — network error,
// timeout, non-success status, malformed or empty payload, subprocess
// failure — is caught inside the adapter, logged, and collapsed to a nil
// result. Enrichment is advisory: a message must never fail to post because
// the analysis backend is down. Callers only see two states: a result, or
// no result.
//
// Four interchangeable backends exist (see space.go, huggingface.go,
// gradio.go, script.go). The concrete one is selected by configuration at
// process start, not at call time.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Result is a label/score pair describing the inferred emotional tone of a
// message body. Score is in [0,1].
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyzer is the capability interface every backend implements.
//
// A nil return means "no result" — the caller stores the message without
// sentiment and signals partial success. Implementations must bound their
// own latency (an HTTP client timeout or a context deadline) so a slow
// backend cannot stall message ingestion indefinitely.
type Analyzer interface {
	Analyze(ctx context.Context, text string) *Result
}

// postJSON sends a JSON payload and returns the raw response body.
// Shared by the HTTP-based backends; each one parses its own wire shape.
// A non-2xx status is an error here — the backends treat it as "no result".
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(raw, 200))
	}

	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
