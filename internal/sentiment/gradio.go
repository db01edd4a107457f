package sentiment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"
)

// gradioTimeout bounds calls to the Gradio endpoint. This backend is
// expected to be a warm, locally-reachable service, so it gets the tightest
// budget of the backend classes.
const gradioTimeout = 5 * time.Second

// GradioAnalyzer talks to a Gradio-style prediction endpoint.
//
// WIRE SHAPE:
// Gradio wraps everything in a "data" array, one element per declared input
// or output. Request {"data": [text]}; response
// {"data": [{"label": "pozitif", "score": 0.99}]} — the result is the first
// data element.
type GradioAnalyzer struct {
	client *http.Client
	url    string
	logger *slog.Logger
}

// NewGradioAnalyzer creates an analyzer for the given Gradio predict URL.
func NewGradioAnalyzer(url string, logger *slog.Logger) *GradioAnalyzer {
	return &GradioAnalyzer{
		client: &http.Client{Timeout: gradioTimeout},
		url:    url,
		logger: logger,
	}
}

var _ Analyzer = (*GradioAnalyzer)(nil)

// Analyze implements the fail-soft contract.
func (a *GradioAnalyzer) Analyze(ctx context.Context, text string) *Result {
	callID := xid.New().String()

	a.logger.Info("sentiment: calling gradio endpoint",
		slog.String("call_id", callID),
		slog.String("url", a.url),
	)

	raw, err := postJSON(ctx, a.client, a.url, nil, map[string][]string{"data": {text}})
	if err != nil {
		a.logger.Warn("sentiment: gradio call failed",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	var envelope struct {
		Data []Result `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		a.logger.Warn("sentiment: gradio returned malformed payload",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if len(envelope.Data) == 0 {
		a.logger.Warn("sentiment: gradio returned empty payload",
			slog.String("call_id", callID),
		)
		return nil
	}

	result := envelope.Data[0]
	return &result
}
