package sentiment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"
)

// spaceTimeout bounds calls to the custom Space. The Space runs the model on
// shared, cold-startable hardware, so it gets the most generous budget of
// the backend classes.
const spaceTimeout = 30 * time.Second

// SpaceAnalyzer talks to a custom Hugging Face Space exposing a plain JSON
// endpoint: POST {baseURL}/api/sentiment with {"text": ...} returning
// {"label": "pozitif", "score": 0.99}. Labels arrive already in the
// vocabulary we store, so no remapping happens here.
type SpaceAnalyzer struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewSpaceAnalyzer creates a SpaceAnalyzer for the given Space base URL
// (e.g. "https://mete1923-emotion.hf.space").
func NewSpaceAnalyzer(baseURL string, logger *slog.Logger) *SpaceAnalyzer {
	return &SpaceAnalyzer{
		client:  &http.Client{Timeout: spaceTimeout},
		baseURL: baseURL,
		logger:  logger,
	}
}

var _ Analyzer = (*SpaceAnalyzer)(nil)

// Analyze implements the fail-soft contract: any failure is logged and
// collapsed to nil. Each call gets a correlation id so the request, response
// and failure log lines for one analysis can be grepped together.
func (a *SpaceAnalyzer) Analyze(ctx context.Context, text string) *Result {
	callID := xid.New().String()
	url := a.baseURL + "/api/sentiment"

	a.logger.Info("sentiment: calling custom space",
		slog.String("call_id", callID),
		slog.String("url", url),
	)

	raw, err := postJSON(ctx, a.client, url, nil, map[string]string{"text": text})
	if err != nil {
		a.logger.Warn("sentiment: custom space call failed",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		a.logger.Warn("sentiment: custom space returned malformed payload",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if result.Label == "" {
		a.logger.Warn("sentiment: custom space returned empty payload",
			slog.String("call_id", callID),
		)
		return nil
	}

	return &result
}
