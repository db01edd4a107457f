package sentiment

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"
)

// hfTimeout bounds calls to the hosted inference API. The hosted API is
// faster than a cold Space but can still queue behind model loading.
const hfTimeout = 10 * time.Second

// DefaultHFModel is a multilingual sentiment model that handles Turkish.
const DefaultHFModel = "cardiffnlp/twitter-xlm-roberta-base-sentiment"

// labelMap translates the model's English label vocabulary into the Turkish
// labels the rest of the system stores and displays. Lookups are done on the
// lowercased label; anything unknown passes through lowercased.
var labelMap = map[string]string{
	"positive": "pozitif",
	"negative": "negatif",
	"neutral":  "nötr",
}

// HuggingFaceAnalyzer talks to the Hugging Face hosted inference API.
//
// WIRE SHAPE:
// Request {"inputs": text}; response is a batch of batches —
// [[{"label": "positive", "score": 0.99}, ...]] — one inner list per input,
// candidates sorted best first. We sent one input, so the answer is the
// first element of the first batch.
type HuggingFaceAnalyzer struct {
	client  *http.Client
	modelID string
	token   string // optional — public models work unauthenticated
	logger  *slog.Logger

	// baseURL is overridable for tests; production uses the real API.
	baseURL string
}

// NewHuggingFaceAnalyzer creates an analyzer for the given model id. An
// empty modelID falls back to DefaultHFModel; an empty token sends no
// Authorization header.
func NewHuggingFaceAnalyzer(modelID, token string, logger *slog.Logger) *HuggingFaceAnalyzer {
	if modelID == "" {
		modelID = DefaultHFModel
	}
	return &HuggingFaceAnalyzer{
		client:  &http.Client{Timeout: hfTimeout},
		modelID: modelID,
		token:   token,
		logger:  logger,
		baseURL: "https://api-inference.huggingface.co",
	}
}

var _ Analyzer = (*HuggingFaceAnalyzer)(nil)

// Analyze implements the fail-soft contract. Scores are rounded to 4
// decimal places before storage so the persisted value is stable across
// model-side float formatting changes.
func (a *HuggingFaceAnalyzer) Analyze(ctx context.Context, text string) *Result {
	callID := xid.New().String()
	url := a.baseURL + "/models/" + a.modelID

	headers := map[string]string{}
	if a.token != "" {
		headers["Authorization"] = "Bearer " + a.token
	}

	a.logger.Info("sentiment: calling huggingface inference",
		slog.String("call_id", callID),
		slog.String("model", a.modelID),
	)

	raw, err := postJSON(ctx, a.client, url, headers, map[string]string{"inputs": text})
	if err != nil {
		a.logger.Warn("sentiment: huggingface call failed",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	var batches [][]Result
	if err := json.Unmarshal(raw, &batches); err != nil {
		a.logger.Warn("sentiment: huggingface returned malformed payload",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if len(batches) == 0 || len(batches[0]) == 0 {
		a.logger.Warn("sentiment: huggingface returned empty payload",
			slog.String("call_id", callID),
		)
		return nil
	}

	top := batches[0][0]
	return &Result{
		Label: remapLabel(top.Label),
		Score: math.Round(top.Score*10000) / 10000,
	}
}

// remapLabel translates a model label into the stored Turkish vocabulary.
func remapLabel(label string) string {
	lower := strings.ToLower(label)
	if mapped, ok := labelMap[lower]; ok {
		return mapped
	}
	return lower
}
