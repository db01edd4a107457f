package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os/exec"
	"time"

	"github.com/rs/xid"
)

// scriptTimeout bounds the subprocess run. The interpreter plus the Gradio
// client library can take a few seconds to start cold; a hung process is
// killed when the context deadline fires.
const scriptTimeout = 15 * time.Second

// ScriptAnalyzer shells out to a Python client script that performs the
// analysis and prints a JSON {"label", "score"} object to stdout.
//
// The script is invoked as `python <path> <text>`. exec.CommandContext
// passes the text as a single argv element, so no shell quoting or escaping
// is involved — message text can contain anything.
type ScriptAnalyzer struct {
	scriptPath string
	logger     *slog.Logger

	// pythonBin is overridable for tests (e.g. pointed at /bin/echo).
	pythonBin string
}

// NewScriptAnalyzer creates an analyzer that runs the script at scriptPath.
func NewScriptAnalyzer(scriptPath string, logger *slog.Logger) *ScriptAnalyzer {
	return &ScriptAnalyzer{
		scriptPath: scriptPath,
		logger:     logger,
		pythonBin:  "python",
	}
}

var _ Analyzer = (*ScriptAnalyzer)(nil)

// Analyze implements the fail-soft contract: a missing interpreter, non-zero
// exit, timeout or unparseable stdout all collapse to nil.
func (a *ScriptAnalyzer) Analyze(ctx context.Context, text string) *Result {
	callID := xid.New().String()

	runCtx, cancel := context.WithTimeout(ctx, scriptTimeout)
	defer cancel()

	a.logger.Info("sentiment: running analysis script",
		slog.String("call_id", callID),
		slog.String("script", a.scriptPath),
	)

	cmd := exec.CommandContext(runCtx, a.pythonBin, a.scriptPath, text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		a.logger.Warn("sentiment: analysis script failed",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
			slog.String("stderr", truncate(stderr.Bytes(), 200)),
		)
		return nil
	}

	var result Result
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		a.logger.Warn("sentiment: analysis script printed malformed output",
			slog.String("call_id", callID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if result.Label == "" {
		a.logger.Warn("sentiment: analysis script printed empty result",
			slog.String("call_id", callID),
		)
		return nil
	}

	return &result
}
