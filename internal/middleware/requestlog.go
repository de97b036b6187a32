package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dimitrije/amazing-calendar/internal/metrics"
	"github.com/felixge/httpsnoop"
)

const (
	maxLoggedBody = 16 << 10
	redacted      = "[REDACTED]"
)

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"authorization": {},
}

// RequestLog logs one line per request with status and duration. JSON bodies
// are attached with sensitive keys redacted.
func RequestLog(logger *slog.Logger, rec metrics.Recorder, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := captureBody(r)

		m := httpsnoop.CaptureMetrics(next, w, r)
		rec.RecordHTTPStatus(m.Code)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"duration_ms", m.Duration.Milliseconds(),
			"bytes", m.Written,
		}
		if body != nil {
			attrs = append(attrs, "body", body)
		}

		level := slog.LevelInfo
		if m.Code >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request", attrs...)
	})
}

// captureBody reads up to maxLoggedBody+1 bytes of a JSON request body for
// logging and hands the full body on to the next handler.
func captureBody(r *http.Request) any {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return nil
	}

	body := r.Body
	raw, err := io.ReadAll(io.LimitReader(body, maxLoggedBody+1))
	r.Body = splicedBody{Reader: io.MultiReader(bytes.NewReader(raw), body), Closer: body}
	if err != nil || len(raw) == 0 || len(raw) > maxLoggedBody {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	return MaskSensitive(decoded)
}

// splicedBody replays the bytes read for logging ahead of the unread remainder.
type splicedBody struct {
	io.Reader
	io.Closer
}

// MaskSensitive replaces the values of sensitive keys at any depth.
func MaskSensitive(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
				out[k] = redacted
				continue
			}
			out[k] = MaskSensitive(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = MaskSensitive(inner)
		}
		return out
	default:
		return v
	}
}
