package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// sensitiveFields are field names that should be filtered from logs
var sensitiveFields = []string{
	"signature_key",
	"server_key",
	"token",
	"authorization",
	"secret",
	"api_key",
	"credential",
}

func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := middleware.GetReqID(r.Context())

			logRequest(logger, r, reqID)

			ww := &responseWriter{
				ResponseWriter: w,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logResponse(logger, ww, duration, reqID)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture response body
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

func logRequest(logger *slog.Logger, r *http.Request, reqID string) {
	var bodyBytes []byte
	if r.Body != nil {
		bodyBytes, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	headers := filterSensitiveHeaders(r.Header)
	filteredBody := filterSensitiveBody(bodyBytes)

	logger.Info("incoming request",
		"request_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"headers", headers,
		"body", filteredBody,
	)
}

func logResponse(logger *slog.Logger, rw *responseWriter, duration time.Duration, reqID string) {
	statusCode := rw.statusCode
	if statusCode == 0 {
		statusCode = 200
	}

	filteredBody := filterSensitiveBody(rw.body.Bytes())

	logLevel := slog.LevelInfo
	if statusCode >= 400 && statusCode < 500 {
		logLevel = slog.LevelWarn
	} else if statusCode >= 500 {
		logLevel = slog.LevelError
	}

	logger.Log(nil, logLevel, "response",
		"request_id", reqID,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
		"response_size", rw.body.Len(),
		"body", filteredBody,
	)
}

func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitiveField(name) {
			filtered[name] = "[FILTERED]"
			continue
		}
		filtered[name] = strings.Join(values, ", ")
	}
	return filtered
}

// filterSensitiveBody masks sensitive values in a JSON body; non-JSON bodies
// are passed through untouched.
func filterSensitiveBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}

	for key := range parsed {
		if isSensitiveField(key) {
			parsed[key] = "[FILTERED]"
		}
	}

	filtered, err := json.Marshal(parsed)
	if err != nil {
		return string(body)
	}
	return string(filtered)
}

func isSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}
