package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"word-explainer/internal/explainer"
	"word-explainer/internal/metrics"
	"word-explainer/internal/types"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/sjson"
)

// RequestIDHeader carries the request correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

var validate = validator.New()

// Generator produces explanations. *explainer.Explainer satisfies it.
type Generator interface {
	GenerateExplanation(ctx context.Context, word, nativeLanguage, learningStyle string) (explainer.Explanation, error)
}

// ExplainRequest is the body of POST /explain.
type ExplainRequest struct {
	Word           string `json:"word" validate:"required,max=100"`
	NativeLanguage string `json:"native_language" validate:"max=50"`
	LearningStyle  string `json:"learning_style" validate:"max=50"`
}

// ExplainHandler serves POST /explain.
type ExplainHandler struct {
	gen         Generator
	maxBodySize int64
	timeout     time.Duration
}

// NewExplainHandler creates the explain endpoint handler. A positive timeout
// bounds each explanation; when it expires the caller gets a 504 and the
// generation context is cancelled.
func NewExplainHandler(gen Generator, maxBodySize int64, timeout time.Duration) *ExplainHandler {
	return &ExplainHandler{gen: gen, maxBodySize: maxBodySize, timeout: timeout}
}

// ServeHTTP decodes the request, runs one explanation and writes the record as JSON.
func (h *ExplainHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get(RequestIDHeader)
	logger := slog.With("request_id", requestID)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
			return
		}
		logger.Warn("read body failed", "error", err)
		writeError(w, http.StatusBadRequest, "bad_request", "error reading request body")
		return
	}

	var req ExplainRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	req.Word = strings.TrimSpace(req.Word)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", validationMessage(err))
		return
	}

	logger.Info("explain request", "word", req.Word, "native_language", req.NativeLanguage, "learning_style", req.LearningStyle)

	exp, err := h.generate(r.Context(), req)
	if err != nil {
		kind := types.KindOf(err)
		writeError(w, statusForKind(kind), string(kind), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, exp)
}

type generateResult struct {
	exp explainer.Explanation
	err error
}

// generate runs the explanation under the handler timeout. It returns as soon
// as the deadline passes, even if the generator ignores cancellation.
func (h *ExplainHandler) generate(ctx context.Context, req ExplainRequest) (explainer.Explanation, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	done := make(chan generateResult, 1)
	go func() {
		exp, err := h.gen.GenerateExplanation(ctx, req.Word, req.NativeLanguage, req.LearningStyle)
		done <- generateResult{exp: exp, err: err}
	}()

	select {
	case res := <-done:
		return res.exp, res.err
	case <-ctx.Done():
		slog.Warn("explain request deadline exceeded", "word", req.Word, "timeout", h.timeout)
		return explainer.Explanation{}, types.NewExplanationGenerationError(req.Word, ctx.Err())
	}
}

// statusForKind maps a failure kind to the HTTP status reported to the caller.
func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindRateLimit:
		return http.StatusTooManyRequests
	case types.KindTimeout:
		return http.StatusGatewayTimeout
	case types.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, field+" must be at most "+fe.Param()+" characters")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "encode response failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
	metrics.HTTPRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	body, _ := sjson.SetBytes([]byte(`{}`), "error.kind", kind)
	body, _ = sjson.SetBytes(body, "error.message", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
	metrics.HTTPRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}
