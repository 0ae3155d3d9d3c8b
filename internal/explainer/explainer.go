package explainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"word-explainer/internal/llm"
	"word-explainer/internal/metrics"
	"word-explainer/internal/types"

	"github.com/avast/retry-go"
)

// SystemPrompt is the fixed system-role instruction sent with every request.
const SystemPrompt = "You are a helpful vocabulary learning assistant."

// Defaults applied when the caller leaves a parameter empty.
const (
	DefaultNativeLanguage = "English"
	DefaultLearningStyle  = "standard"
)

// Options configures an Explainer.
type Options struct {
	Prompts      *PromptBuilder // nil uses the built-in templates
	JSONMode     bool           // Parse replies as JSON objects
	MaxRetries   uint           // Extra attempts for retryable failures; 0 means one attempt
	RetryBackoff time.Duration  // Base delay, doubled after each retry
}

// Explainer turns a word into an Explanation with one completion call per attempt.
// It holds no mutable state and is safe for concurrent use.
type Explainer struct {
	client       llm.Client
	prompts      *PromptBuilder
	jsonMode     bool
	maxRetries   uint
	retryBackoff time.Duration
}

// New creates an Explainer backed by client.
func New(client llm.Client, opts Options) *Explainer {
	prompts := opts.Prompts
	if prompts == nil {
		prompts = NewPromptBuilder("", opts.JSONMode)
	}
	return &Explainer{
		client:       client,
		prompts:      prompts,
		jsonMode:     opts.JSONMode,
		maxRetries:   opts.MaxRetries,
		retryBackoff: opts.RetryBackoff,
	}
}

// GenerateExplanation asks the model to explain word for a learner with the
// given native language and learning style. An empty string stands for an
// omitted argument and falls back to DefaultNativeLanguage or
// DefaultLearningStyle, so an explicitly empty value cannot be sent to the model.
//
// On failure the error is a *types.ExplanationGenerationError whose Kind tells
// transient failures apart from permanent ones; no partial result is returned.
func (e *Explainer) GenerateExplanation(ctx context.Context, word, nativeLanguage, learningStyle string) (Explanation, error) {
	if nativeLanguage == "" {
		nativeLanguage = DefaultNativeLanguage
	}
	if learningStyle == "" {
		learningStyle = DefaultLearningStyle
	}

	sections, err := e.generate(ctx, word, nativeLanguage, learningStyle)
	if err != nil {
		genErr := types.NewExplanationGenerationError(word, err)
		metrics.ExplanationsTotal.WithLabelValues("error").Inc()
		slog.Error("explanation failed", "word", word, "kind", genErr.Kind, "error", err)
		return Explanation{}, genErr
	}

	recordMissingSections(sections)
	metrics.ExplanationsTotal.WithLabelValues("success").Inc()
	slog.Debug("explanation generated", "word", word, "backend", e.client.Name())

	return Explanation{
		Word:           word,
		Definition:     sections.Definition,
		Mnemonic:       sections.Mnemonic,
		Example:        sections.Example,
		NativeLanguage: nativeLanguage,
		LearningStyle:  learningStyle,
	}, nil
}

func (e *Explainer) generate(ctx context.Context, word, nativeLanguage, learningStyle string) (Sections, error) {
	prompt, err := e.prompts.Build(word, nativeLanguage, learningStyle)
	if err != nil {
		return Sections{}, fmt.Errorf("build prompt: %w", err)
	}

	var sections Sections
	var lastErr error
	err = retry.Do(
		func() error {
			reply, err := e.query(ctx, prompt)
			if err != nil {
				lastErr = err
				if !types.KindOf(err).Retryable() {
					return retry.Unrecoverable(err)
				}
				return err
			}
			sections, err = e.parse(reply)
			if err != nil {
				lastErr = err
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(e.maxRetries+1),
		retry.Delay(e.retryBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("llm call attempt failed", "attempt", n+1, "max", e.maxRetries+1, "error", err)
		}),
	)
	if err != nil {
		if lastErr == nil {
			// The context ended before the first attempt
			lastErr = err
		}
		return Sections{}, lastErr
	}
	return sections, nil
}

func (e *Explainer) query(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := e.client.SimpleTextQuery(ctx, SystemPrompt, prompt)

	result := "success"
	if err != nil {
		result = string(types.KindOf(err))
	}
	metrics.LLMRequestDuration.WithLabelValues(e.client.Name(), result).Observe(time.Since(start).Seconds())
	return reply, err
}

func (e *Explainer) parse(reply string) (Sections, error) {
	if e.jsonMode {
		return ParseJSONResponse(reply)
	}
	return ParseResponse(reply), nil
}

func recordMissingSections(s Sections) {
	if s.Definition == "" {
		metrics.MissingSections.WithLabelValues("definition").Inc()
	}
	if s.Mnemonic == "" {
		metrics.MissingSections.WithLabelValues("mnemonic").Inc()
	}
	if s.Example == "" {
		metrics.MissingSections.WithLabelValues("example").Inc()
	}
}
