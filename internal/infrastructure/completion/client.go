// Package completion implements the resilient completion client: an ordered
// list of upstream providers tried strictly in sequence, one attempt each.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/api/metrics"
	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// FallbackClient walks its provider list in order and returns the first
// successful completion. A later provider is only ever attempted after the
// previous one has already failed — never concurrently, never retried.
// Adding a provider is a data change at construction time.
type FallbackClient struct {
	providers []ports.CompletionProvider
	log       zerolog.Logger
}

// NewFallbackClient fails fast with a configuration error when no provider
// is supplied.
func NewFallbackClient(log zerolog.Logger, providers ...ports.CompletionProvider) (*FallbackClient, error) {
	if len(providers) == 0 {
		return nil, domain.ErrNoProviders
	}
	return &FallbackClient{providers: providers, log: log}, nil
}

// Complete tries each provider exactly once. On total failure the returned
// error names every underlying cause for operator diagnosis.
func (c *FallbackClient) Complete(ctx context.Context, prompt string) (*ports.CompletionResult, error) {
	var failures []error

	for i, provider := range c.providers {
		if i > 0 {
			metrics.CompletionFallbacksTotal.Inc()
		}

		start := time.Now()
		result, err := provider.Complete(ctx, prompt)
		metrics.CompletionDuration.WithLabelValues(provider.Name()).Observe(time.Since(start).Seconds())

		if err == nil {
			metrics.CompletionsTotal.WithLabelValues(provider.Name(), "ok").Inc()
			return result, nil
		}

		metrics.CompletionsTotal.WithLabelValues(provider.Name(), "error").Inc()
		c.log.Warn().Err(err).Str("provider", provider.Name()).Msg("completion attempt failed")
		failures = append(failures, err)
	}

	return nil, fmt.Errorf("all completion providers failed: %w", errors.Join(failures...))
}
