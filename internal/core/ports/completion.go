package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// CompletionResult is a single non-streaming text completion.
type CompletionResult struct {
	Text   string
	Model  string
	Tokens domain.TokenEstimate
}

// Completer produces a completion for a prompt. The call is synchronous and
// total: either text comes back or a single error does.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*CompletionResult, error)
}

// CompletionProvider is one upstream credential/model pair. Providers are
// consumed in order by the fallback client; each gets exactly one attempt
// per Complete call.
type CompletionProvider interface {
	Completer
	Name() string
}
