package completion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Complete(_ context.Context, _ string) (*ports.CompletionResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &ports.CompletionResult{Text: p.text, Model: p.name}, nil
}

func TestFallbackClient_NoProviders(t *testing.T) {
	if _, err := NewFallbackClient(zerolog.Nop()); !errors.Is(err, domain.ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

func TestFallbackClient_PrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{name: "gemini-primary", text: "answer"}
	secondary := &fakeProvider{name: "gemini-secondary", text: "unused"}

	client, err := NewFallbackClient(zerolog.Nop(), primary, secondary)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := client.Complete(context.Background(), "question")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Text != "answer" || res.Model != "gemini-primary" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if secondary.calls != 0 {
		t.Fatalf("secondary must not be attempted when primary succeeds")
	}
}

func TestFallbackClient_FallsBackInOrder(t *testing.T) {
	primary := &fakeProvider{name: "gemini-primary", err: errors.New("quota exceeded")}
	secondary := &fakeProvider{name: "gemini-secondary", text: "backup answer"}

	client, err := NewFallbackClient(zerolog.Nop(), primary, secondary)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := client.Complete(context.Background(), "question")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Text != "backup answer" {
		t.Fatalf("expected the secondary's answer, got %q", res.Text)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("each provider gets exactly one attempt: %d/%d", primary.calls, secondary.calls)
	}
}

func TestFallbackClient_AllFailNamesEveryCause(t *testing.T) {
	errPrimary := errors.New("quota exceeded")
	errSecondary := errors.New("invalid api key")
	primary := &fakeProvider{name: "gemini-primary", err: errPrimary}
	secondary := &fakeProvider{name: "gemini-secondary", err: errSecondary}

	client, err := NewFallbackClient(zerolog.Nop(), primary, secondary)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Complete(context.Background(), "question")
	if err == nil {
		t.Fatalf("expected total failure")
	}
	if !errors.Is(err, errPrimary) || !errors.Is(err, errSecondary) {
		t.Fatalf("combined error must wrap every cause: %v", err)
	}
	if !strings.Contains(err.Error(), "all completion providers failed") {
		t.Fatalf("combined error lacks summary: %v", err)
	}
}

func TestFallbackClient_NoRetryOfFailedProvider(t *testing.T) {
	flaky := &fakeProvider{name: "gemini-primary", err: errors.New("timeout")}
	client, err := NewFallbackClient(zerolog.Nop(), flaky)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Complete(context.Background(), "q"); err == nil {
		t.Fatalf("expected failure")
	}
	if flaky.calls != 1 {
		t.Fatalf("provider retried within one call: %d attempts", flaky.calls)
	}
}
