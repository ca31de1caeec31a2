package llm

import (
	"context"

	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/models"
)

// Turn is one prior conversation entry sent to the response provider.
type Turn struct {
	Role models.Role
	Text string
}

// GenerateRequest is one exchange with the response provider. History holds
// the conversation up to (and excluding) the new message; Message is the
// text being sent now, with an optional attachment.
type GenerateRequest struct {
	History    []Turn
	Message    string
	Language   i18n.Language
	Attachment *models.Attachment
}

// StreamProvider produces a model response as a lazy sequence of text
// fragments. onFragment is called once per fragment in arrival order; a
// non-nil return from onFragment or a provider failure aborts the stream.
type StreamProvider interface {
	StreamGenerate(ctx context.Context, req GenerateRequest, onFragment func(string) error) error

	// Name returns the provider name (e.g., "googleai", "bedrock")
	Name() string
}

// Translator translates text into a target language. Best-effort: callers
// fall back to the source text on error.
type Translator interface {
	Translate(ctx context.Context, text string, lang i18n.Language) (string, error)
}
