package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/models"
)

// ChatModel implements StreamProvider and Translator on top of any
// langchaingo model. The concrete backend (GoogleAI, Bedrock) only differs
// in construction.
type ChatModel struct {
	model   llms.Model
	name    string
	persona string
}

// StreamGenerate implements StreamProvider
func (c *ChatModel) StreamGenerate(ctx context.Context, req GenerateRequest, onFragment func(string) error) error {
	content := make([]llms.MessageContent, 0, len(req.History)+2)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, SystemInstruction(c.persona, req.Language)))

	for _, turn := range req.History {
		role := llms.ChatMessageTypeHuman
		if turn.Role == models.RoleModel {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, turn.Text))
	}

	parts := []llms.ContentPart{}
	if req.Attachment != nil {
		raw, err := base64.StdEncoding.DecodeString(req.Attachment.Data)
		if err != nil {
			return fmt.Errorf("invalid attachment payload: %w", err)
		}
		parts = append(parts, llms.BinaryPart(req.Attachment.MimeType, raw))
	}
	parts = append(parts, llms.TextPart(req.Message))
	content = append(content, llms.MessageContent{Role: llms.ChatMessageTypeHuman, Parts: parts})

	_, err := c.model.GenerateContent(ctx, content,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return onFragment(string(chunk))
		}),
	)
	if err != nil {
		return fmt.Errorf("%s generation failed: %w", c.name, err)
	}
	return nil
}

// Translate implements Translator. A separate one-shot call keeps
// translation out of the chat context; low temperature keeps it literal.
func (c *ChatModel) Translate(ctx context.Context, text string, lang i18n.Language) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, translationPrompt(text, lang),
		llms.WithTemperature(0.1),
	)
	if err != nil {
		return "", fmt.Errorf("%s translation failed: %w", c.name, err)
	}
	if out == "" {
		return text, nil
	}
	return out, nil
}

// Name implements StreamProvider
func (c *ChatModel) Name() string {
	return c.name
}
