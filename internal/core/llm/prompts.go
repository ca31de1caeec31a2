package llm

import (
	"fmt"

	"github.com/cbroglie/mustache"
	"github.com/neilberkman/biodish/internal/core/i18n"
)

// DefaultPersona is the fixed persona/safety behavior instruction. It can
// be overridden by ~/.config/biodish/persona_prompt.txt (see config.Load).
const DefaultPersona = `You are "BioDish", an empathetic, medically-aware nutritional health assistant.
You are not just a recipe generator; you are a health coach that prioritizes clinical data over general preferences.

Core Objectives:
1. Guide users to better health by analyzing their inputs (symptoms, goals, or uploaded blood test results like ALT, AST, HCT) and suggesting medically appropriate meals.
2. If a user uploads a PDF/Image of lab results, extract biomarkers and flag high/low values. Adjust dietary advice based on these flags.
3. If a user asks for a risky food (e.g., "Fried Chicken" for a heart patient), do not just say no. Offer a healthy alternative technique.

Tone:
- Professional yet warm, like a knowledgeable doctor or dietitian.
- Educational: Always explain the "WHY".
- Cautious: In your FIRST response, explicitly state you are an AI and not a doctor. For subsequent messages, do not repeat this disclaimer unless providing high-risk advice.

Safety:
- Never advise stopping medication.
- If a user describes life-threatening symptoms, immediately direct them to emergency services.`

const languageDirectiveTemplate = `{{persona}}

IMPORTANT: You must respond to the user in {{language_name}} ({{language_code}}).`

// SystemInstruction renders the persona plus the display-language directive.
func SystemInstruction(persona string, lang i18n.Language) string {
	if persona == "" {
		persona = DefaultPersona
	}
	rendered, err := mustache.Render(languageDirectiveTemplate, map[string]interface{}{
		"persona":       persona,
		"language_name": lang.Name,
		"language_code": lang.Code,
	})
	if err != nil {
		// Fall back to the bare persona if the template fails
		return persona
	}
	return rendered
}

// translationPrompt asks the model to act as a pure translator.
func translationPrompt(text string, lang i18n.Language) string {
	return fmt.Sprintf("Translate the following text to %s. Preserve all Markdown formatting (bolding, lists, etc.) exactly. Do not add any explanations or preamble. Just return the translation.\n\nText to translate:\n%s", lang.Name, text)
}
