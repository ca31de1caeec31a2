package i18n

import "math/rand"

// Suggestion is a canned prompt shown on the empty chat screen.
type Suggestion struct {
	Title  string
	Prompt string
}

var suggestions = map[string][]Suggestion{
	"en": {
		{Title: "Weight Loss", Prompt: "I want to lose weight. Suggest a dinner menu."},
		{Title: "Disease Management", Prompt: "I have this condition, how should I eat?"},
		{Title: "Lab Analysis", Prompt: "Analyze my blood test results."},
	},
	"tr": {
		{Title: "Kilo Verme", Prompt: "Kilo vermek istiyorum. Akşam menüsü öner."},
		{Title: "Hastalık Yönetimi", Prompt: "Şu hastalığım var, nasıl beslenmeliyim?"},
		{Title: "Tahlil Analizi", Prompt: "Kan tahlillerimi analiz et."},
	},
	"es": {
		{Title: "Pérdida de Peso", Prompt: "Quiero perder peso. Sugiere un menú para la cena."},
		{Title: "Gestión de Enfermedades", Prompt: "Tengo esta condición, ¿cómo debo comer?"},
		{Title: "Análisis de Laboratorio", Prompt: "Analiza mis resultados de sangre."},
	},
	"de": {
		{Title: "Gewichtsverlust", Prompt: "Ich möchte abnehmen. Schlag ein Abendessen vor."},
		{Title: "Krankheitsmanagement", Prompt: "Ich habe diese Krankheit, wie soll ich essen?"},
		{Title: "Laboranalyse", Prompt: "Analysiere meine Blutwerte."},
	},
	"fr": {
		{Title: "Perte de Poids", Prompt: "Je veux perdre du poids. Suggère un menu pour le dîner."},
		{Title: "Gestion des Maladies", Prompt: "J'ai cette maladie, comment dois-je manger ?"},
		{Title: "Analyse de Laboratoire", Prompt: "Analyse mes résultats sanguins."},
	},
}

// Suggestions returns the canned prompts for a language code.
func Suggestions(code string) []Suggestion {
	if s, ok := suggestions[code]; ok {
		return s
	}
	return suggestions["en"]
}

// RandomSuggestion picks one canned prompt for the empty state.
func RandomSuggestion(code string) Suggestion {
	list := Suggestions(code)
	return list[rand.Intn(len(list))]
}
