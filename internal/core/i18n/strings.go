package i18n

// Strings is the interface string table for one language.
type Strings struct {
	NewChat          string
	NoHistory        string
	Role             string
	WelcomeTitle     string
	WelcomeDesc      string
	DisclaimerLabel  string
	DisclaimerText   string
	Login            string
	Logout           string
	InputPlaceholder string
	ErrorGeneric     string
	ErrorTitle       string
	You              string
	DeleteChat       string
	Translating      string
}

// T returns the string table for a language code, falling back to English.
func T(code string) Strings {
	if s, ok := tables[code]; ok {
		return s
	}
	return tables["en"]
}

var tables = map[string]Strings{
	"en": {
		NewChat:          "New Chat",
		NoHistory:        "No history yet.",
		Role:             "Medical AI Assistant",
		WelcomeTitle:     "Welcome to BioDish",
		WelcomeDesc:      "Your Personal Medical Nutrition Assistant. I can help analyze lab results, manage dietary restrictions, and plan healthy meals.",
		DisclaimerLabel:  "Disclaimer:",
		DisclaimerText:   "I am an AI, not a doctor. Advice is informational only.",
		Login:            "Log in",
		Logout:           "Log out",
		InputPlaceholder: "Ask about diet, labs, or symptoms...",
		ErrorGeneric:     "I'm having trouble connecting to the network right now. Please check your internet connection and try again.",
		ErrorTitle:       "Unable to complete request",
		You:              "You",
		DeleteChat:       "Delete chat",
		Translating:      "Translating conversation...",
	},
	"tr": {
		NewChat:          "Yeni Sohbet",
		NoHistory:        "Henüz geçmiş yok.",
		Role:             "Medikal AI Asistanı",
		WelcomeTitle:     "BioDish'e Hoşgeldiniz",
		WelcomeDesc:      "Kişisel Tıbbi Beslenme Asistanınız. Laboratuvar sonuçlarını analiz edebilir, hastalık kısıtlamalarını yönetebilir ve sağlıklı öğünler planlayabilirim.",
		DisclaimerLabel:  "Uyarı:",
		DisclaimerText:   "Ben bir yapay zekayım, doktor değilim. Tavsiyeler sadece bilgi amaçlıdır.",
		Login:            "Giriş yap",
		Logout:           "Çıkış Yap",
		InputPlaceholder: "Diyet, tahlil veya belirti sor...",
		ErrorGeneric:     "Şu anda ağ bağlantısında sorun yaşıyorum. Lütfen internet bağlantınızı kontrol edip tekrar deneyin.",
		ErrorTitle:       "İstek tamamlanamadı",
		You:              "Siz",
		DeleteChat:       "Sohbeti sil",
		Translating:      "Sohbet çevriliyor...",
	},
	"es": {
		NewChat:          "Nuevo Chat",
		NoHistory:        "Sin historial.",
		Role:             "Asistente Médico IA",
		WelcomeTitle:     "Bienvenido a BioDish",
		WelcomeDesc:      "Tu Asistente Personal de Nutrición Médica. Puedo analizar resultados de laboratorio, gestionar restricciones dietéticas y planificar comidas saludables.",
		DisclaimerLabel:  "Aviso:",
		DisclaimerText:   "Soy una IA, no un médico. El consejo es solo informativo.",
		Login:            "Iniciar sesión",
		Logout:           "Cerrar Sesión",
		InputPlaceholder: "Dieta, laboratorios, síntomas...",
		ErrorGeneric:     "Tengo problemas para conectarme a la red. Por favor verifica tu conexión.",
		ErrorTitle:       "No se pudo completar",
		You:              "Tú",
		DeleteChat:       "Eliminar chat",
		Translating:      "Traduciendo conversación...",
	},
	"de": {
		NewChat:          "Neuer Chat",
		NoHistory:        "Kein Verlauf.",
		Role:             "Medizinischer KI-Assistent",
		WelcomeTitle:     "Willkommen bei BioDish",
		WelcomeDesc:      "Ihr persönlicher Assistent für medizinische Ernährung. Ich kann Laborergebnisse analysieren und gesunde Mahlzeiten planen.",
		DisclaimerLabel:  "Haftungsausschluss:",
		DisclaimerText:   "Ich bin eine KI, kein Arzt. Beratung dient nur zur Information.",
		Login:            "Anmelden",
		Logout:           "Abmelden",
		InputPlaceholder: "Fragen Sie nach Diät, Labor, Symptomen...",
		ErrorGeneric:     "Ich habe Verbindungsprobleme. Bitte überprüfen Sie Ihr Internet.",
		ErrorTitle:       "Anfrage fehlgeschlagen",
		You:              "Du",
		DeleteChat:       "Chat löschen",
		Translating:      "Gespräch wird übersetzt...",
	},
	"fr": {
		NewChat:          "Nouvelle Discussion",
		NoHistory:        "Aucun historique.",
		Role:             "Assistant IA Médical",
		WelcomeTitle:     "Bienvenue sur BioDish",
		WelcomeDesc:      "Votre assistant personnel en nutrition médicale. Je peux analyser les résultats de laboratoire et planifier des repas sains.",
		DisclaimerLabel:  "Avertissement :",
		DisclaimerText:   "Je suis une IA, pas un médecin. Conseils à titre informatif uniquement.",
		Login:            "Se connecter",
		Logout:           "Se déconnecter",
		InputPlaceholder: "Alimentation, labos, symptômes...",
		ErrorGeneric:     "J'ai du mal à me connecter au réseau. Veuillez vérifier votre connexion.",
		ErrorTitle:       "Impossible de terminer",
		You:              "Vous",
		DeleteChat:       "Supprimer la discussion",
		Translating:      "Traduction de la conversation...",
	},
}
