package catalog

// UIStrings is the string table for every static label on the page
type UIStrings struct {
	Title           string `json:"title"`
	Brand           string `json:"brand"`
	Channel         string `json:"channel"`
	LabelReason     string `json:"label_reason"`
	Prompt          string `json:"prompt"`
	PromptHint      string `json:"prompt_hint"`
	Count           string `json:"count"`
	Language        string `json:"language"`
	Submit          string `json:"submit"`
	Generating      string `json:"generating"`
	Results         string `json:"results"`
	NoMessages      string `json:"no_messages"`
	Validation      string `json:"validation"`
	Passed          string `json:"passed"`
	Failed          string `json:"failed"`
	UnknownError    string `json:"unknown_error"`
	UnexpectedError string `json:"unexpected_error"`
	InvalidInput    string `json:"invalid_input"`
}

var translations = map[string]UIStrings{
	"en": {
		Title:           "Prompt Orchestrator UI",
		Brand:           "Brand",
		Channel:         "Channel",
		LabelReason:     "Label/Reason",
		Prompt:          "Optional Operator Prompt",
		PromptHint:      "Extra guidance for the generator (leave empty to skip)",
		Count:           "Number of Messages",
		Language:        "Language",
		Submit:          "Generate Messages",
		Generating:      "Generating...",
		Results:         "Generated Messages",
		NoMessages:      "The service returned no messages.",
		Validation:      "Validation",
		Passed:          "Passed",
		Failed:          "Failed",
		UnknownError:    "An unknown error occurred.",
		UnexpectedError: "An unexpected error occurred",
		InvalidInput:    "The selected options are not valid. Reload the page and try again.",
	},
	"es": {
		Title:           "Interfaz del Orquestador de Prompts",
		Brand:           "Marca",
		Channel:         "Canal",
		LabelReason:     "Etiqueta/Motivo",
		Prompt:          "Prompt opcional del operador",
		PromptHint:      "Indicaciones extra para el generador (déjalo vacío para omitir)",
		Count:           "Número de mensajes",
		Language:        "Idioma",
		Submit:          "Generar mensajes",
		Generating:      "Generando...",
		Results:         "Mensajes generados",
		NoMessages:      "El servicio no devolvió mensajes.",
		Validation:      "Validación",
		Passed:          "Aprobada",
		Failed:          "Fallida",
		UnknownError:    "Ocurrió un error desconocido.",
		UnexpectedError: "Ocurrió un error inesperado",
		InvalidInput:    "Las opciones seleccionadas no son válidas. Recarga la página e inténtalo de nuevo.",
	},
}

// Strings returns the string table for a language code, falling back to the default language
func Strings(code string) UIStrings {
	if s, ok := translations[code]; ok {
		return s
	}
	return translations[DefaultLanguage().Value]
}

// Translations returns every string table keyed by language code
func Translations() map[string]UIStrings {
	out := make(map[string]UIStrings, len(translations))
	for k, v := range translations {
		out[k] = v
	}
	return out
}
