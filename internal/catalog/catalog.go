package catalog

import "strings"

// Brand points at a brand-context file understood by the generation service
type Brand struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LabelReason pairs a user segment with the marketing rationale for a message
type LabelReason struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Language is a supported UI and generation language
type Language struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// labelReasonSeparator joins label and reason in form option values.
// Labels contain dashes, so a dash cannot be used here.
const labelReasonSeparator = "|"

// Key returns the form option value for the pair
func (lr LabelReason) Key() string {
	return lr.Label + labelReasonSeparator + lr.Reason
}

// Display returns the option text shown in the selector, e.g. "new-user (welcome)"
func (lr LabelReason) Display() string {
	return lr.Label + " (" + lr.Reason + ")"
}

var brands = []Brand{
	{Value: "fullstack-challenge/data/brands/sushi_delight_mx.md", Label: "Sushi Delight MX"},
	{Value: "fullstack-challenge/data/brands/mercadopago_business_ar.md", Label: "MercadoPago Business AR"},
	{Value: "fullstack-challenge/data/brands/vetpro_chile_cl.md", Label: "VetPro Chile CL"},
}

var channels = []string{"whatsapp", "push", "email"}

var labelReasons = []LabelReason{
	{Label: "new-user", Reason: "welcome"},
	{Label: "recurrent-user", Reason: "retention"},
	{Label: "recurrent-user", Reason: "repeat-purchase"},
	{Label: "at-risk-user", Reason: "re-activate"},
	{Label: "churned", Reason: "re-activate"},
	{Label: "casual", Reason: "promote"},
}

var languages = []Language{
	{Value: "en", Label: "English"},
	{Value: "es", Label: "Spanish"},
}

// Brands returns a copy of the brand catalog
func Brands() []Brand {
	return append([]Brand(nil), brands...)
}

// Channels returns a copy of the channel catalog
func Channels() []string {
	return append([]string(nil), channels...)
}

// LabelReasons returns a copy of the label/reason catalog
func LabelReasons() []LabelReason {
	return append([]LabelReason(nil), labelReasons...)
}

// Languages returns a copy of the language catalog
func Languages() []Language {
	return append([]Language(nil), languages...)
}

func DefaultBrand() Brand             { return brands[0] }
func DefaultChannel() string          { return channels[0] }
func DefaultLabelReason() LabelReason { return labelReasons[0] }
func DefaultLanguage() Language       { return languages[0] }

// FindBrand looks up a brand by its context path
func FindBrand(value string) (Brand, bool) {
	for _, b := range brands {
		if b.Value == value {
			return b, true
		}
	}
	return Brand{}, false
}

// IsChannel reports whether the channel is in the catalog
func IsChannel(value string) bool {
	for _, c := range channels {
		if c == value {
			return true
		}
	}
	return false
}

// FindLabelReason looks up a pair by its option key ("label|reason")
func FindLabelReason(key string) (LabelReason, bool) {
	label, reason, ok := strings.Cut(key, labelReasonSeparator)
	if !ok {
		return LabelReason{}, false
	}
	for _, lr := range labelReasons {
		if lr.Label == label && lr.Reason == reason {
			return lr, true
		}
	}
	return LabelReason{}, false
}

// FindLanguage looks up a language by its code
func FindLanguage(code string) (Language, bool) {
	for _, l := range languages {
		if l.Value == code {
			return l, true
		}
	}
	return Language{}, false
}
