package templates

//go:generate templ generate

import (
	"errors"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/catalog"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/form"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/services"
)

// PageData is everything the page components need, already localized
type PageData struct {
	T            catalog.UIStrings
	Selections   form.Selections
	Loading      bool
	ErrorMessage string
	Response     *models.GenerationResponse
}

// NewPageData localizes a form snapshot for rendering
func NewPageData(snap form.Snapshot) PageData {
	t := catalog.Strings(snap.Selections.Language)
	data := PageData{
		T:          t,
		Selections: snap.Selections,
		Loading:    snap.Phase == form.PhaseLoading,
	}
	switch snap.Phase {
	case form.PhaseFailed:
		data.ErrorMessage = ErrorMessage(snap.Err, t)
	case form.PhaseSucceeded:
		data.Response = snap.Response
	}
	return data
}

// ErrorMessage turns a submit error into the single line shown to the operator.
// Only a service-reported detail is shown verbatim; everything else is generic.
func ErrorMessage(err error, t catalog.UIStrings) string {
	if err == nil {
		return ""
	}
	if se, ok := services.AsServiceError(err); ok {
		if se.HasDetail() {
			return se.Detail
		}
		return t.UnknownError
	}
	if errors.Is(err, form.ErrInvalidSelection) {
		return t.InvalidInput
	}
	return t.UnexpectedError
}

// StatusLine is the indicator under each message, e.g. "Channel: push - Validation: Passed"
func StatusLine(msg models.GeneratedMessage, t catalog.UIStrings) string {
	result := t.Failed
	if msg.Valid {
		result = t.Passed
	}
	return t.Channel + ": " + msg.Channel + " - " + t.Validation + ": " + result
}

func messageTextClass(msg models.GeneratedMessage) string {
	if msg.Valid {
		return "message-text"
	}
	return "message-text message-text--invalid"
}

func statusClass(msg models.GeneratedMessage) string {
	if msg.Valid {
		return "alert alert--success"
	}
	return "alert alert--warning"
}
