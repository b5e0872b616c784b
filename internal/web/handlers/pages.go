package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/form"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/logger"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/metrics"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/middleware"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/services"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// Generator is the generation service as seen by the web handlers
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResponse, error)
}

type WebHandler struct {
	store         *form.Store
	generator     Generator
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

func NewWebHandler(store *form.Store, generator Generator, cw *metrics.Client) *WebHandler {
	if cw == nil {
		cw = metrics.Disabled("")
	}
	return &WebHandler{
		store:         store,
		generator:     generator,
		cloudwatch:    cw,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

// Home renders the form with every field reset to its catalog default.
// ?lang= picks the initial language.
func (h *WebHandler) Home(c *gin.Context) {
	state := h.store.Get(middleware.GetSessionID(c))
	state.Reset()
	if lang := c.Query("lang"); lang != "" {
		state.SetLanguage(lang)
	}

	render(c, http.StatusOK, templates.Page(templates.NewPageData(state.Snapshot())))
}

// Language re-renders every label in the posted language. The other posted
// fields are kept exactly as typed; the count is only clamped on submit.
// htmx gets the controls plus an in-place update of the results region, so
// a submit still in flight keeps a live target.
func (h *WebHandler) Language(c *gin.Context) {
	state := h.store.Get(middleware.GetSessionID(c))

	var in form.FormInput
	if err := c.ShouldBind(&in); err == nil {
		if sel, err := in.Draft(); err == nil {
			state.Apply(sel)
		}
	}
	state.SetLanguage(c.PostForm("language"))

	data := templates.NewPageData(state.Snapshot())
	if isHTMX(c) {
		render(c, http.StatusOK, templates.LanguageSwap(data))
		return
	}
	render(c, http.StatusOK, templates.Page(data))
}

// Submit sends the posted selections to the generation service and renders
// either the returned messages or a single error message
func (h *WebHandler) Submit(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	state := h.store.Get(sessionID)
	fields := logger.WithContext(c)

	var in form.FormInput
	var sel form.Selections
	err := c.ShouldBind(&in)
	if err == nil {
		sel, err = in.Normalize()
	} else {
		err = fmt.Errorf("%w: %v", form.ErrInvalidSelection, err)
	}
	if err != nil {
		logger.Warn("Rejected form submission", logger.Fields{
			"request_id": fields["request_id"],
			"session_id": sessionID,
			"error":      err.Error(),
		})
		seq := state.BeginSubmit(state.Snapshot().Selections)
		state.Fail(seq, err)
		h.respond(c, state, http.StatusUnprocessableEntity)
		return
	}

	seq := state.BeginSubmit(sel)
	fields["seq"] = seq
	fields["brand"] = sel.Brand.Label
	fields["channel"] = sel.Channel
	fields["count"] = sel.Count
	fields["language"] = sel.Language

	// The call is never cancelled, even if the browser goes away
	ctx := context.WithoutCancel(c.Request.Context())
	start := time.Now()
	resp, err := h.generator.Generate(ctx, sel.Request())
	duration := time.Since(start)

	var applied bool
	outcome := metrics.OutcomeSuccess
	messages, invalid := 0, 0
	if err != nil {
		applied = state.Fail(seq, err)
		outcome = outcomeFor(err)
		if outcome == metrics.OutcomeUnexpected {
			logger.Error("Generation request failed", err, fields)
		} else {
			fields["error"] = err.Error()
		}
	} else {
		applied = state.Complete(seq, resp)
		messages, invalid = len(resp.Messages), resp.InvalidCount()
	}
	if !applied {
		outcome = metrics.OutcomeStale
	}

	logger.LogGenerationRequest(ctx, outcome, duration, messages, invalid, fields)
	h.sentryMetrics.RecordGeneration(ctx, outcome, duration, messages, invalid)
	h.cloudwatch.RecordGeneration(sel.Channel, outcome, duration, messages, invalid)

	h.respond(c, state, http.StatusOK)
}

// respond renders the results region for htmx, or the whole page otherwise.
// htmx does not swap error responses, so partials always use 200.
func (h *WebHandler) respond(c *gin.Context, state *form.State, status int) {
	data := templates.NewPageData(state.Snapshot())
	if isHTMX(c) {
		render(c, http.StatusOK, templates.Results(data))
		return
	}
	render(c, status, templates.Page(data))
}

func outcomeFor(err error) string {
	if _, ok := services.AsServiceError(err); ok {
		return metrics.OutcomeServiceError
	}
	// ErrUnexpected and anything a Generator returns outside the contract
	return metrics.OutcomeUnexpected
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
	}
}
