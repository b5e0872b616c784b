package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/config"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/form"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/middleware"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls atomic.Int32
	fn    func(call int32, req models.GenerationRequest) (*models.GenerationResponse, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req models.GenerationRequest) (*models.GenerationResponse, error) {
	return f.fn(f.calls.Add(1), req)
}

func setupTestRouter(gen Generator) (*gin.Engine, *form.Store) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Environment: "test", SessionSecret: "test-secret"}
	store := form.NewStore()
	h := NewWebHandler(store, gen, nil)

	r := gin.New()
	r.Use(middleware.Session(middleware.NewSessionStore(cfg)))
	r.GET("/", h.Home)
	r.POST("/submit", h.Submit)
	r.POST("/language", h.Language)
	return r, store
}

func formValues(overrides map[string]string) url.Values {
	v := url.Values{
		"brand":        {"fullstack-challenge/data/brands/sushi_delight_mx.md"},
		"channel":      {"whatsapp"},
		"label_reason": {"new-user|welcome"},
		"count":        {"2"},
		"language":     {"en"},
	}
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func post(r *gin.Engine, path string, values url.Values, cookie *http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestHomeRendersDefaults(t *testing.T) {
	r, _ := setupTestRouter(&fakeGenerator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Prompt Orchestrator UI</title>")
	assert.Contains(t, body, `<option value="fullstack-challenge/data/brands/sushi_delight_mx.md" selected>`)
	assert.Contains(t, body, `<option value="whatsapp" selected>`)
	assert.Contains(t, body, `<option value="new-user|welcome" selected>`)
	assert.Contains(t, body, `value="1"`)
	assert.NotContains(t, body, `role="alert"`)
}

func TestHomeHonorsLangQuery(t *testing.T) {
	r, _ := setupTestRouter(&fakeGenerator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?lang=es", nil))
	assert.Contains(t, w.Body.String(), "Generar mensajes")
}

func TestHomeResetsSessionState(t *testing.T) {
	gen := &fakeGenerator{fn: func(int32, models.GenerationRequest) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: "hi", Channel: "push", Valid: true}}}, nil
	}}
	r, _ := setupTestRouter(gen)
	cookie := sessionCookie(t, r)

	w := post(r, "/submit", formValues(map[string]string{"channel": "push", "count": "3"}), cookie, false)
	require.Contains(t, w.Body.String(), "message-card")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	assert.NotContains(t, body, "message-card")
	assert.Contains(t, body, `<option value="whatsapp" selected>`)
	assert.Contains(t, body, `value="1"`)
}

func TestSubmitClampsCountBeforeCalling(t *testing.T) {
	var got models.GenerationRequest
	gen := &fakeGenerator{fn: func(_ int32, req models.GenerationRequest) (*models.GenerationResponse, error) {
		got = req
		return &models.GenerationResponse{}, nil
	}}
	r, _ := setupTestRouter(gen)

	post(r, "/submit", formValues(map[string]string{"count": "42"}), nil, true)
	assert.Equal(t, 5, got.Count)

	post(r, "/submit", formValues(map[string]string{"count": "-3"}), nil, true)
	assert.Equal(t, 1, got.Count)
}

func TestSubmitHTMXReturnsOnlyResults(t *testing.T) {
	gen := &fakeGenerator{fn: func(int32, models.GenerationRequest) (*models.GenerationResponse, error) {
		return nil, &services.ServiceError{StatusCode: http.StatusUnprocessableEntity, Detail: "count must be <= 5"}
	}}
	r, _ := setupTestRouter(gen)

	w := post(r, "/submit", formValues(nil), nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<section id="results"`), body)
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "count must be &lt;= 5")
}

func TestSubmitRejectsValuesOutsideCatalog(t *testing.T) {
	gen := &fakeGenerator{fn: func(int32, models.GenerationRequest) (*models.GenerationResponse, error) {
		t.Error("generator must not be called for an invalid form")
		return nil, nil
	}}
	r, _ := setupTestRouter(gen)

	w := post(r, "/submit", formValues(map[string]string{"channel": "carrier-pigeon"}), nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "The selected options are not valid.")

	w = post(r, "/submit", url.Values{"count": {"2"}}, nil, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, int32(0), gen.calls.Load())
}

func TestLanguageSwitchKeepsOtherFields(t *testing.T) {
	r, _ := setupTestRouter(&fakeGenerator{})
	cookie := sessionCookie(t, r)

	values := formValues(map[string]string{
		"language":     "es",
		"brand":        "fullstack-challenge/data/brands/mercadopago_business_ar.md",
		"channel":      "email",
		"label_reason": "casual|promote",
		"prompt":       "  usa tono formal ",
		"count":        "9",
	})
	w := post(r, "/language", values, cookie, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, `<div id="controls">`), body)
	for _, label := range []string{"Interfaz del Orquestador de Prompts", "Marca", "Canal", "Etiqueta/Motivo", "Número de mensajes", "Generar mensajes"} {
		assert.Contains(t, body, label)
	}
	assert.NotContains(t, body, "Generate Messages")
	assert.Contains(t, body, `<option value="fullstack-challenge/data/brands/mercadopago_business_ar.md" selected>`)
	assert.Contains(t, body, `<option value="email" selected>`)
	assert.Contains(t, body, `<option value="casual|promote" selected>`)
	assert.Contains(t, body, ">  usa tono formal </textarea>", "the prompt is not trimmed on a language switch")
	assert.Contains(t, body, `value="9"`, "the count is not clamped on a language switch")
}

func TestLanguageSwitchRelocalizesExistingResult(t *testing.T) {
	gen := &fakeGenerator{fn: func(int32, models.GenerationRequest) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: "Hola", Channel: "whatsapp", Valid: false}}}, nil
	}}
	r, _ := setupTestRouter(gen)
	cookie := sessionCookie(t, r)

	w := post(r, "/submit", formValues(nil), cookie, true)
	require.Contains(t, w.Body.String(), "Validation: Failed")

	w = post(r, "/language", formValues(map[string]string{"language": "es"}), cookie, true)
	body := w.Body.String()
	assert.Contains(t, body, "Canal: whatsapp - Validación: Fallida")
	assert.Contains(t, body, "Hola")
}

func TestLanguageSwitchDuringSubmitLeavesFormUsable(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gen := &fakeGenerator{fn: func(int32, models.GenerationRequest) (*models.GenerationResponse, error) {
		close(started)
		<-release
		return &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: "listo", Channel: "whatsapp", Valid: true}}}, nil
	}}
	r, _ := setupTestRouter(gen)
	cookie := sessionCookie(t, r)

	var wg sync.WaitGroup
	var submitBody string
	wg.Add(1)
	go func() {
		defer wg.Done()
		submitBody = post(r, "/submit", formValues(nil), cookie, true).Body.String()
	}()
	<-started

	w := post(r, "/language", formValues(map[string]string{"language": "es"}), cookie, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<button type="submit" class="button">`)
	assert.NotContains(t, body, " disabled>")
	assert.NotContains(t, body, `<div id="app">`, "the results region must not be replaced")
	assert.Contains(t, body, `hx-swap-oob="innerHTML"><p class="loading">Generando...</p>`)

	close(release)
	wg.Wait()
	assert.True(t, strings.HasPrefix(submitBody, `<section id="results"`), submitBody)
	assert.Contains(t, submitBody, "listo")
	assert.Contains(t, submitBody, "Canal: whatsapp - Validación: Aprobada")
}

func TestStaleResponseDoesNotOverwriteNewer(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gen := &fakeGenerator{fn: func(call int32, _ models.GenerationRequest) (*models.GenerationResponse, error) {
		text := "newer result"
		if call == 1 {
			close(started)
			<-release
			text = "older result"
		}
		return &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: text, Channel: "push", Valid: true}}}, nil
	}}
	r, store := setupTestRouter(gen)
	cookie := sessionCookie(t, r)

	var wg sync.WaitGroup
	var firstBody string
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstBody = post(r, "/submit", formValues(nil), cookie, true).Body.String()
	}()

	<-started
	second := post(r, "/submit", formValues(nil), cookie, true)
	assert.Contains(t, second.Body.String(), "newer result")

	close(release)
	wg.Wait()

	assert.NotContains(t, firstBody, "older result")
	assert.Contains(t, firstBody, "newer result")
	assert.Equal(t, 1, store.Len())
}

func TestSubmitShowsExactlyOneOutcome(t *testing.T) {
	outcomes := []func() (*models.GenerationResponse, error){
		func() (*models.GenerationResponse, error) {
			return &models.GenerationResponse{Messages: []models.GeneratedMessage{{Text: "ok", Channel: "email", Valid: true}}}, nil
		},
		func() (*models.GenerationResponse, error) {
			return nil, &services.ServiceError{StatusCode: http.StatusInternalServerError}
		},
		func() (*models.GenerationResponse, error) {
			return nil, fmt.Errorf("%w: dial tcp 127.0.0.1:8000: connect: connection refused", services.ErrUnexpected)
		},
	}

	for i, outcome := range outcomes {
		t.Run(fmt.Sprintf("outcome-%d", i), func(t *testing.T) {
			gen := &fakeGenerator{fn: func(int32, models.GenerationRequest) (*models.GenerationResponse, error) {
				return outcome()
			}}
			r, _ := setupTestRouter(gen)

			body := post(r, "/submit", formValues(nil), nil, true).Body.String()
			hasError := strings.Contains(body, `role="alert"`)
			hasCards := strings.Contains(body, "message-card")
			assert.True(t, hasError != hasCards, body)
			assert.NotContains(t, body, "connection refused")
		})
	}
}
