package middleware

import (
	"net/http"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/config"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/form"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName      = "orchestrator_session"
	sessionIDKey     = "sid"
	sessionIDContext = "session_id"
	// SessionMaxAge is the cookie lifetime and the idle timeout of form state
	SessionMaxAge = form.DefaultIdleTimeout
)

// NewSessionStore builds the signed cookie store that carries the browser session id
func NewSessionStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.Path = "/"
	store.Options.MaxAge = int(SessionMaxAge.Seconds())
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.IsProduction() // Use secure cookies in production
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// Session attaches a stable session id to every request, issuing a new
// cookie when the browser has none or presents one that fails verification
func Session(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get never returns a nil session; err is set for a tampered or stale cookie
		session, err := store.Get(c.Request, sessionName)
		if err != nil {
			logger.Debug("Discarding invalid session cookie", logger.Fields{"error": err.Error()})
		}

		sid, _ := session.Values[sessionIDKey].(string)
		if sid == "" {
			sid = uuid.New().String()
			session.Values[sessionIDKey] = sid
			if err := session.Save(c.Request, c.Writer); err != nil {
				logger.Error("Failed to save session", err, logger.Fields{"request_id": c.GetString("request_id")})
			}
		}

		c.Set(sessionIDContext, sid)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDContext)
}
