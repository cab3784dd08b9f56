package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hjakub/drive-backend/pkg/util"
)

// Context key for the resolved session token
const (
	SessionTokenKey = "session_token"
)

type SessionMiddleware struct {
	cookieName string
}

func NewSessionMiddleware(cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
	}
}

// Resolve reads the session cookie and stores the token in the request
// context. When the cookie is absent a fresh token is minted and set on
// the response (Path=/, SameSite=Lax, session lifetime). The value of a
// present cookie is taken verbatim: the store lazily creates a cart for
// any token, so an unknown token behaves exactly like a lost one.
// Storage is never touched here.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			token = util.GenerateSessionToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(m.cookieName, token, 0, "/", "", false, false)

			log.Debug("Minted new session token", map[string]interface{}{
				"cookie": m.cookieName,
			})
		}

		c.Set(SessionTokenKey, token)
		c.Next()
	}
}

// GetSessionToken retrieves the resolved session token from gin context
func GetSessionToken(c *gin.Context) (string, bool) {
	token := c.GetString(SessionTokenKey)
	return token, token != ""
}
