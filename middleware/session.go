package middleware

import (
	"time"

	"techtrek/services"
	"techtrek/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	sessionLocal = "session"
	userKey      = "user_id"
	cartKey      = "user_session"
	flashKey     = "_flashes"
)

type SessionConfig struct {
	Expiration   time.Duration
	CookieSecure bool
	// Storage defaults to fiber's in-memory storage when nil.
	Storage fiber.Storage
}

// NewSessionStore builds the cookie-keyed server-side session store.
func NewSessionStore(cfg SessionConfig) *session.Store {
	if cfg.Expiration <= 0 {
		cfg.Expiration = 24 * time.Hour
	}
	return session.New(session.Config{
		Expiration:     cfg.Expiration,
		Storage:        cfg.Storage,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Sessions loads the request session into locals and saves it once the rest
// of the chain has run.
func Sessions(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			utils.Log.Error().Err(err).Msg("loading session")
			return fiber.ErrInternalServerError
		}
		c.Locals(sessionLocal, sess)

		chainErr := c.Next()

		if err := sess.Save(); err != nil {
			utils.Log.Error().Err(err).Msg("saving session")
			if chainErr == nil {
				chainErr = fiber.ErrInternalServerError
			}
		}
		return chainErr
	}
}

// Session returns the session loaded by Sessions. It panics when the
// middleware is missing, which is a wiring bug.
func Session(c *fiber.Ctx) *session.Session {
	sess, ok := c.Locals(sessionLocal).(*session.Session)
	if !ok {
		panic("middleware: Sessions middleware not installed")
	}
	return sess
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := Session(c).Get(userKey).(uint)
	return id, ok && id != 0
}

// SignIn binds userID to the session under a fresh session id.
func SignIn(c *fiber.Ctx, userID uint) error {
	sess := Session(c)
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(userKey, userID)
	return nil
}

// SignOut forgets the authenticated user. The cart token is kept.
func SignOut(c *fiber.Ctx) {
	Session(c).Delete(userKey)
}

// CartToken returns the anonymous cart token of this browser session. When
// mint is set and none exists yet, a new one is created.
func CartToken(c *fiber.Ctx, mint bool) services.CartToken {
	sess := Session(c)
	if token, ok := sess.Get(cartKey).(string); ok && token != "" {
		return services.CartToken(token)
	}
	if !mint {
		return ""
	}
	token := uuid.NewString()
	sess.Set(cartKey, token)
	return services.CartToken(token)
}
