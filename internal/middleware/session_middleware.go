package middleware

import (
	"log"

	"scm/internal/models"
	"scm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys. The flash message is stored as two plain strings so the
// session storage never has to encode a struct.
const (
	sessionEmailKey        = "user_email"
	sessionFlashContentKey = "flash_content"
	sessionFlashTypeKey    = "flash_type"
)

// Locals keys read by ViewData.
const (
	localsUserKey    = "loggedInUser"
	localsMessageKey = "message"
)

// Login records the authenticated account email in the session.
func Login(c *fiber.Ctx, store *session.Store, email string) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionEmailKey, email)
	return sess.Save()
}

// Logout destroys the whole session.
func Logout(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SessionEmail returns the authenticated email, or "" for guests.
func SessionEmail(c *fiber.Ctx, store *session.Store) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	if email, ok := sess.Get(sessionEmailKey).(string); ok {
		return email
	}
	return ""
}

// Flash stores a one-shot message shown on the next rendered page.
func Flash(c *fiber.Ctx, store *session.Store, msg models.Message) {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("failed to open session for flash message: %v", err)
		return
	}
	sess.Set(sessionFlashContentKey, msg.Content)
	sess.Set(sessionFlashTypeKey, string(msg.Type))
	if err := sess.Save(); err != nil {
		log.Printf("failed to save flash message: %v", err)
	}
}

// popFlash removes and returns the pending flash message, if any.
func popFlash(c *fiber.Ctx, store *session.Store) *models.Message {
	sess, err := store.Get(c)
	if err != nil {
		return nil
	}
	content, ok := sess.Get(sessionFlashContentKey).(string)
	if !ok || content == "" {
		return nil
	}
	msgType, _ := sess.Get(sessionFlashTypeKey).(string)
	sess.Delete(sessionFlashContentKey)
	sess.Delete(sessionFlashTypeKey)
	if err := sess.Save(); err != nil {
		log.Printf("failed to clear flash message: %v", err)
	}
	return &models.Message{Content: content, Type: models.MessageType(msgType)}
}

// AuthRequired guards a route group: guests are redirected to the login
// page.
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionEmail(c, store) == "" {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// WithLoggedInUser loads the logged-in user's record and the pending flash
// message into the request locals so every rendered page can show them.
func WithLoggedInUser(store *session.Store, userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email := SessionEmail(c, store); email != "" {
			if user := userService.GetByEmail(email); user != nil {
				c.Locals(localsUserKey, user)
			}
		}
		if msg := popFlash(c, store); msg != nil {
			c.Locals(localsMessageKey, msg)
		}
		return c.Next()
	}
}

// LoggedInUser returns the user loaded by WithLoggedInUser, or nil.
func LoggedInUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(localsUserKey).(*models.User); ok {
		return user
	}
	return nil
}

// ViewData merges the logged-in user and the flash message into the bind
// data for a render.
func ViewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	if user := LoggedInUser(c); user != nil {
		data[localsUserKey] = user
	}
	if msg, ok := c.Locals(localsMessageKey).(*models.Message); ok && msg != nil {
		data[localsMessageKey] = msg
	}
	return data
}
