package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// requestLogger logs one line per request. Handler errors are rendered here
// so the logged status is the one the client sees.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := s.app.Config().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	rid, _ := c.Locals("requestid").(string)
	s.logger.Info(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
		"request_id", rid,
	)
	return nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) string {
	h := c.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticate resolves the principal once and stores it for the handlers.
func (s *Server) authenticate(c *fiber.Ctx) error {
	user, err := s.guard.RequireAuthenticated(c.UserContext(), bearerToken(c))
	if err != nil {
		return err
	}
	c.Locals(principalKey, user)
	return c.Next()
}

func (s *Server) requireActive(c *fiber.Ctx) error {
	if _, err := s.guard.RequireActive(principal(c)); err != nil {
		return err
	}
	return c.Next()
}

func (s *Server) requireAdmin(c *fiber.Ctx) error {
	if _, err := s.guard.RequireAdmin(principal(c)); err != nil {
		return err
	}
	return c.Next()
}

func principal(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(principalKey).(*models.User)
	return u
}
