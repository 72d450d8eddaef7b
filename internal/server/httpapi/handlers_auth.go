package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) discovery(c *fiber.Ctx) error {
	return c.JSON(discoveryResponse{
		TokenEndpoint:        common.TokenURL,
		GrantTypesSupported:  []string{"password"},
		AuthMethodsSupported: []string{"none"},
	})
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	u, err := s.accounts.Register(c.UserContext(), req.Email, strings.TrimSpace(req.Name), req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(u))
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	pair, err := s.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(tokenResponse{AccessToken: pair.AccessToken, TokenType: pair.TokenType})
}

func (s *Server) me(c *fiber.Ctx) error {
	return c.JSON(newUserResponse(principal(c)))
}
