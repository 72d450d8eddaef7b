package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/gofiber/fiber/v2"
)

const (
	detailUnauthenticated    = "could not validate credentials"
	detailInvalidCredentials = "incorrect email or password"
	detailInternal           = "internal server error"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// errorHandler maps service errors to HTTP statuses. Internal failures are
// logged and reported with a generic message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status, detail := fiber.StatusInternalServerError, detailInternal

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		status, detail = fe.Code, fe.Message
	case errors.Is(err, common.ErrInvalidCredentials):
		status, detail = fiber.StatusUnauthorized, detailInvalidCredentials
	case errors.Is(err, common.ErrUnauthenticated):
		status, detail = fiber.StatusUnauthorized, detailUnauthenticated
	case errors.Is(err, common.ErrForbidden):
		status, detail = fiber.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrDuplicateIdentity):
		status, detail = fiber.StatusConflict, "email already registered"
	case errors.Is(err, common.ErrorNotFound):
		status, detail = fiber.StatusNotFound, "not found"
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidAction):
		status, detail = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrRateLimited):
		status, detail = fiber.StatusTooManyRequests, "too many login attempts"
	default:
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err.Error())
	}

	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, common.BearerScheme)
	}
	return c.Status(status).JSON(errorResponse{Detail: detail})
}
