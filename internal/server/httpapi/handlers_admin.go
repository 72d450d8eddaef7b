package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

// pageParams reads skip and limit; the service clamps limit to the
// configured page size.
func pageParams(c *fiber.Ctx) (skip, limit int) {
	return c.QueryInt("skip", 0), c.QueryInt("limit", 0)
}

func (s *Server) adminListUsers(c *fiber.Ctx) error {
	skip, limit := pageParams(c)
	items, err := s.admin.ListUsers(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newUserResponse))
}

func (s *Server) adminGetUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	u, err := s.admin.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(newUserResponse(u))
}

func (s *Server) adminDeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.admin.DeleteUser(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(messageOnlyResponse{Message: "User deleted successfully"})
}

func (s *Server) adminListAlbums(c *fiber.Ctx) error {
	skip, limit := pageParams(c)
	items, err := s.admin.ListAlbums(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newAlbumResponse))
}

func (s *Server) adminDeleteAlbum(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.admin.DeleteAlbum(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(messageOnlyResponse{Message: "Album deleted successfully"})
}

func (s *Server) adminListMessages(c *fiber.Ctx) error {
	skip, limit := pageParams(c)
	items, err := s.admin.ListMessages(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newMessageResponse))
}

func (s *Server) adminDeleteMessage(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := s.admin.DeleteMessage(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(messageOnlyResponse{Message: "Message deleted successfully"})
}

func (s *Server) adminModerateMessage(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	action := models.ModerationAction(c.Query("action"))
	if err := s.admin.ModerateMessage(c.UserContext(), id, action); err != nil {
		return err
	}

	msg := "Message hidden successfully"
	if action == models.ModerationDelete {
		msg = "Message deleted successfully"
	}
	return c.JSON(messageOnlyResponse{Message: msg})
}

func (s *Server) adminStats(c *fiber.Ctx) error {
	st, err := s.admin.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(newStatsResponse(st))
}

func (s *Server) adminGetSettings(c *fiber.Ctx) error {
	st, err := s.admin.Settings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(st)
}

// adminUpdateSettings applies the fields present in the body over the
// current settings. Unknown keys are rejected.
func (s *Server) adminUpdateSettings(c *fiber.Ctx) error {
	st, err := s.admin.Settings(c.UserContext())
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&st); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after settings object", common.ErrValidation)
	}

	saved, err := s.admin.UpdateSettings(c.UserContext(), st)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}
