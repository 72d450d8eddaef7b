package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the request body (JSON or form) into v and validates it.
func parseBody(c *fiber.Ctx, v validation.Validatable) error {
	if err := c.BodyParser(v); err != nil {
		return fmt.Errorf("%w: malformed body", common.ErrValidation)
	}
	return validate(v)
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id", common.ErrValidation)
	}
	return int64(id), nil
}

func (s *Server) listAlbums(c *fiber.Ctx) error {
	items, err := s.content.ListAlbums(c.UserContext(), principal(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newAlbumResponse))
}

func (s *Server) createAlbum(c *fiber.Ctx) error {
	var req albumRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	a, err := s.content.CreateAlbum(c.UserContext(), principal(c).ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newAlbumResponse(a))
}

func (s *Server) addPhoto(c *fiber.Ctx) error {
	albumID, err := paramID(c)
	if err != nil {
		return err
	}
	var req photoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p, err := s.content.AddPhoto(c.UserContext(), principal(c).ID, albumID, req.URL, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newPhotoResponse(p))
}

func (s *Server) listMessages(c *fiber.Ctx) error {
	items, err := s.content.ListMessages(c.UserContext(), principal(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newMessageResponse))
}

func (s *Server) createMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	m, err := s.content.CreateMessage(c.UserContext(), principal(c).ID, req.Content, req.Type)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newMessageResponse(m))
}

func (s *Server) listTasks(c *fiber.Ctx) error {
	items, err := s.content.ListTasks(c.UserContext(), principal(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newTaskResponse))
}

func (s *Server) createTask(c *fiber.Ctx) error {
	var req taskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	t, err := s.content.CreateTask(c.UserContext(), principal(c).ID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newTaskResponse(t))
}

func (s *Server) completeTask(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	t, err := s.content.CompleteTask(c.UserContext(), principal(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(newTaskResponse(t))
}

func (s *Server) listEvents(c *fiber.Ctx) error {
	items, err := s.content.ListEvents(c.UserContext(), principal(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(mapSlice(items, newEventResponse))
}

func (s *Server) createEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	e, err := s.content.CreateEvent(c.UserContext(), principal(c).ID, req.Title, req.Description, req.Date, req.Type)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newEventResponse(e))
}
