// Package crud serves an owner scoped entity service as a REST resource.
package crud

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/config"
	"github.com/finansync/finansync-api/internal/result"
	"github.com/finansync/finansync-api/internal/service/entity"
	"github.com/finansync/finansync-api/internal/web/handler"
)

// SaveFailedMessage is the detail of a failed write.
const SaveFailedMessage = "Failed to save data."

// Service is the CRUD handler of one entity kind.
type Service[E, Req, Resp any] struct {
	path     string
	entities *entity.Service[E, Req, Resp]
}

// New creates a handler serving entities below path.
func New[E, Req, Resp any](path string, entities *entity.Service[E, Req, Resp]) *Service[E, Req, Resp] {
	return &Service[E, Req, Resp]{path: path, entities: entities}
}

// Init registers the routes. The entity service already holds its database.
func (s *Service[E, Req, Resp]) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authn fiber.Handler) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	if authn == nil {
		return errors.New(handler.ErrNilAuthnMsg)
	}

	if s.entities == nil {
		return errors.New("entity service is nil")
	}

	router := app.Group(s.path, authn)
	router.Get(handler.RootPath, s.List)
	router.Post(handler.RootPath, s.Create)
	router.Get(handler.IDPath, s.Get)
	router.Put(handler.IDPath, s.Replace)
	router.Patch(handler.IDPath, s.Patch)
	router.Delete(handler.IDPath, s.Delete)

	return nil
}

// List returns every entity of the user.
func (s *Service[E, Req, Resp]) List(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	seq, err := s.entities.List(c.UserContext(), userID)
	if err != nil {
		return err
	}

	out := make([]Resp, 0)

	for resp, err := range seq {
		if err != nil {
			return err
		}

		out = append(out, resp)
	}

	return c.JSON(out)
}

// Get returns one entity.
func (s *Service[E, Req, Resp]) Get(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	resp, err := s.entities.Find(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}

	if resp == nil {
		return handler.Problem(c, fiber.StatusNotFound, "Not Found", entity.NotFoundMessage)
	}

	return c.JSON(resp)
}

// Create stores a new entity.
func (s *Service[E, Req, Resp]) Create(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	req := new(Req)
	if err = c.BodyParser(req); err != nil {
		return handler.Problem(c, fiber.StatusBadRequest, "Bad Request", "Invalid request body.")
	}

	res, err := s.entities.Create(c.UserContext(), userID, req, true)
	if err != nil {
		return err
	}

	return handler.Respond(c, fiber.StatusCreated, res, SaveFailedMessage)
}

// Replace overwrites an entity with the posted state.
func (s *Service[E, Req, Resp]) Replace(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	req := new(Req)
	if err = c.BodyParser(req); err != nil {
		return handler.Problem(c, fiber.StatusBadRequest, "Bad Request", "Invalid request body.")
	}

	res, err := s.entities.Update(c.UserContext(), userID, c.Params("id"), req, true)
	if err != nil {
		return err
	}

	return handler.Respond(c, fiber.StatusOK, res, SaveFailedMessage)
}

// Patch merges the posted JSON members into the current state of an entity.
// A body that does not decode declines the update.
func (s *Service[E, Req, Resp]) Patch(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	body := c.Body()
	decode := c.App().Config().JSONDecoder

	res, err := s.entities.UpdateWith(c.UserContext(), userID, c.Params("id"), func(current *Req) bool {
		return decode(body, current) == nil
	}, true)
	if err != nil {
		return err
	}

	return handler.Respond(c, fiber.StatusOK, res, SaveFailedMessage)
}

// Delete removes an entity and its dependents.
func (s *Service[E, Req, Resp]) Delete(c *fiber.Ctx) error {
	userID, err := handler.UserID(c)
	if err != nil {
		return err
	}

	res, err := s.entities.Delete(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}

	switch res {
	case result.DeleteSuccess:
		return c.SendStatus(fiber.StatusNoContent)
	case result.DeleteEntityNotFound:
		return handler.Problem(c, fiber.StatusNotFound, "Not Found", entity.NotFoundMessage)
	default:
		return handler.Problem(c, fiber.StatusInternalServerError, "Internal Server Error", "Failed to delete data.")
	}
}
