package handler

import (
	"errors"
	"maps"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/result"
)

// ProblemContentType is the media type of problem responses.
const ProblemContentType = "application/problem+json"

// ValidationTitle is the title of validation problems.
const ValidationTitle = "One or more validation errors occurred."

// ErrNoUser is returned if a protected handler runs without an authenticated user.
var ErrNoUser = errors.New("no authenticated user")

var problemTypes = map[int]string{ //nolint:gochecknoglobals
	fiber.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	fiber.StatusUnauthorized:        "https://tools.ietf.org/html/rfc9110#section-15.5.2",
	fiber.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	fiber.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
}

func problemType(status int) string {
	if t, ok := problemTypes[status]; ok {
		return t
	}

	return "about:blank"
}

// Problem writes a problem details response.
func Problem(c *fiber.Ctx, status int, title, detail string) error {
	return writeProblem(c, dto.Problem{
		Type:   problemType(status),
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// ValidationProblem writes a 400 problem listing the messages per field.
func ValidationProblem(c *fiber.Ctx, errs map[string]string) error {
	p := dto.Problem{
		Type:   problemType(fiber.StatusBadRequest),
		Title:  ValidationTitle,
		Status: fiber.StatusBadRequest,
		Errors: make(map[string][]string, len(errs)),
	}

	for _, key := range slices.Sorted(maps.Keys(errs)) {
		p.Errors[key] = []string{errs[key]}
	}

	return writeProblem(c, p)
}

func writeProblem(c *fiber.Ctx, p dto.Problem) error {
	return c.Status(p.Status).JSON(p, ProblemContentType)
}

// Failure writes the problem matching a failed result.
// dbDetail is the detail of a result.DatabaseError problem.
func Failure[T any](c *fiber.Ctx, r result.Result[T], dbDetail string) error {
	switch r.ErrorType() {
	case result.ValidationError:
		return ValidationProblem(c, r.Errors())
	case result.EntityNotFound:
		return Problem(c, fiber.StatusNotFound, "Not Found", firstMessage(r.Errors()))
	case result.ExternalError:
		return Problem(c, fiber.StatusBadRequest, "Bad Request", firstMessage(r.Errors()))
	default:
		return Problem(c, fiber.StatusInternalServerError, "Internal Server Error", dbDetail)
	}
}

// Respond writes the output of a successful result with status, or the problem of a failed one.
func Respond[T any](c *fiber.Ctx, status int, r result.Result[T], dbDetail string) error {
	if !r.IsSuccessful() {
		return Failure(c, r, dbDetail)
	}

	return c.Status(status).JSON(r.Output())
}

func firstMessage(errs map[string]string) string {
	keys := slices.Sorted(maps.Keys(errs))
	if len(keys) == 0 {
		return ""
	}

	return errs[keys[0]]
}

// UserID returns the id of the authenticated user.
func UserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(UserIDLocal).(string)
	if !ok || id == "" {
		return "", ErrNoUser
	}

	return id, nil
}
