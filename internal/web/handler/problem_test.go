package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/result"
)

func serve(t *testing.T, h fiber.Handler) (int, string, dto.Problem) {
	t.Helper()

	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var p dto.Problem
	if resp.Header.Get(fiber.HeaderContentType) == ProblemContentType {
		require.NoError(t, json.Unmarshal(raw, &p))
	}

	return resp.StatusCode, resp.Header.Get(fiber.HeaderContentType), p
}

func TestFailure(t *testing.T) {
	tests := []struct {
		name   string
		res    result.Result[string]
		status int
		detail string
		errors map[string][]string
	}{
		{
			name:   "validation",
			res:    result.FailWith[string](map[string]string{"name": "required", "currency": "bad"}, result.ValidationError),
			status: http.StatusBadRequest,
			errors: map[string][]string{"name": {"required"}, "currency": {"bad"}},
		},
		{
			name:   "not found",
			res:    result.Fail[string](result.EntityNotFound, "Entity not found."),
			status: http.StatusNotFound,
			detail: "Entity not found.",
		},
		{
			name:   "external",
			res:    result.Fail[string](result.ExternalError, "declined"),
			status: http.StatusBadRequest,
			detail: "declined",
		},
		{
			name:   "database",
			res:    result.Fail[string](result.DatabaseError, "boom"),
			status: http.StatusInternalServerError,
			detail: "Failed to save.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, contentType, p := serve(t, func(c *fiber.Ctx) error {
				return Respond(c, http.StatusOK, tt.res, "Failed to save.")
			})

			assert.Equal(t, tt.status, status)
			assert.Equal(t, ProblemContentType, contentType)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.detail, p.Detail)
			assert.Equal(t, tt.errors, p.Errors)
			assert.NotEmpty(t, p.Type)
		})
	}
}

func TestRespondSuccess(t *testing.T) {
	status, contentType, _ := serve(t, func(c *fiber.Ctx) error {
		return Respond(c, http.StatusCreated, result.Success("ok"), "")
	})

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, fiber.MIMEApplicationJSON, contentType)
}

func TestUserID(t *testing.T) {
	status, _, _ := serve(t, func(c *fiber.Ctx) error {
		if _, err := UserID(c); err == nil {
			return c.SendStatus(http.StatusOK)
		}

		c.Locals(UserIDLocal, "42")

		id, err := UserID(c)
		if err != nil || id != "42" {
			return c.SendStatus(http.StatusInternalServerError)
		}

		return c.SendStatus(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, status)
}
