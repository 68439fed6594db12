package serverutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=3"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateRequestPasses(t *testing.T) {
	req := sampleRequest{Email: "jane@example.com", Name: "Jane", Date: "2026-02-01"}
	assert.NoError(t, ValidateRequest(req))
}

func TestValidateRequestReportsEachField(t *testing.T) {
	req := sampleRequest{Email: "not-an-email", Name: "ab", Date: "01-02-2026"}

	err := ValidateRequest(req)
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "Email must be a valid email")
	assert.Contains(t, fiberErr.Message, "Name must be at least 3 characters")
	assert.Contains(t, fiberErr.Message, "Date must match format 2006-01-02")
}

func decodeBody(t *testing.T, res *http.Response) BaseResponse[any] {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var envelope BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestErrorHandlerMiddlewareMapsFiberErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "slot is already booked")
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
	envelope := decodeBody(t, res)
	assert.False(t, envelope.Success)
	assert.Equal(t, fiber.StatusConflict, envelope.Code)
	assert.Equal(t, "slot is already booked", envelope.Message)
}

func TestErrorHandlerMiddlewareHidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/panic-ish", func(ctx *fiber.Ctx) error {
		return assert.AnError
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic-ish", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	envelope := decodeBody(t, res)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Internal server error", envelope.Message)
}

func TestSuccessResponseEnvelope(t *testing.T) {
	res := SuccessResponse("done", map[string]string{"id": "42"})
	assert.True(t, res.Success)
	assert.Equal(t, "done", res.Message)
	assert.Zero(t, res.Code)
}
