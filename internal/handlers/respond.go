package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperr.KindAuthorization:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindDatabase:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// fail renders err in the result envelope. Store and unknown failures are
// logged and reported; their details never reach the client.
func fail(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindDatabase || kind == apperr.KindUnknown {
		slog.Error("request failed",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"action", c.Method()+" "+c.Route().Path,
			"error", err,
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}
	return c.Status(statusFor(kind)).JSON(dto.Fail(string(kind), apperr.Message(err)))
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// ErrorHandler renders framework errors (unknown routes, oversized bodies,
// panics) in the same envelope as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return fail(c, err)
	}

	kind := apperr.KindUnknown
	switch fe.Code {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
		kind = apperr.KindValidation
	case fiber.StatusUnauthorized:
		kind = apperr.KindAuthentication
	case fiber.StatusForbidden:
		kind = apperr.KindAuthorization
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		kind = apperr.KindNotFound
	}

	message := fe.Message
	if fe.Code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err)
		message = "internal server error"
	}
	return c.Status(fe.Code).JSON(dto.Fail(string(kind), message))
}
