package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"task-tracker-api/pkg/apperror"
	"task-tracker-api/pkg/logger"
	"task-tracker-api/pkg/utils"
)

// ErrorHandler translates errors returned by handlers into the error envelope.
// Internal detail is logged, never returned.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ctx := c.UserContext()

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return utils.ErrorResponse(c, fe.Code, utils.ErrCodeNotFound, utils.Message(c, "route_not_found"), nil)
			case fiber.StatusInternalServerError:
				logger.ErrorContext(ctx, "Unhandled error", "error", err)
				return utils.InternalServerErrorResponse(c)
			default:
				return utils.ErrorResponse(c, fe.Code, utils.ErrCodeBadRequest, fe.Message, nil)
			}
		}

		switch apperror.KindOf(err) {
		case apperror.KindValidation:
			return utils.ValidationErrorResponse(c, apperror.DetailsOf(err))
		case apperror.KindNotFound:
			return utils.NotFoundResponse(c)
		case apperror.KindStorage:
			logger.ErrorContext(ctx, "Storage failure", "method", c.Method(), "path", c.Path(), "error", err)
			if isWrite(c.Method()) {
				return utils.BadRequestResponse(c)
			}
			return utils.InternalServerErrorResponse(c)
		default:
			logger.ErrorContext(ctx, "Internal error", "method", c.Method(), "path", c.Path(), "error", err)
			return utils.InternalServerErrorResponse(c)
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	default:
		return false
	}
}
