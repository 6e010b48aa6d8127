package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

var (
	errInvalidBody  = errors.New("corpo da requisição inválido")
	errInvalidQuery = errors.New("parâmetros de consulta inválidos")
)

// ErrorHandler traduce los errores de los handlers a la respuesta JSON común.
// Los 5xx se registran con el request id; al cliente solo llega un mensaje genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := toErrorResponse(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", RequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("falha na requisição")
		}
		return c.Status(status).JSON(body)
	}
}

func toErrorResponse(err error) (int, dto.ErrorResponse) {
	var (
		ve *domain.ValidationError
		se *domain.InsufficientStockError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: "dados inválidos", Code: "VALIDATION", Fields: ve.Fields}
	case errors.As(err, &se):
		return fiber.StatusConflict, dto.ErrorResponse{Error: se.Error(), Code: "INSUFFICIENT_STOCK", Shortages: se.Shortages}
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "INVALID_BODY"}
	case errors.Is(err, errInvalidQuery), errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: "VALIDATION"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"}
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: "IN_USE"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Error: err.Error(), Code: "CONFLICT"}
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Error: "tempo limite da requisição excedido", Code: "TIMEOUT"}
	case errors.As(err, &fe):
		return fiberError(fe)
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Error: "erro interno", Code: "INTERNAL"}
	}
}

// fiberError errores propios de fiber (ruta inexistente, método, timeout del middleware).
func fiberError(fe *fiber.Error) (int, dto.ErrorResponse) {
	switch fe.Code {
	case fiber.StatusRequestTimeout:
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Error: "tempo limite da requisição excedido", Code: "TIMEOUT"}
	case fiber.StatusNotFound:
		return fiber.StatusNotFound, dto.ErrorResponse{Error: "rota não encontrada", Code: "NOT_FOUND"}
	case fiber.StatusMethodNotAllowed:
		return fe.Code, dto.ErrorResponse{Error: fe.Message, Code: "METHOD_NOT_ALLOWED"}
	}
	if fe.Code >= fiber.StatusInternalServerError {
		return fe.Code, dto.ErrorResponse{Error: "erro interno", Code: "INTERNAL"}
	}
	return fe.Code, dto.ErrorResponse{Error: fe.Message, Code: "BAD_REQUEST"}
}

// RequestID id asignado por el middleware requestid ("" si no corre).
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}
