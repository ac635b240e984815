package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lotusaroma/pkg/logger"
	"lotusaroma/storefront-service/internal/app/storefront/entity"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func respondFieldErrors(c *gin.Context, message string, fields []entity.FieldError) {
	c.JSON(http.StatusBadRequest, entity.ErrorResponse{
		Error:   http.StatusText(http.StatusBadRequest),
		Message: message,
		Errors:  fields,
	})
}

// respondInternal логирует причину, клиенту уходит только общий текст
func respondInternal(c *gin.Context, err error, message string) {
	logger.Error().
		Err(err).
		Str("request_id", c.GetString(logger.RequestIDKey)).
		Str("path", c.FullPath()).
		Msg(message)
	respondError(c, http.StatusInternalServerError, message)
}

// productID разбирает :id; ok == false - ответ уже отправлен.
// 400 только для нечислового id, 0 и отрицательные ищутся как обычные и дают 404.
func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return id, true
}

var malformedBody = []entity.FieldError{{Field: "body", Message: "request body must be valid JSON"}}
