package controllers

import (
	"github.com/X-Vneer/e-commerc-api/apperrors"
	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, key string, data any) {
	body := gin.H{"message": i18n.T(i18n.FromContext(c), key)}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondPage(c *gin.Context, status int, key string, data any, page, limit int, total int64) {
	c.JSON(status, gin.H{
		"message":    i18n.T(i18n.FromContext(c), key),
		"data":       data,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// fail hands a service error to apperrors.ErrorMiddleware.
func fail(c *gin.Context, svcErr *services.ServiceError) {
	_ = c.Error(apperrors.New(svcErr.StatusCode, svcErr.Message, svcErr.Err))
	c.Abort()
}
