package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Body builds the JSON error body. The underlying error text is exposed
// only outside production.
func Body(c *gin.Context, env string, key string, err error) gin.H {
	body := gin.H{"message": i18n.T(i18n.FromContext(c), key)}
	if err != nil && env != "production" {
		body["error"] = err.Error()
	}
	return body
}

// ErrorMiddleware renders the last error attached with c.Error when the
// handler did not write a response itself.
func ErrorMiddleware(env string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, key := Classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("unhandled error",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}

		// an *Error only exposes its cause; business errors have none
		detail := err
		var appErr *Error
		if errors.As(err, &appErr) {
			detail = appErr.Err
		}
		c.AbortWithStatusJSON(status, Body(c, env, key, detail))
	}
}

// Recovery converts panics into a 500 response. Outside production the body
// also carries the goroutine stack.
func Recovery(env string, logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err := fmt.Errorf("panic: %v", recovered)
		stack := debug.Stack()
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.ByteString("stack", stack),
		)
		body := Body(c, env, "internal_server_error", err)
		if env != "production" {
			body["stack"] = string(stack)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// NoRoute answers unknown paths.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not found - " + c.Request.URL.Path})
}
