package controllers

import (
	"net/http"

	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
)

// UploadController accepts dashboard image uploads.
type UploadController struct {
	uploadService services.UploadService
	validator     *RequestValidator
}

func NewUploadController(svc services.UploadService, validator *RequestValidator) *UploadController {
	return &UploadController{uploadService: svc, validator: validator}
}

// Upload handles POST /dashboard/upload (multipart field "file").
func (uc *UploadController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respond(c, http.StatusBadRequest, "no_file_uploaded", nil)
		return
	}

	result, svcErr := uc.uploadService.Upload(c.Request.Context(), file, requestBaseURL(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "file_uploaded_successfully", result)
}

// Presign handles POST /dashboard/upload/presign
func (uc *UploadController) Presign(c *gin.Context) {
	var req models.PresignUploadRequest
	if !uc.validator.BindJSON(c, &req) {
		return
	}
	result, svcErr := uc.uploadService.Presign(c.Request.Context(), req.FileName, req.ContentType)
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "file_uploaded_successfully", result)
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
