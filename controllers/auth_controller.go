package controllers

import (
	"net/http"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/middleware"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
)

// AuthController serves storefront and dashboard authentication.
type AuthController struct {
	authService services.AuthService
	validator   *RequestValidator
}

func NewAuthController(svc services.AuthService, validator *RequestValidator) *AuthController {
	return &AuthController{authService: svc, validator: validator}
}

// Register handles POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !ac.validator.BindJSON(c, &req) {
		return
	}
	result, svcErr := ac.authService.Register(c.Request.Context(), req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusCreated, "register_successful", result)
}

// Login handles POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !ac.validator.BindJSON(c, &req) {
		return
	}
	result, svcErr := ac.authService.Login(c.Request.Context(), req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "login_successful", result)
}

// Me handles GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, svcErr := ac.authService.Me(c.Request.Context(), userID, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "user_fetched", user)
}

// UpdateAddress handles PUT /auth/address
func (ac *AuthController) UpdateAddress(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req models.UpdateAddressRequest
	if !ac.validator.BindJSON(c, &req) {
		return
	}
	if req.Empty() {
		validationFailed(c, FieldErrors{"body": "body_required"})
		return
	}
	user, svcErr := ac.authService.UpdateAddress(c.Request.Context(), userID, req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "user_updated", user)
}

// UpdateInfo handles PUT /auth/info
func (ac *AuthController) UpdateInfo(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req models.UpdateInfoRequest
	if !ac.validator.BindJSON(c, &req) {
		return
	}
	if req.Empty() {
		validationFailed(c, FieldErrors{"body": "body_required"})
		return
	}
	user, svcErr := ac.authService.UpdateInfo(c.Request.Context(), userID, req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "user_updated", user)
}

// AdminLogin handles POST /dashboard/auth/login
func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if !ac.validator.BindJSON(c, &req) {
		return
	}
	result, svcErr := ac.authService.AdminLogin(c.Request.Context(), req)
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "login_successful", result)
}

// AdminMe handles GET /dashboard/auth/me
func (ac *AuthController) AdminMe(c *gin.Context) {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	admin, svcErr := ac.authService.AdminMe(c.Request.Context(), adminID)
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "user_fetched", admin)
}
