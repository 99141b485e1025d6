package controllers

import (
	"net/http"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
)

// ListController serves the reference lists used by storefront forms.
type ListController struct {
	listService services.ListService
}

func NewListController(svc services.ListService) *ListController {
	return &ListController{listService: svc}
}

func (lc *ListController) Emirates(c *gin.Context) {
	items, svcErr := lc.listService.Emirates(c.Request.Context(), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "lists_fetched_successfully", items)
}

// Regions handles GET /lists/regions?emirate_id=; without emirate_id every
// region is returned.
func (lc *ListController) Regions(c *gin.Context) {
	items, svcErr := lc.listService.Regions(c.Request.Context(), parseUintQuery(c, "emirate_id"), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "lists_fetched_successfully", items)
}

func (lc *ListController) Sizes(c *gin.Context) {
	items, svcErr := lc.listService.Sizes(c.Request.Context())
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "lists_fetched_successfully", items)
}

func (lc *ListController) Categories(c *gin.Context) {
	items, svcErr := lc.listService.Categories(c.Request.Context(), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "lists_fetched_successfully", items)
}
