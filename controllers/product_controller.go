package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/middleware"
	"github.com/X-Vneer/e-commerc-api/models"
	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
)

// ListCache stores rendered anonymous listing responses.
type ListCache interface {
	GetList(ctx context.Context, key string) ([]byte, bool)
	SetListAsync(key string, body []byte)
}

// ProductController serves the storefront catalog and favorites.
type ProductController struct {
	catalogService services.CatalogService
	validator      *RequestValidator
	cache          ListCache
	metrics        aws_pkg.MetricsRecorder
}

func NewProductController(svc services.CatalogService, validator *RequestValidator, cache ListCache, metrics aws_pkg.MetricsRecorder) *ProductController {
	return &ProductController{catalogService: svc, validator: validator, cache: cache, metrics: metrics}
}

func parseColorFilter(c *gin.Context) repository.ColorFilter {
	page, limit := parsePaginationParams(c)
	plus, _ := strconv.ParseBool(c.Query("has_plus_size"))
	return repository.ColorFilter{
		CategoryID:  parseUintQuery(c, "category_id"),
		HasPlusSize: plus,
		SizeID:      parseUintQuery(c, "size_id"),
		Page:        page,
		Limit:       limit,
	}
}

func listCacheKey(f repository.ColorFilter, lang i18n.Lang) string {
	return fmt.Sprintf("%s:c%d:p%t:s%d:%d:%d", lang, f.CategoryID, f.HasPlusSize, f.SizeID, f.Page, f.Limit)
}

// ListProducts handles GET /products. Anonymous responses are served from
// and written to the list cache; per-user favorites make the rest uncacheable.
func (pc *ProductController) ListProducts(c *gin.Context) {
	lang := i18n.FromContext(c)
	filter := parseColorFilter(c)
	userID := middleware.OptionalUserID(c)

	cacheable := userID == nil && pc.cache != nil
	key := listCacheKey(filter, lang)
	if cacheable {
		if body, ok := pc.cache.GetList(c.Request.Context(), key); ok {
			pc.count(aws_pkg.MetricCacheHits)
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
		pc.count(aws_pkg.MetricCacheMisses)
	}

	colors, total, svcErr := pc.catalogService.ListColors(c.Request.Context(), filter, userID, lang)
	if svcErr != nil {
		fail(c, svcErr)
		return
	}

	body := gin.H{
		"message":    i18n.T(lang, "products_fetched_successfully"),
		"data":       colors,
		"pagination": dto.NewPagination(filter.Page, filter.Limit, total),
	}
	if cacheable {
		if raw, err := json.Marshal(body); err == nil {
			pc.cache.SetListAsync(key, raw)
		}
	}
	c.JSON(http.StatusOK, body)
}

// RecentProducts handles GET /products/recent
func (pc *ProductController) RecentProducts(c *gin.Context) {
	colors, svcErr := pc.catalogService.RecentColors(c.Request.Context(), middleware.OptionalUserID(c), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "products_fetched_successfully", colors)
}

// GetProduct handles GET /products/:id
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	color, svcErr := pc.catalogService.GetColor(c.Request.Context(), id, middleware.OptionalUserID(c), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "product_fetched_successfully", color)
}

// SetFavorite handles POST /products/:id/favorite
func (pc *ProductController) SetFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.FavoriteRequest
	if !pc.validator.BindJSON(c, &req) {
		return
	}

	result, svcErr := pc.catalogService.SetFavorite(c.Request.Context(), userID, id, req.IsFavorite == "true", i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "product_updated_successfully", result)
}

// ListFavorites handles GET /products/favorites
func (pc *ProductController) ListFavorites(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	page, limit := parsePaginationParams(c)

	colors, total, svcErr := pc.catalogService.ListFavorites(c.Request.Context(), userID, page, limit, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respondPage(c, http.StatusOK, "favorites_fetched_successfully", colors, page, limit, total)
}

func (pc *ProductController) count(metric string) {
	if pc.metrics == nil || !pc.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = pc.metrics.RecordCount(ctx, metric, map[string]string{"Cache": "products"})
	}()
}
