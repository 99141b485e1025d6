package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
)

// CategoryController handles dashboard category management.
type CategoryController struct {
	categoryService services.CategoryService
	validator       *RequestValidator
}

func NewCategoryController(svc services.CategoryService, validator *RequestValidator) *CategoryController {
	return &CategoryController{categoryService: svc, validator: validator}
}

func (cc *CategoryController) List(c *gin.Context) {
	categories, svcErr := cc.categoryService.List(c.Request.Context(), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "categories_fetched_successfully", categories)
}

func (cc *CategoryController) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !cc.validator.BindJSON(c, &req) {
		return
	}
	category, svcErr := cc.categoryService.Create(c.Request.Context(), req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusCreated, "category_created_successfully", category)
}

func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCategoryRequest
	if !cc.validator.BindJSON(c, &req) {
		return
	}
	category, svcErr := cc.categoryService.Update(c.Request.Context(), id, req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "category_updated_successfully", category)
}

func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := cc.categoryService.Delete(c.Request.Context(), id); svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "category_deleted_successfully", nil)
}

// BranchController handles dashboard branch management.
type BranchController struct {
	branchService services.BranchService
	validator     *RequestValidator
}

func NewBranchController(svc services.BranchService, validator *RequestValidator) *BranchController {
	return &BranchController{branchService: svc, validator: validator}
}

func (bc *BranchController) List(c *gin.Context) {
	branches, svcErr := bc.branchService.List(c.Request.Context(), strings.TrimSpace(c.Query("q")), i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "branches_fetched_successfully", branches)
}

func (bc *BranchController) Create(c *gin.Context) {
	var req models.BranchRequest
	if !bc.validator.BindJSON(c, &req) {
		return
	}
	branch, svcErr := bc.branchService.Create(c.Request.Context(), req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusCreated, "branch_created_successfully", branch)
}

func (bc *BranchController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.BranchRequest
	if !bc.validator.BindJSON(c, &req) {
		return
	}
	branch, svcErr := bc.branchService.Update(c.Request.Context(), id, req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "branch_updated_successfully", branch)
}

func (bc *BranchController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := bc.branchService.Delete(c.Request.Context(), id); svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "branch_deleted_successfully", nil)
}

// AdminProductController handles dashboard product management.
type AdminProductController struct {
	productService services.ProductService
	validator      *RequestValidator
}

func NewAdminProductController(svc services.ProductService, validator *RequestValidator) *AdminProductController {
	return &AdminProductController{productService: svc, validator: validator}
}

func parseProductFilter(c *gin.Context) repository.ProductFilter {
	page, limit := parsePaginationParams(c)
	f := repository.ProductFilter{
		CategoryID: parseUintQuery(c, "category_id"),
		Query:      strings.TrimSpace(c.Query("q")),
		Page:       page,
		Limit:      limit,
	}
	if v, err := strconv.ParseBool(c.Query("is_active")); err == nil {
		f.IsActive = &v
	}
	f.EmptyInventories, _ = strconv.ParseBool(c.Query("empty_inventories"))
	f.FullyEmptyInventories, _ = strconv.ParseBool(c.Query("fully_empty_inventories"))
	return f
}

func (pc *AdminProductController) List(c *gin.Context) {
	filter := parseProductFilter(c)
	products, total, svcErr := pc.productService.List(c.Request.Context(), filter, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respondPage(c, http.StatusOK, "products_fetched_successfully", products, filter.Page, filter.Limit, total)
}

func (pc *AdminProductController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, svcErr := pc.productService.Get(c.Request.Context(), id, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "product_fetched_successfully", product)
}

func (pc *AdminProductController) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if !pc.validator.BindJSON(c, &req) {
		return
	}
	product, svcErr := pc.productService.Create(c.Request.Context(), req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusCreated, "product_created_successfully", product)
}

func (pc *AdminProductController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateProductRequest
	if !pc.validator.BindJSON(c, &req) {
		return
	}
	product, svcErr := pc.productService.Update(c.Request.Context(), id, req, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "product_updated_successfully", product)
}

// SetActivity handles PATCH /dashboard/products/:id/activity
func (pc *AdminProductController) SetActivity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateActivityRequest
	if !pc.validator.BindJSON(c, &req) {
		return
	}
	product, svcErr := pc.productService.SetActivity(c.Request.Context(), id, *req.IsActive, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "product_updated_successfully", product)
}
