package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/X-Vneer/e-commerc-api/cache"
	"github.com/X-Vneer/e-commerc-api/dto"
	"github.com/X-Vneer/e-commerc-api/i18n"
	"github.com/X-Vneer/e-commerc-api/middleware"
	"github.com/X-Vneer/e-commerc-api/models"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	idempotentReplayed   = "Idempotent-Replayed"
)

// IdempotencyStore remembers add-to-cart responses per user and key.
// Reserve returns nil when the caller now owns key, otherwise the entry that
// holds it.
type IdempotencyStore interface {
	Reserve(ctx context.Context, userID, key, fingerprint string) (*cache.StoredResponse, error)
	Save(ctx context.Context, userID, key string, resp cache.StoredResponse) error
	Release(ctx context.Context, userID, key string) error
}

// CartController handles HTTP requests for the signed-in user's cart.
type CartController struct {
	cartService services.CartService
	validator   *RequestValidator
	idempotency IdempotencyStore
	logger      *zap.Logger
}

func NewCartController(svc services.CartService, validator *RequestValidator, idempotency IdempotencyStore, logger *zap.Logger) *CartController {
	return &CartController{cartService: svc, validator: validator, idempotency: idempotency, logger: logger}
}

// GetCart handles GET /cart
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	cart, svcErr := cc.cartService.GetCart(c.Request.Context(), userID, i18n.FromContext(c))
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "cart_fetched_successfully", cart)
}

// AddToCart handles POST /cart/add. A repeated Idempotency-Key replays the
// first successful response without touching the cart again. The key is
// reserved before the cart is touched, so a concurrent duplicate gets 409
// and a key reused with a different body gets 422.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req models.AddToCartRequest
	if !cc.validator.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	key := c.GetHeader(IdempotencyKeyHeader)
	fingerprint := requestFingerprint(req)
	reserved := false
	if key != "" && cc.idempotency != nil {
		held, err := cc.idempotency.Reserve(ctx, userID.String(), key, fingerprint)
		switch {
		case err != nil:
			cc.logger.Warn("Idempotency reservation failed", zap.Error(err))
		case held == nil:
			reserved = true
		case held.Fingerprint != fingerprint:
			respond(c, http.StatusUnprocessableEntity, "idempotency_key_reused", nil)
			return
		case held.Pending:
			respond(c, http.StatusConflict, "idempotency_request_in_progress", nil)
			return
		default:
			c.Header(idempotentReplayed, "true")
			c.Data(held.Status, "application/json; charset=utf-8", held.Body)
			return
		}
	}

	item, svcErr := cc.cartService.AddToCart(ctx, userID, req)
	if svcErr != nil {
		if reserved {
			if err := cc.idempotency.Release(ctx, userID.String(), key); err != nil {
				cc.logger.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
		fail(c, svcErr)
		return
	}

	body := gin.H{
		"message": i18n.T(i18n.FromContext(c), "item_added_to_cart_successfully"),
		"data":    dto.NewCartItem(*item, i18n.FromContext(c)),
	}
	if reserved {
		if raw, err := json.Marshal(body); err == nil {
			resp := cache.StoredResponse{Status: http.StatusOK, Body: raw, Fingerprint: fingerprint}
			if err := cc.idempotency.Save(ctx, userID.String(), key, resp); err != nil {
				cc.logger.Warn("Failed to store idempotent response", zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, body)
}

// requestFingerprint hashes the decoded request, so formatting and field
// order in the raw body do not matter.
func requestFingerprint(req models.AddToCartRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// UpdateItem handles PUT /cart/:id
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if !cc.validator.BindJSON(c, &req) {
		return
	}

	item, svcErr := cc.cartService.UpdateItemQuantity(c.Request.Context(), userID, itemID, *req.Quantity)
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	if item == nil {
		respond(c, http.StatusOK, "cart_item_removed_successfully", nil)
		return
	}
	respond(c, http.StatusOK, "cart_item_updated_successfully", dto.NewCartItem(*item, i18n.FromContext(c)))
}

// RemoveItem handles DELETE /cart/:id
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	itemID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if svcErr := cc.cartService.RemoveItem(c.Request.Context(), userID, itemID); svcErr != nil {
		fail(c, svcErr)
		return
	}
	respond(c, http.StatusOK, "cart_item_removed_successfully", nil)
}
