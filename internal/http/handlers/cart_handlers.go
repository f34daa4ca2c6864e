package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/cart"
	"github.com/aswin1661/looms-petals/internal/http/middleware"
	"github.com/aswin1661/looms-petals/internal/services"
)

// CartHandlers serves the per-session cart endpoints. All routes sit
// behind RequireUser; the cart is keyed by the session token so it is
// dropped together with the session.
type CartHandlers struct {
	store      cart.Store
	productSvc *services.ProductService
	logger     zerolog.Logger
}

func NewCartHandlers(store cart.Store, productSvc *services.ProductService, logger zerolog.Logger) *CartHandlers {
	return &CartHandlers{store: store, productSvc: productSvc, logger: logger}
}

// AddItemRequest represents a cart addition
type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest represents a cart quantity change
type UpdateItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// RemoveItemRequest represents a cart line removal
type RemoveItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func cartPayload(c cart.Cart) gin.H {
	return gin.H{
		"items":       c.Items,
		"total_items": c.TotalItems(),
		"total_price": c.TotalPrice(),
	}
}

// Get handles GET /cart
func (h *CartHandlers) Get(c *gin.Context) {
	token := middleware.ContextSessionToken(c)

	snapshot, err := h.store.Load(c.Request.Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Msg("cart load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cartPayload(snapshot)})
}

// AddItem handles POST /cart/items
func (h *CartHandlers) AddItem(c *gin.Context) {
	token := middleware.ContextSessionToken(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := h.productSvc.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.logger.Error().Err(err).Msg("cart product lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	if !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	snapshot, err := h.store.Load(c.Request.Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Msg("cart load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	item := cart.Item{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		ImageURL:      product.ImageURL,
		Brand:         product.Brand,
		Category:      product.Category,
		Size:          req.Size,
		Color:         req.Color,
		Stock:         product.Stock,
	}

	next, err := snapshot.Add(item, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInsufficientStock) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Requested quantity exceeds available stock"})
			return
		}
		h.logger.Error().Err(err).Msg("cart add failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := h.store.Save(c.Request.Context(), token, next); err != nil {
		h.logger.Error().Err(err).Msg("cart save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cartPayload(next), "message": "Item added to cart"})
}

// UpdateItem handles PUT /cart/items. A quantity of zero or less removes
// the line.
func (h *CartHandlers) UpdateItem(c *gin.Context) {
	token := middleware.ContextSessionToken(c)

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	snapshot, err := h.store.Load(c.Request.Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Msg("cart load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	next := snapshot.SetQuantity(req.ProductID, req.Size, req.Color, req.Quantity)
	if err := h.store.Save(c.Request.Context(), token, next); err != nil {
		h.logger.Error().Err(err).Msg("cart save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cartPayload(next), "message": "Cart updated"})
}

// RemoveItem handles DELETE /cart/items
func (h *CartHandlers) RemoveItem(c *gin.Context) {
	token := middleware.ContextSessionToken(c)

	var req RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	snapshot, err := h.store.Load(c.Request.Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Msg("cart load failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	next := snapshot.Remove(req.ProductID, req.Size, req.Color)
	if err := h.store.Save(c.Request.Context(), token, next); err != nil {
		h.logger.Error().Err(err).Msg("cart save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cartPayload(next), "message": "Item removed from cart"})
}

// Clear handles DELETE /cart
func (h *CartHandlers) Clear(c *gin.Context) {
	token := middleware.ContextSessionToken(c)

	if err := h.store.Drop(c.Request.Context(), token); err != nil {
		h.logger.Error().Err(err).Msg("cart clear failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cartPayload(cart.New()), "message": "Cart cleared"})
}
