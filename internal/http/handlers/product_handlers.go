package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/services"
)

// ProductHandlers serves the public catalog and the admin product CRUD.
type ProductHandlers struct {
	productSvc *services.ProductService
	logger     zerolog.Logger
}

func NewProductHandlers(productSvc *services.ProductService, logger zerolog.Logger) *ProductHandlers {
	return &ProductHandlers{productSvc: productSvc, logger: logger}
}

// ProductRequest represents a product create/update payload
type ProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required"`
	DiscountPrice *float64 `json:"discount_price"`
	Category      string   `json:"category" binding:"required"`
	Subcategory   string   `json:"subcategory"`
	Brand         string   `json:"brand"`
	ImageURL      string   `json:"image_url"`
	Images        []string `json:"images"`
	Stock         int      `json:"stock"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Status        string   `json:"status"`
	Type          string   `json:"type"`
	IsFeatured    bool     `json:"is_featured"`
}

func (r *ProductRequest) toProduct() *domain.Product {
	return &domain.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Category:      r.Category,
		Subcategory:   r.Subcategory,
		Brand:         r.Brand,
		ImageURL:      r.ImageURL,
		Images:        r.Images,
		Stock:         r.Stock,
		Sizes:         r.Sizes,
		Colors:        r.Colors,
		Status:        r.Status,
		Type:          r.Type,
		IsFeatured:    r.IsFeatured,
		IsActive:      true,
	}
}

// List handles GET /products
func (h *ProductHandlers) List(c *gin.Context) {
	category := c.Query("category")
	featured := c.Query("featured") == "true"

	products, err := h.productSvc.ListPublic(c.Request.Context(), category, featured)
	if err != nil {
		h.logger.Error().Err(err).Msg("product listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// Get handles GET /products/:id
func (h *ProductHandlers) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	product, err := h.productSvc.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.logger.Error().Err(err).Msg("product fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// Create handles POST /admin/products (behind RequireAdmin)
func (h *ProductHandlers) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, price, and category are required"})
		return
	}

	product := req.toProduct()
	if err := h.productSvc.Create(c.Request.Context(), product); err != nil {
		h.logger.Error().Err(err).Msg("product creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
		"message": "Product created successfully",
	})
}

// Update handles PUT /admin/products/:id (behind RequireAdmin)
func (h *ProductHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, price, and category are required"})
		return
	}

	product := req.toProduct()
	product.ID = uint(id)
	if err := h.productSvc.Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.logger.Error().Err(err).Msg("product update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
		"message": "Product updated successfully",
	})
}

// Delete handles DELETE /admin/products/:id (behind RequireAdmin).
// Products are deactivated rather than removed so historic carts and
// orders keep resolving.
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	if err := h.productSvc.Deactivate(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		h.logger.Error().Err(err).Msg("product deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}
