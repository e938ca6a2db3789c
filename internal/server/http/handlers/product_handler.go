package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/server/http/dto"
)

// ProductHandler manages catalog endpoints.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

func writeProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		writeError(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, domainErrors.ErrForbidden):
		writeError(c, http.StatusForbidden, "Not authorized to modify this product")
	default:
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}

// Create handles POST /products. A vendor caller always owns the entry it
// creates; only an admin may create on behalf of another vendor.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Name is required and price/stock must be non-negative")
		return
	}

	vendorID := req.VendorID
	if CurrentUserRole(c) != model.RoleAdmin || vendorID == 0 {
		vendorID = CurrentUserID(c)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		VendorID:    vendorID,
		IsActive:    isActive,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// List handles GET /products with an optional name filter.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.NewProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Name is required and price/stock must be non-negative")
		return
	}

	existing, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		writeProductError(c, err)
		return
	}
	if CurrentUserRole(c) == model.RoleVendor && existing.VendorID != CurrentUserID(c) {
		writeProductError(c, domainErrors.ErrForbidden)
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Stock = req.Stock
	existing.ImageURL = req.ImageURL
	existing.Category = req.Category
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	product, err := h.facade.UpdateProduct(c.Request.Context(), existing)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if CurrentUserRole(c) == model.RoleVendor {
		existing, err := h.facade.Product(c.Request.Context(), id)
		if err != nil {
			writeProductError(c, err)
			return
		}
		if existing.VendorID != CurrentUserID(c) {
			writeProductError(c, domainErrors.ErrForbidden)
			return
		}
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}
