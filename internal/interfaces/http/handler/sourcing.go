package handler

import (
	"github.com/gin-gonic/gin"
	appSourcing "github.com/supplylink/backend/internal/application/sourcing"
)

// SourcingHandler handles supplier-product link HTTP requests
type SourcingHandler struct {
	BaseHandler
	linkService *appSourcing.LinkService
}

// NewSourcingHandler creates a new SourcingHandler
func NewSourcingHandler(linkService *appSourcing.LinkService) *SourcingHandler {
	return &SourcingHandler{
		linkService: linkService,
	}
}

// Link handles POST /links. Linking an already linked pair reactivates
// it with the request's price, so the call is idempotent.
func (h *SourcingHandler) Link(c *gin.Context) {
	var req appSourcing.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.linkService.Link(c.Request.Context(), req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Unlink handles DELETE /links/:supplier_id/:product_id. Unlinking a
// pair that was never linked still returns 204.
func (h *SourcingHandler) Unlink(c *gin.Context) {
	supplierID, err := parseUintParam(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.linkService.Unlink(c.Request.Context(), supplierID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ProductsForSupplier handles GET /suppliers/:supplier_id/products
func (h *SourcingHandler) ProductsForSupplier(c *gin.Context) {
	supplierID, err := parseUintParam(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.linkService.ProductsForSupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, int64(len(products)))
}

// AvailableProductsForSupplier handles GET /suppliers/:supplier_id/available-products
func (h *SourcingHandler) AvailableProductsForSupplier(c *gin.Context) {
	supplierID, err := parseUintParam(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.linkService.AvailableProductsForSupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, int64(len(products)))
}

// SuppliersForProduct handles GET /products/:product_id/suppliers
func (h *SourcingHandler) SuppliersForProduct(c *gin.Context) {
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suppliers, err := h.linkService.SuppliersForProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, suppliers, int64(len(suppliers)))
}

// AvailableSuppliersForProduct handles GET /products/:product_id/available-suppliers
func (h *SourcingHandler) AvailableSuppliersForProduct(c *gin.Context) {
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suppliers, err := h.linkService.AvailableSuppliersForProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, suppliers, int64(len(suppliers)))
}

// ReplaceLinks handles PUT /suppliers/:supplier_id/links. The whole
// active set is replaced; an empty list deactivates every link. Not
// atomic: a failure partway leaves earlier entries linked, and the
// request can be retried.
func (h *SourcingHandler) ReplaceLinks(c *gin.Context) {
	supplierID, err := parseUintParam(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req appSourcing.ReplaceLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	if err := h.linkService.ReplaceAllLinks(c.Request.Context(), supplierID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
