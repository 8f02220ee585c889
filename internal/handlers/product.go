package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"megawarez/internal/dto"
	"megawarez/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.ProductResponse}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "products", dto.MapList(list, dto.ProductFromDomain))
}

// ListOrdered godoc
// @Summary      List products sorted by a field
// @Tags         products
// @Produce      json
// @Param        field  path      string  true  "id, name, subcategoryId, createdAt or updatedAt"
// @Param        order  path      string  true  "asc or desc"
// @Success      200    {object}  dto.Response{data=[]dto.ProductResponse}
// @Failure      400    {object}  dto.Response
// @Router       /products/orderby/{field}/{order} [get]
func (h *ProductHandler) ListOrdered(c *gin.Context) {
	list, err := h.svc.ListOrdered(c.Request.Context(), c.Param("field"), c.Param("order"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "products", dto.MapList(list, dto.ProductFromDomain))
}

// ListBySubcategory godoc
// @Summary      List the products of a subcategory
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Subcategory ID"
// @Success      200  {object}  dto.Response{data=[]dto.ProductResponse}
// @Failure      404  {object}  dto.Response
// @Router       /subcategory/{id}/products [get]
func (h *ProductHandler) ListBySubcategory(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	list, err := h.svc.ListBySubcategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "products", dto.MapList(list, dto.ProductFromDomain))
}

// Get godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  dto.Response{data=dto.ProductResponse}
// @Failure      404  {object}  dto.Response
// @Router       /product/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "product", dto.ProductFromDomain(v))
}

// Search godoc
// @Summary      Search products by name
// @Tags         products
// @Produce      json
// @Param        term  path      string  false  "Search term"
// @Success      200   {object}  dto.Response{data=[]dto.ProductResponse}
// @Router       /search/product/{term} [get]
func (h *ProductHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), strings.TrimSpace(c.Param("term")))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "products", dto.MapList(list, dto.ProductFromDomain))
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateProductRequest  true  "Product"
// @Success      201   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /product [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.svc.Create(c.Request.Context(), req.SubcategoryID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "product created", dto.ProductFromDomain(v))
}

// Rename godoc
// @Summary      Rename a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Product ID"
// @Param        body  body      dto.RenameRequest  true  "New name"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /product/{id}/name [patch]
func (h *ProductHandler) Rename(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req dto.RenameRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.svc.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "product renamed", dto.ProductFromDomain(v))
}

// Move godoc
// @Summary      Move a product to another subcategory
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Product ID"
// @Param        body  body      dto.MoveProductRequest  true  "Target subcategory"
// @Success      200   {object}  dto.Response{data=dto.ProductResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /product/{id}/subcategory [patch]
func (h *ProductHandler) Move(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req dto.MoveProductRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.svc.Move(c.Request.Context(), id, req.SubcategoryID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "product moved", dto.ProductFromDomain(v))
}

// Delete godoc
// @Summary      Delete a product with its downloads
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  dto.Response{data=dto.DeletedResponse[dto.ProductResponse]}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /product/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, removed, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "product deleted", dto.DeletedResponse[dto.ProductResponse]{
		Deleted: dto.ProductFromDomain(v),
		Removed: dto.RemovedFromDomain(removed),
	})
}
