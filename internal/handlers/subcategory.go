package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"megawarez/internal/dto"
	"megawarez/internal/service"
)

type SubcategoryHandler struct {
	svc *service.SubcategoryService
}

func NewSubcategoryHandler(svc *service.SubcategoryService) *SubcategoryHandler {
	return &SubcategoryHandler{svc: svc}
}

// List godoc
// @Summary      List subcategories
// @Tags         subcategories
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.SubcategoryResponse}
// @Router       /subcategories [get]
func (h *SubcategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "subcategories", dto.MapList(list, dto.SubcategoryFromDomain))
}

// ListOrdered godoc
// @Summary      List subcategories sorted by a field
// @Tags         subcategories
// @Produce      json
// @Param        field  path      string  true  "id, name, categoryId, createdAt or updatedAt"
// @Param        order  path      string  true  "asc or desc"
// @Success      200    {object}  dto.Response{data=[]dto.SubcategoryResponse}
// @Failure      400    {object}  dto.Response
// @Router       /subcategories/orderby/{field}/{order} [get]
func (h *SubcategoryHandler) ListOrdered(c *gin.Context) {
	list, err := h.svc.ListOrdered(c.Request.Context(), c.Param("field"), c.Param("order"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "subcategories", dto.MapList(list, dto.SubcategoryFromDomain))
}

// ListByCategory godoc
// @Summary      List the subcategories of a category
// @Tags         subcategories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  dto.Response{data=[]dto.SubcategoryResponse}
// @Failure      404  {object}  dto.Response
// @Router       /category/{id}/subcategories [get]
func (h *SubcategoryHandler) ListByCategory(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	list, err := h.svc.ListByCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "subcategories", dto.MapList(list, dto.SubcategoryFromDomain))
}

// Get godoc
// @Summary      Get a subcategory
// @Tags         subcategories
// @Produce      json
// @Param        id   path      int  true  "Subcategory ID"
// @Success      200  {object}  dto.Response{data=dto.SubcategoryResponse}
// @Failure      404  {object}  dto.Response
// @Router       /subcategory/{id} [get]
func (h *SubcategoryHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "subcategory", dto.SubcategoryFromDomain(v))
}

// Search godoc
// @Summary      Search subcategories by name
// @Tags         subcategories
// @Produce      json
// @Param        term  path      string  false  "Search term"
// @Success      200   {object}  dto.Response{data=[]dto.SubcategoryResponse}
// @Router       /search/subcategory/{term} [get]
func (h *SubcategoryHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), strings.TrimSpace(c.Param("term")))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "subcategories", dto.MapList(list, dto.SubcategoryFromDomain))
}

// Create godoc
// @Summary      Create a subcategory
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateSubcategoryRequest  true  "Subcategory"
// @Success      201   {object}  dto.Response{data=dto.SubcategoryResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /subcategory [post]
func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req dto.CreateSubcategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.svc.Create(c.Request.Context(), req.CategoryID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "subcategory created", dto.SubcategoryFromDomain(v))
}

// Rename godoc
// @Summary      Rename a subcategory
// @Tags         subcategories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Subcategory ID"
// @Param        body  body      dto.RenameRequest  true  "New name"
// @Success      200   {object}  dto.Response{data=dto.SubcategoryResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /subcategory/{id}/name [patch]
func (h *SubcategoryHandler) Rename(c *gin.Context) {
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
	ok(c, http.StatusOK, "subcategory renamed", dto.SubcategoryFromDomain(v))
}

// Delete godoc
// @Summary      Delete a subcategory with its products
// @Tags         subcategories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subcategory ID"
// @Success      200  {object}  dto.Response{data=dto.DeletedResponse[dto.SubcategoryResponse]}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /subcategory/{id} [delete]
func (h *SubcategoryHandler) Delete(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, removed, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "subcategory deleted", dto.DeletedResponse[dto.SubcategoryResponse]{
		Deleted: dto.SubcategoryFromDomain(v),
		Removed: dto.RemovedFromDomain(removed),
	})
}
