package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"megawarez/internal/dto"
	"megawarez/internal/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "categories", dto.MapList(list, dto.CategoryFromDomain))
}

// ListOrdered godoc
// @Summary      List categories sorted by a field
// @Tags         categories
// @Produce      json
// @Param        field  path      string  true  "id, name, createdAt or updatedAt"
// @Param        order  path      string  true  "asc or desc"
// @Success      200    {object}  dto.Response{data=[]dto.CategoryResponse}
// @Failure      400    {object}  dto.Response
// @Router       /categories/orderby/{field}/{order} [get]
func (h *CategoryHandler) ListOrdered(c *gin.Context) {
	list, err := h.svc.ListOrdered(c.Request.Context(), c.Param("field"), c.Param("order"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "categories", dto.MapList(list, dto.CategoryFromDomain))
}

// Get godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.Response
// @Router       /category/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "category", dto.CategoryFromDomain(v))
}

// Search godoc
// @Summary      Search categories by name
// @Description  Case-insensitive prefix, infix and suffix matches, sorted by name. An empty term lists everything.
// @Tags         categories
// @Produce      json
// @Param        term  path      string  false  "Search term"
// @Success      200   {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /search/category/{term} [get]
func (h *CategoryHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), strings.TrimSpace(c.Param("term")))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "categories", dto.MapList(list, dto.CategoryFromDomain))
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateCategoryRequest  true  "Category"
// @Success      201   {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /category [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "category created", dto.CategoryFromDomain(v))
}

// Rename godoc
// @Summary      Rename a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Category ID"
// @Param        body  body      dto.RenameRequest  true  "New name"
// @Success      200   {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /category/{id}/name [patch]
func (h *CategoryHandler) Rename(c *gin.Context) {
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
	ok(c, http.StatusOK, "category renamed", dto.CategoryFromDomain(v))
}

// Delete godoc
// @Summary      Delete a category with everything below it
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  dto.Response{data=dto.DeletedResponse[dto.CategoryResponse]}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /category/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, removed, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "category deleted", dto.DeletedResponse[dto.CategoryResponse]{
		Deleted: dto.CategoryFromDomain(v),
		Removed: dto.RemovedFromDomain(removed),
	})
}
