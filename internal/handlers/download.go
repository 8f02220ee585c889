package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"megawarez/internal/auth"
	"megawarez/internal/dto"
	"megawarez/internal/service"
)

type DownloadHandler struct {
	svc *service.DownloadService
}

func NewDownloadHandler(svc *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{svc: svc}
}

// Create godoc
// @Summary      Record a download
// @Description  The bearer token must belong to userId.
// @Tags         downloads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateDownloadRequest  true  "Download"
// @Success      201   {object}  dto.Response{data=dto.DownloadResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /download [post]
func (h *DownloadHandler) Create(c *gin.Context) {
	var req dto.CreateDownloadRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.svc.Record(c.Request.Context(), auth.TokenFromRequest(c), req.UserID, req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "download recorded", dto.DownloadFromDomain(v))
}

// List godoc
// @Summary      List every download
// @Tags         downloads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=[]dto.DownloadResponse}
// @Failure      401  {object}  dto.Response
// @Router       /downloads [get]
func (h *DownloadHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "downloads", dto.MapList(list, dto.DownloadFromDomain))
}

// Get godoc
// @Summary      Get a download
// @Tags         downloads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Download ID"
// @Success      200  {object}  dto.Response{data=dto.DownloadResponse}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /download/{id} [get]
func (h *DownloadHandler) Get(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	v, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "download", dto.DownloadFromDomain(v))
}

// ListByUser godoc
// @Summary      List a user's downloads
// @Tags         downloads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.Response{data=[]dto.DownloadResponse}
// @Failure      401  {object}  dto.Response
// @Router       /user/{id}/downloads [get]
func (h *DownloadHandler) ListByUser(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	list, err := h.svc.ListByUser(c.Request.Context(), auth.TokenFromRequest(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "downloads", dto.MapList(list, dto.DownloadFromDomain))
}
