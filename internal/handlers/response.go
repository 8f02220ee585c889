package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	dom "megawarez/internal/domain"
	"megawarez/internal/dto"
)

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return false
	}
	return true
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.OK(message, data))
}

// fail maps a service error onto a status code and error envelope.
func fail(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, err.Error()
	switch {
	case errors.Is(err, dom.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, dom.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, dom.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, dom.ErrConflict):
		status, message = http.StatusBadRequest, "already registered"
	case errors.Is(err, dom.ErrReferential):
		status, message = http.StatusBadRequest, dom.ErrReferential.Error()
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, dto.Fail(message))
}
