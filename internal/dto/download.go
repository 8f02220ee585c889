package dto

import (
	"time"

	dom "megawarez/internal/domain"
)

type CreateDownloadRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
}

// DownloadResponse is the projected {id, product, user, createdAt} view.
type DownloadResponse struct {
	ID        int64     `json:"id"`
	Product   string    `json:"product"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

func DownloadFromDomain(v dom.DownloadView) DownloadResponse {
	return DownloadResponse{ID: v.ID, Product: v.Product, User: v.User, CreatedAt: v.CreatedAt}
}
