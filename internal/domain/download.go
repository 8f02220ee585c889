package domain

import "time"

// Download records that a user fetched a product. Immutable once written.
type Download struct {
	ID        int64
	UserID    int64
	ProductID int64
	CreatedAt time.Time
}

// DownloadView is a download with the product name and username resolved.
type DownloadView struct {
	ID        int64
	Product   string
	User      string
	CreatedAt time.Time
}
