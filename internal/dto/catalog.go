package dto

import (
	"time"

	dom "megawarez/internal/domain"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type CreateSubcategoryRequest struct {
	CategoryID int64  `json:"categoryId" binding:"required"`
	Name       string `json:"name" binding:"required,max=255"`
}

type CreateProductRequest struct {
	SubcategoryID int64  `json:"subcategoryId" binding:"required"`
	Name          string `json:"name" binding:"required,max=255"`
}

// RenameRequest is the body of every PATCH .../name route.
type RenameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type MoveProductRequest struct {
	SubcategoryID int64 `json:"subcategoryId" binding:"required"`
}

// Children carry their parent id only; parents never embed children.

type CategoryResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type SubcategoryResponse struct {
	ID         int64      `json:"id"`
	CategoryID int64      `json:"categoryId"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}

type ProductResponse struct {
	ID            int64      `json:"id"`
	SubcategoryID int64      `json:"subcategoryId"`
	Name          string     `json:"name"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

func CategoryFromDomain(c dom.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func SubcategoryFromDomain(s dom.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func ProductFromDomain(p dom.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SubcategoryID: p.SubcategoryID,
		Name:          p.Name,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// MapList converts a slice with fn, returning an empty (not nil) slice so
// lists always encode as [].
func MapList[T, R any](list []T, fn func(T) R) []R {
	out := make([]R, len(list))
	for i, v := range list {
		out[i] = fn(v)
	}
	return out
}

// DeletedResponse is the payload of every catalog DELETE.
type DeletedResponse[T any] struct {
	Deleted T               `json:"deleted"`
	Removed RemovedResponse `json:"removed"`
}
