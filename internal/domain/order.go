package domain

import (
	"fmt"
	"strings"
)

// Order is a validated ORDER BY clause: Column always comes from a whitelist.
type Order struct {
	Column string
	Desc   bool
}

// Columns maps accepted field spellings to a table column. Keys are
// lowercase with underscores removed, so "createdAt", "created_at" and
// "CREATEDAT" resolve to the same column.
type Columns map[string]string

var (
	CategoryColumns = Columns{
		"id":        "id",
		"name":      "name",
		"category":  "name",
		"createdat": "created_at",
		"updatedat": "updated_at",
	}
	SubcategoryColumns = Columns{
		"id":          "id",
		"name":        "name",
		"subcategory": "name",
		"categoryid":  "category_id",
		"category":    "category_id",
		"createdat":   "created_at",
		"updatedat":   "updated_at",
	}
	ProductColumns = Columns{
		"id":            "id",
		"name":          "name",
		"product":       "name",
		"subcategoryid": "subcategory_id",
		"subcategory":   "subcategory_id",
		"createdat":     "created_at",
		"updatedat":     "updated_at",
	}
)

// ParseOrder validates a sort field against cols and a direction of
// "asc" or "desc" (any case).
func ParseOrder(cols Columns, field, direction string) (Order, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(field)), "_", "")
	column, ok := cols[key]
	if !ok {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "asc":
		return Order{Column: column}, nil
	case "desc":
		return Order{Column: column, Desc: true}, nil
	}
	return Order{}, fmt.Errorf("%w: direction must be asc or desc, got %q", ErrValidation, direction)
}

// SQL renders the clause body, e.g. "created_at DESC, id DESC".
// The id tiebreaker keeps pages stable when the column has duplicates.
func (o Order) SQL() string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	if o.Column == "id" {
		return "id " + dir
	}
	return o.Column + " " + dir + ", id " + dir
}
