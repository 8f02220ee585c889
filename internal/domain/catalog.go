package domain

import "time"

// Category is the root of the catalog tree.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	ID         int64
	CategoryID int64
	Name       string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Product belongs to exactly one Subcategory.
type Product struct {
	ID            int64
	SubcategoryID int64
	Name          string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Removed counts the rows a cascading delete took out of each table.
type Removed struct {
	Users         int64
	Sessions      int64
	Categories    int64
	Subcategories int64
	Products      int64
	Downloads     int64
}

// Total is the number of rows removed across all tables.
func (r Removed) Total() int64 {
	return r.Users + r.Sessions + r.Categories + r.Subcategories + r.Products + r.Downloads
}

// MatchMode selects how a search term is anchored against a name.
type MatchMode int

const (
	MatchPrefix MatchMode = iota
	MatchContains
	MatchSuffix
)

// MatchModes lists every mode a catalog search unions together.
var MatchModes = []MatchMode{MatchPrefix, MatchContains, MatchSuffix}

func (m MatchMode) String() string {
	switch m {
	case MatchPrefix:
		return "prefix"
	case MatchContains:
		return "contains"
	case MatchSuffix:
		return "suffix"
	}
	return "unknown"
}
