package models

// Tag is reference data attached to recipes. Name, color and slug are each
// unique across the catalog; color is a hex code like #49B64E.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:150;uniqueIndex;not null" json:"slug"`
}
