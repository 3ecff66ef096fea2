package models

// Ingredient is a catalog entry. The same name may appear with different
// measurement units, so uniqueness is on the (name, measurement_unit) pair.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:150;not null;index;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:150;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}
