package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Price is an optional monetary amount. It keeps every digit on every
// backend.
type Price struct {
	decimal.NullDecimal
}

// NewPrice wraps d as a Price.
func NewPrice(d decimal.NullDecimal) Price {
	return Price{NullDecimal: d}
}

// GormDBDataType picks an exact column type. SQLite gives DECIMAL numeric
// affinity and would store a REAL, so it gets TEXT.
func (Price) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "TEXT"
	}
	return "DECIMAL(38,18)"
}
