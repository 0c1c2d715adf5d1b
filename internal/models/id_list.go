package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList is an ordered list of ids stored as a JSON array column.
// Projects use it for their denormalized collaborator, track and NFT lists.
type IDList []string

// Value encodes the list with the datatypes JSON slice codec. A nil list is
// written as [] so readers never see null.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return datatypes.NewJSONSlice([]string(l)).Value()
}

// Scan decodes a JSON array column. NULL, as left by a column added after
// the row was written, reads as an empty list.
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}
	var s datatypes.JSONSlice[string]
	if err := s.Scan(value); err != nil {
		return err
	}
	*l = IDList(s)
	return nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL has no json type.
func (IDList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}

// Contains reports whether id is in the list.
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed.
func (l IDList) Without(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
