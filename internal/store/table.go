package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("store: record not found")

// Table is a typed view over one model's table. Every method takes the
// session it must run in, so several tables can share one transaction.
type Table[T any] struct {
	orderBy string
}

// NewTable returns a Table listing rows by orderBy, which should end in the
// primary key so the order is total.
func NewTable[T any](orderBy string) Table[T] {
	return Table[T]{orderBy: orderBy}
}

// Get returns the record stored under id.
func (t Table[T]) Get(tx *gorm.DB, id string) (*T, error) {
	return t.get(tx, id)
}

// GetForUpdate is Get with a row lock held until the transaction ends.
// SQLite serialises writers instead.
func (t Table[T]) GetForUpdate(tx *gorm.DB, id string) (*T, error) {
	locked, err := t.forUpdate(tx)
	if err != nil {
		return nil, err
	}
	return t.get(locked, id)
}

func (t Table[T]) forUpdate(tx *gorm.DB) (*gorm.DB, error) {
	switch tx.Dialector.Name() {
	case "mysql", "postgres":
		return tx.Clauses(clause.Locking{Strength: "UPDATE"}), nil
	case "sqlserver":
		// No FOR UPDATE; the lock is a table hint.
		s, err := t.schema(tx)
		if err != nil {
			return nil, err
		}
		return tx.Table(s.Table + " WITH (UPDLOCK, ROWLOCK)"), nil
	}
	return tx, nil
}

func (t Table[T]) schema(tx *gorm.DB) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse %T: %w", new(T), err)
	}
	return stmt.Schema, nil
}

func (t Table[T]) get(tx *gorm.DB, id string) (*T, error) {
	rec := new(T)
	if err := tx.Where("id = ?", id).Take(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %T %s: %w", rec, id, err)
	}
	return rec, nil
}

// Exists reports whether a record is stored under id.
func (t Table[T]) Exists(tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count %T: %w", new(T), err)
	}
	return count > 0, nil
}

// Put inserts rec, or fully replaces the stored record with the same id.
// Every column is written from rec, timestamps included.
func (t Table[T]) Put(tx *gorm.DB, rec *T) error {
	s, err := t.schema(tx)
	if err != nil {
		return err
	}

	var keys []clause.Column
	var columns []string
	for _, f := range s.Fields {
		switch {
		case f.DBName == "":
		case f.PrimaryKey:
			keys = append(keys, clause.Column{Name: f.DBName})
		default:
			columns = append(columns, f.DBName)
		}
	}

	// UpdateAll would stamp autoUpdateTime columns with the dialect clock.
	onConflict := clause.OnConflict{
		Columns:   keys,
		DoUpdates: clause.AssignmentColumns(columns),
	}
	if err := tx.Clauses(onConflict).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to write %T: %w", rec, err)
	}
	return nil
}

// List returns every record in table order.
func (t Table[T]) List(tx *gorm.DB) ([]T, error) {
	out := []T{}
	if err := tx.Order(t.orderBy).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", out, err)
	}
	return out, nil
}

// ListBy returns the records whose column equals value, in table order.
// column is expected to carry an index.
func (t Table[T]) ListBy(tx *gorm.DB, column string, value interface{}) ([]T, error) {
	out := []T{}
	err := tx.
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order(t.orderBy).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %T by %s: %w", out, column, err)
	}
	return out, nil
}

// Delete removes the record stored under id.
func (t Table[T]) Delete(tx *gorm.DB, id string) error {
	result := tx.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("failed to delete %T %s: %w", new(T), id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
