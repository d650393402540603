package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/company-tracker-api/internal/patch"
	"github.com/yukikurage/company-tracker-api/internal/repository"
	"gorm.io/gorm"
)

func findScoped[T any](store repository.ScopedStore[T], scope repository.Scope, id uint64, notFound error) (*T, error) {
	row, err := store.FindByID(scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to load row: %w", err)
	}
	return row, nil
}

// patchScoped applies the fields of body that table knows about and reads
// the row back. A row outside scope surfaces as notFound on the read.
func patchScoped[T any](store repository.ScopedStore[T], scope repository.Scope, id uint64, table patch.Table, body patch.Body, notFound error) (*T, error) {
	updates, err := table.Updates(body)
	if err != nil {
		return nil, err
	}
	if err := store.Update(scope, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update row: %w", err)
	}
	return findScoped(store, scope, id, notFound)
}
