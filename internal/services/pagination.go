package services

import (
	"context"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"gorm.io/gorm"
)

const PerPage = 10

// paginate counts the rows matched by base and loads one page of them.
// order and preloads are only applied to the page query.
func paginate[T any](ctx context.Context, db *gorm.DB, page int, base func(*gorm.DB) *gorm.DB, order string, preloads ...string) (*dto.Page[T], error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := base(db.WithContext(ctx).Model(new(T))).Count(&total).Error; err != nil {
		return nil, err
	}

	lastPage := int((total + PerPage - 1) / PerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	items := make([]T, 0, PerPage)
	// past the end there is nothing to load, and the offset could overflow
	if page <= lastPage {
		q := base(db.WithContext(ctx).Model(new(T)))
		for _, p := range preloads {
			q = q.Preload(p)
		}
		if err := q.Order(order).Offset((page - 1) * PerPage).Limit(PerPage).Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &dto.Page[T]{
		Data:        items,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     PerPage,
		Total:       total,
	}, nil
}
