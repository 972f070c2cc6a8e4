package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
)

const categoryColumns = `id, emoji, name, is_active, sort_order, created_at, updated_at`

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) WithTx(tx *sql.Tx) *CategoryRepository {
	return &CategoryRepository{db: tx}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (emoji, name, is_active, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		category.Emoji,
		category.Name,
		category.IsActive,
		category.SortOrder,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = uint64(id)
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories WHERE id = ?
	`
	category := &entity.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Emoji,
		&category.Name,
		&category.IsActive,
		&category.SortOrder,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// FindAllOrdered lists categories by sort order. active filters on is_active
// when non-nil.
func (r *CategoryRepository) FindAllOrdered(ctx context.Context, active *bool) ([]*entity.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
	`
	var args []any
	if active != nil {
		query += ` WHERE is_active = ?`
		args = append(args, *active)
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category := &entity.Category{}
		if err := rows.Scan(
			&category.ID,
			&category.Emoji,
			&category.Name,
			&category.IsActive,
			&category.SortOrder,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) MaxSortOrder(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(sort_order), 0) FROM categories`
	var max int
	if err := r.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET
			emoji = ?,
			name = ?,
			is_active = ?,
			sort_order = ?,
			updated_at = ?
		WHERE id = ?
	`
	category.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		category.Emoji,
		category.Name,
		category.IsActive,
		category.SortOrder,
		category.UpdatedAt,
		category.ID,
	)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM categories WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
