package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
)

type DailyOvereatRepository struct {
	db DBTX
}

func NewDailyOvereatRepository(db DBTX) *DailyOvereatRepository {
	return &DailyOvereatRepository{db: db}
}

func (r *DailyOvereatRepository) WithTx(tx *sql.Tx) *DailyOvereatRepository {
	return &DailyOvereatRepository{db: tx}
}

func (r *DailyOvereatRepository) Create(ctx context.Context, overeat *entity.DailyOvereat) error {
	query := `
		INSERT INTO daily_overeats (user_id, date, level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		overeat.UserID,
		overeat.Date,
		overeat.Level,
		overeat.CreatedAt,
		overeat.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	overeat.ID = uint64(id)
	return nil
}

func (r *DailyOvereatRepository) FindByUserAndDate(ctx context.Context, userID uint64, date time.Time) (*entity.DailyOvereat, error) {
	query := `
		SELECT id, user_id, date, level, created_at, updated_at
		FROM daily_overeats WHERE user_id = ? AND date = ?
	`
	overeat := &entity.DailyOvereat{}
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&overeat.ID,
		&overeat.UserID,
		&overeat.Date,
		&overeat.Level,
		&overeat.CreatedAt,
		&overeat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return overeat, nil
}

func (r *DailyOvereatRepository) FindAllByUserBetween(ctx context.Context, userID uint64, from, to time.Time) ([]*entity.DailyOvereat, error) {
	query := `
		SELECT id, user_id, date, level, created_at, updated_at
		FROM daily_overeats
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overeats []*entity.DailyOvereat
	for rows.Next() {
		overeat := &entity.DailyOvereat{}
		if err := rows.Scan(
			&overeat.ID,
			&overeat.UserID,
			&overeat.Date,
			&overeat.Level,
			&overeat.CreatedAt,
			&overeat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		overeats = append(overeats, overeat)
	}
	return overeats, rows.Err()
}

func (r *DailyOvereatRepository) UpdateLevel(ctx context.Context, id uint64, level entity.OvereatLevel) error {
	query := `UPDATE daily_overeats SET level = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, level, time.Now(), id)
	return err
}

func (r *DailyOvereatRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM daily_overeats WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
