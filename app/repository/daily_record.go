package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
)

const dailyRecordColumns = `id, user_id, category_id, date, memo, together, created_at, updated_at`

type DailyRecordRepository struct {
	db DBTX
}

func NewDailyRecordRepository(db DBTX) *DailyRecordRepository {
	return &DailyRecordRepository{db: db}
}

func (r *DailyRecordRepository) WithTx(tx *sql.Tx) *DailyRecordRepository {
	return &DailyRecordRepository{db: tx}
}

func (r *DailyRecordRepository) Create(ctx context.Context, record *entity.DailyRecord) error {
	query := `
		INSERT INTO daily_records (user_id, category_id, date, memo, together, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.CategoryID,
		record.Date,
		record.Memo,
		record.Together,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	record.ID = uint64(id)
	return nil
}

func (r *DailyRecordRepository) FindByIDAndUser(ctx context.Context, id, userID uint64) (*entity.DailyRecord, error) {
	query := `
		SELECT ` + dailyRecordColumns + `
		FROM daily_records WHERE id = ? AND user_id = ?
	`
	record := &entity.DailyRecord{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.CategoryID,
		&record.Date,
		&record.Memo,
		&record.Together,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindAllByUser lists a user's records, optionally narrowed to an exact date
// or a from/to range, ordered by date then id.
func (r *DailyRecordRepository) FindAllByUser(ctx context.Context, userID uint64, date, from, to *time.Time) ([]*entity.DailyRecord, error) {
	query := `
		SELECT ` + dailyRecordColumns + `
		FROM daily_records WHERE user_id = ?
	`
	args := []any{userID}
	if date != nil {
		query += ` AND date = ?`
		args = append(args, *date)
	}
	if from != nil {
		query += ` AND date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND date <= ?`
		args = append(args, *to)
	}
	query += ` ORDER BY date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.DailyRecord
	for rows.Next() {
		record := &entity.DailyRecord{}
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.CategoryID,
			&record.Date,
			&record.Memo,
			&record.Together,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *DailyRecordRepository) Update(ctx context.Context, record *entity.DailyRecord) error {
	query := `
		UPDATE daily_records SET
			category_id = ?,
			date = ?,
			memo = ?,
			together = ?,
			updated_at = ?
		WHERE id = ?
	`
	record.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		record.CategoryID,
		record.Date,
		record.Memo,
		record.Together,
		record.UpdatedAt,
		record.ID,
	)
	return err
}

func (r *DailyRecordRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM daily_records WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
