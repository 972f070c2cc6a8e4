package repository

import (
	"context"
	"database/sql"

	"github.com/haneul-labs/daily-record/app/entity"
)

type PairEventRepository struct {
	db DBTX
}

func NewPairEventRepository(db DBTX) *PairEventRepository {
	return &PairEventRepository{db: db}
}

func (r *PairEventRepository) WithTx(tx *sql.Tx) *PairEventRepository {
	return &PairEventRepository{db: tx}
}

func (r *PairEventRepository) Create(ctx context.Context, event *entity.PairEvent) error {
	query := `
		INSERT INTO pair_events (pair_id, title, emoji, event_date, recurring, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		event.PairID,
		event.Title,
		event.Emoji,
		event.EventDate,
		event.Recurring,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = uint64(id)
	return nil
}

func (r *PairEventRepository) FindByID(ctx context.Context, id uint64) (*entity.PairEvent, error) {
	query := `
		SELECT id, pair_id, title, emoji, event_date, recurring, created_at, updated_at
		FROM pair_events WHERE id = ?
	`
	event := &entity.PairEvent{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.PairID,
		&event.Title,
		&event.Emoji,
		&event.EventDate,
		&event.Recurring,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *PairEventRepository) FindAllByPair(ctx context.Context, pairID uint64) ([]*entity.PairEvent, error) {
	query := `
		SELECT id, pair_id, title, emoji, event_date, recurring, created_at, updated_at
		FROM pair_events WHERE pair_id = ? ORDER BY event_date, id
	`
	rows, err := r.db.QueryContext(ctx, query, pairID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*entity.PairEvent
	for rows.Next() {
		event := &entity.PairEvent{}
		if err := rows.Scan(
			&event.ID,
			&event.PairID,
			&event.Title,
			&event.Emoji,
			&event.EventDate,
			&event.Recurring,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *PairEventRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM pair_events WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteAllByPair removes every event of a pair; called when a pair is
// dissolved so events do not linger as orphans.
func (r *PairEventRepository) DeleteAllByPair(ctx context.Context, pairID uint64) error {
	query := `DELETE FROM pair_events WHERE pair_id = ?`
	_, err := r.db.ExecContext(ctx, query, pairID)
	return err
}
