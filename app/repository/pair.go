package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
)

const pairColumns = `id, inviter_id, partner_id, invite_code, status, connected_at, created_at, updated_at`

type PairRepository struct {
	db DBTX
}

func NewPairRepository(db DBTX) *PairRepository {
	return &PairRepository{db: db}
}

func (r *PairRepository) WithTx(tx *sql.Tx) *PairRepository {
	return &PairRepository{db: tx}
}

func (r *PairRepository) Create(ctx context.Context, pair *entity.PairConnection) error {
	query := `
		INSERT INTO pairs (inviter_id, partner_id, invite_code, status, connected_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		pair.InviterID,
		pair.PartnerID,
		pair.InviteCode,
		pair.Status,
		pair.ConnectedAt,
		pair.CreatedAt,
		pair.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	pair.ID = uint64(id)
	return nil
}

func (r *PairRepository) FindByInviteCode(ctx context.Context, inviteCode string) (*entity.PairConnection, error) {
	query := `
		SELECT ` + pairColumns + `
		FROM pairs WHERE invite_code = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, inviteCode))
}

func (r *PairRepository) FindByInviterAndStatus(ctx context.Context, inviterID uint64, status entity.PairStatus) (*entity.PairConnection, error) {
	query := `
		SELECT ` + pairColumns + `
		FROM pairs WHERE inviter_id = ? AND status = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, inviterID, status))
}

func (r *PairRepository) FindByPartnerAndStatus(ctx context.Context, partnerID uint64, status entity.PairStatus) (*entity.PairConnection, error) {
	query := `
		SELECT ` + pairColumns + `
		FROM pairs WHERE partner_id = ? AND status = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, partnerID, status))
}

// FindAnyByInviter returns the inviter's pair regardless of status. A user
// creates at most one pair as inviter, PENDING or CONNECTED.
func (r *PairRepository) FindAnyByInviter(ctx context.Context, inviterID uint64) (*entity.PairConnection, error) {
	query := `
		SELECT ` + pairColumns + `
		FROM pairs WHERE inviter_id = ? AND status IN ('PENDING', 'CONNECTED')
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, inviterID))
}

// AcceptPending commits the PENDING -> CONNECTED transition. The status guard
// in the WHERE clause makes concurrent double-accepts lose cleanly: the first
// writer flips the row, later writers see zero affected rows.
func (r *PairRepository) AcceptPending(ctx context.Context, pairID, partnerID uint64, connectedAt time.Time) (int64, error) {
	query := `
		UPDATE pairs SET
			partner_id = ?,
			status = 'CONNECTED',
			connected_at = ?,
			updated_at = ?
		WHERE id = ? AND status = 'PENDING'
	`
	result, err := r.db.ExecContext(ctx, query, partnerID, connectedAt, connectedAt, pairID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PairRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM pairs WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PairRepository) scanOne(row *sql.Row) (*entity.PairConnection, error) {
	pair := &entity.PairConnection{}
	err := row.Scan(
		&pair.ID,
		&pair.InviterID,
		&pair.PartnerID,
		&pair.InviteCode,
		&pair.Status,
		&pair.ConnectedAt,
		&pair.CreatedAt,
		&pair.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pair, nil
}
