package entity

import (
	"database/sql"
	"time"
)

type PairStatus string

const (
	PairStatusPending   PairStatus = "PENDING"
	PairStatusConnected PairStatus = "CONNECTED"
)

// PairConnection links an inviter to an optional partner. PartnerID stays
// null while the invite is PENDING; a CONNECTED pair never reverts.
type PairConnection struct {
	ID          uint64
	InviterID   uint64
	PartnerID   sql.NullInt64
	InviteCode  string
	Status      PairStatus
	ConnectedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Accept is the only mutation path from PENDING to CONNECTED.
func (p *PairConnection) Accept(partnerID uint64, now time.Time) {
	p.PartnerID = sql.NullInt64{Int64: int64(partnerID), Valid: true}
	p.Status = PairStatusConnected
	p.ConnectedAt = sql.NullTime{Time: now, Valid: true}
}

// OtherUserID resolves the counterpart of userID within the pair. The second
// return value is false for a PENDING pair viewed by the inviter.
func (p *PairConnection) OtherUserID(userID uint64) (uint64, bool) {
	if p.InviterID == userID {
		if !p.PartnerID.Valid {
			return 0, false
		}
		return uint64(p.PartnerID.Int64), true
	}
	return p.InviterID, true
}

type PairEvent struct {
	ID        uint64
	PairID    uint64
	Title     string
	Emoji     string
	EventDate time.Time
	Recurring bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
