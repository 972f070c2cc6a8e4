package dto

import "time"

// TokenPair carries freshly issued raw tokens together with the cookie
// max-ages the controller should apply.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessMaxAgeSec  int64
	RefreshMaxAgeSec int64
}

// PairView describes a pair relative to the requesting user: the partner
// fields always refer to the other party.
type PairView struct {
	ID               uint64
	Status           string
	PartnerName      *string
	PartnerGender    *string
	PartnerBirthDate *time.Time
	ConnectedAt      *time.Time
}

type UserProfile struct {
	ID        uint64
	Username  string
	Name      string
	Authority string
	Gender    *string
	BirthDate *time.Time
}

type CategoryView struct {
	ID        uint64
	Emoji     string
	Name      string
	IsActive  bool
	SortOrder int
}

type DailyRecordView struct {
	ID       uint64
	Date     time.Time
	Memo     *string
	Together bool
	Category CategoryView
}

type DailyOvereatView struct {
	Date  time.Time
	Level string
}

type PairEventView struct {
	ID        uint64
	Title     string
	Emoji     string
	EventDate time.Time
	Recurring bool
}
