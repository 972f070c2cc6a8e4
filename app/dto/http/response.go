package http

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type RegisterResponse struct {
	UserID uint64 `json:"user_id"`
}

type UserResponse struct {
	ID        uint64  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Authority string  `json:"authority"`
	Gender    *string `json:"gender,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

type CategoryResponse struct {
	ID        uint64 `json:"id"`
	Emoji     string `json:"emoji"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

type DailyRecordResponse struct {
	ID       uint64           `json:"id"`
	Date     string           `json:"date"`
	Memo     *string          `json:"memo,omitempty"`
	Together bool             `json:"together"`
	Category CategoryResponse `json:"category"`
}

type DailyOvereatResponse struct {
	Date  string `json:"date"`
	Level string `json:"level"`
}

type PairInviteResponse struct {
	InviteCode string `json:"invite_code"`
}

type PairResponse struct {
	ID               uint64  `json:"id"`
	Status           string  `json:"status"`
	PartnerName      *string `json:"partner_name,omitempty"`
	PartnerGender    *string `json:"partner_gender,omitempty"`
	PartnerBirthDate *string `json:"partner_birth_date,omitempty"`
	ConnectedAt      *string `json:"connected_at,omitempty"`
}

type PairEventResponse struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Emoji     string `json:"emoji"`
	EventDate string `json:"event_date"`
	Recurring bool   `json:"recurring"`
}

type IDResponse struct {
	ID uint64 `json:"id"`
}
