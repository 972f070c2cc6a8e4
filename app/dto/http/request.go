package http

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateMeRequest struct {
	Name            string  `json:"name,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	BirthDate       *string `json:"birth_date,omitempty"`
	Password        string  `json:"password,omitempty"`
	CurrentPassword string  `json:"current_password,omitempty"`
}

type AdminUserUpdateRequest struct {
	Password  string `json:"password"`
	Authority string `json:"authority"`
}

type CategoryRequest struct {
	Emoji    string `json:"emoji"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type CategoryMoveRequest struct {
	TargetID uint64  `json:"target_id"`
	BeforeID *uint64 `json:"before_id,omitempty"`
}

type DailyRecordRequest struct {
	Date       string `json:"date"`
	CategoryID uint64 `json:"category_id"`
	Memo       string `json:"memo,omitempty"`
	Together   bool   `json:"together"`
}

type DailyOvereatRequest struct {
	Date  string `json:"date"`
	Level string `json:"level"`
}

type PairAcceptRequest struct {
	InviteCode string `json:"invite_code"`
}

type PairEventRequest struct {
	Title     string `json:"title"`
	Emoji     string `json:"emoji"`
	EventDate string `json:"event_date"`
	Recurring bool   `json:"recurring"`
}
