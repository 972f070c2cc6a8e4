package entity

import (
	"database/sql"
	"time"
)

type Category struct {
	ID        uint64
	Emoji     string
	Name      string
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) UpdateDetails(emoji, name string, isActive bool) {
	c.Emoji = emoji
	c.Name = name
	c.IsActive = isActive
}

func (c *Category) UpdateSortOrder(sortOrder int) {
	c.SortOrder = sortOrder
}

type DailyRecord struct {
	ID         uint64
	UserID     uint64
	CategoryID uint64
	Date       time.Time
	Memo       sql.NullString
	Together   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *DailyRecord) UpdateDetails(date time.Time, categoryID uint64, memo sql.NullString, together bool) {
	r.Date = date
	r.CategoryID = categoryID
	r.Memo = memo
	r.Together = together
}

type OvereatLevel string

const (
	OvereatNone   OvereatLevel = "NONE"
	OvereatMild   OvereatLevel = "MILD"
	OvereatSevere OvereatLevel = "SEVERE"
)

// DailyOvereat holds at most one row per (user, date); NONE is represented
// by the absence of a row rather than stored.
type DailyOvereat struct {
	ID        uint64
	UserID    uint64
	Date      time.Time
	Level     OvereatLevel
	CreatedAt time.Time
	UpdatedAt time.Time
}
