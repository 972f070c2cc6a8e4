package entity

import (
	"database/sql"
	"time"
)

type Authority string

const (
	AuthorityUser  Authority = "USER"
	AuthorityAdmin Authority = "ADMIN"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type User struct {
	ID           uint64
	Username     string
	Name         string
	PasswordHash string
	Authority    Authority
	Gender       sql.NullString
	BirthDate    sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateCredentials is the single mutation path for password/authority
// changes; the admin update flow goes through here.
func (u *User) UpdateCredentials(passwordHash string, authority Authority) {
	u.PasswordHash = passwordHash
	u.Authority = authority
}

func (u *User) UpdateProfile(name string, gender sql.NullString, birthDate sql.NullTime) {
	if name != "" {
		u.Name = name
	}
	u.Gender = gender
	u.BirthDate = birthDate
}

func (u *User) UpdatePassword(passwordHash string) {
	u.PasswordHash = passwordHash
}

type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt sql.NullTime
	CreatedAt time.Time
}
