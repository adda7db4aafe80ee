package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountNotFound   = fmt.Errorf("account %w", ErrNotFound)
	ErrUsernameTaken     = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrInvalidUsername   = fmt.Errorf("%w: username must be 3-32 letters, digits, '.', '_' or '-'", ErrInvalidInput)
	ErrInvalidEmail      = fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	ErrPasswordTooShort  = fmt.Errorf("%w: password must be at least 8 characters long", ErrInvalidInput)
	ErrInvalidAge        = fmt.Errorf("%w: age must be between 0 and 150", ErrInvalidInput)
	ErrInvalidBodyMetric = fmt.Errorf("%w: height and weight cannot be negative", ErrInvalidInput)
	ErrProfileTooLong    = fmt.Errorf("%w: profile field is too long (max 255 chars)", ErrInvalidInput)
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)

const (
	FirstDay        = 1
	MaxProfileField = 255
	bcryptCost      = 12
)

type Account struct {
	ID           string `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email,omitempty" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	Age          int     `json:"age" db:"age"`
	Height       float64 `json:"height" db:"height"`
	Weight       float64 `json:"weight" db:"weight"`
	Goal         string  `json:"goal" db:"goal"`
	RiskLevel    string  `json:"risk_level" db:"risk_level"`
	ProgramLevel string  `json:"program_level" db:"program_level"`
	GoalDuration string  `json:"goal_duration" db:"goal_duration"`
	PictureRef   string  `json:"picture_ref,omitempty" db:"picture_ref"`

	CurrentDay int       `json:"current_day" db:"current_day"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewAccount(id, username string) (*Account, error) {
	username = strings.TrimSpace(username)
	if !usernameRegex.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	now := time.Now().UTC()
	return &Account{
		ID:         id,
		Username:   username,
		CurrentDay: FirstDay,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (a *Account) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return err
	}

	a.PasswordHash = string(hash)
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (a *Account) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plainPassword))
}

// ProfilePatch carries the profile attributes a client may change. Nil fields
// are left untouched. Username, credential and CurrentDay are not patchable.
type ProfilePatch struct {
	Email        *string
	Age          *int
	Height       *float64
	Weight       *float64
	Goal         *string
	RiskLevel    *string
	ProgramLevel *string
	GoalDuration *string
	PictureRef   *string
}

func (p ProfilePatch) Apply(a *Account) error {
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if email != "" && !isValidEmail(email) {
			return ErrInvalidEmail
		}
		a.Email = email
	}
	if p.Age != nil {
		if *p.Age < 0 || *p.Age > 150 {
			return ErrInvalidAge
		}
		a.Age = *p.Age
	}
	if p.Height != nil {
		if *p.Height < 0 {
			return ErrInvalidBodyMetric
		}
		a.Height = *p.Height
	}
	if p.Weight != nil {
		if *p.Weight < 0 {
			return ErrInvalidBodyMetric
		}
		a.Weight = *p.Weight
	}

	fields := []struct {
		src *string
		dst *string
	}{
		{p.Goal, &a.Goal},
		{p.RiskLevel, &a.RiskLevel},
		{p.ProgramLevel, &a.ProgramLevel},
		{p.GoalDuration, &a.GoalDuration},
		{p.PictureRef, &a.PictureRef},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if utf8.RuneCountInString(v) > MaxProfileField {
			return ErrProfileTooLong
		}
		*f.dst = v
	}

	a.UpdatedAt = time.Now().UTC()
	return nil
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
