package domain

import "time"

// Lang is the user's interface language preference.
type Lang string

const (
	LangUA Lang = "ua"
	LangEN Lang = "en"
	LangRU Lang = "ru"
)

// DefaultLang is applied when a request carries no usable language code.
const DefaultLang = LangUA

func (l Lang) Valid() bool {
	switch l {
	case LangUA, LangEN, LangRU:
		return true
	}
	return false
}

// ParseLang normalizes a language code, falling back to the default.
func ParseLang(s string) Lang {
	l := Lang(s)
	if !l.Valid() {
		return DefaultLang
	}
	return l
}

// UTM carries the acquisition attribution captured at signup. Write-only
// from the service's perspective.
type UTM struct {
	Source   string
	Medium   string
	Campaign string
	Content  string
	Term     string
}

// User is the account record. Link/expiry pairs are always both set or both
// empty; IsActivated=true implies the activation pair is empty. An empty
// PasswordHash marks a Google-only account that authenticates without a
// password.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	IsActivated           bool
	ActivationLink        string
	ActivationLinkExpires *time.Time

	PasswordResetLink        string
	PasswordResetLinkExpires *time.Time

	Lang      Lang
	FirstName string
	LastName  string
	Avatar    string
	Birthday  *time.Time

	UTM UTM

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether the account can authenticate with credentials.
func (u User) HasPassword() bool { return u.PasswordHash != "" }

// UserDTO is the externally visible projection of a user. It never carries
// the password hash or any link values, and is rebuilt fresh per response.
type UserDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	HasPassword bool       `json:"hasPassword"`
	IsActivated bool       `json:"isActivated"`
	Lang        Lang       `json:"lang"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Birthday    *time.Time `json:"birthday,omitempty"`
}

// NewUserDTO projects a user record into its external shape.
func NewUserDTO(u User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		HasPassword: u.HasPassword(),
		IsActivated: u.IsActivated,
		Lang:        u.Lang,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Avatar:      u.Avatar,
		Birthday:    u.Birthday,
	}
}
