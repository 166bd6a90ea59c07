package model

import "time"

type Language string

const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"
)

type Preferences struct {
	DarkMode      bool     `json:"dark_mode"`
	Language      Language `json:"language"`
	Notifications bool     `json:"notifications"`
}

type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Preferences Preferences `json:"preferences"`
}

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	FullName    *string      `json:"full_name,omitempty"`
	AvatarURL   *string      `json:"avatar_url,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Credential is the stored sign-in record for one account, keyed by email in
// the credential collection. The password is kept only as a bcrypt hash.
type Credential struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the signed authentication state handed to the presentation
// layer; the token is an HS256 JWT carrying the user id and expiry.
type Session struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
