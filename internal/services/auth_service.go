package services

import (
	"context"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "taskdeck.app/taskdeck/internal/errors"
	model "taskdeck.app/taskdeck/internal/models"
	"taskdeck.app/taskdeck/internal/storage"
)

const (
	sessionTTL        = 7 * 24 * time.Hour
	minPasswordLength = 6
)

// AuthService is the identity collaborator: account creation, credential
// verification and session issuance. Sessions are HS256 JWTs with a fixed
// 7-day expiry, checked on every CurrentUser call.
type AuthService struct {
	store  *storage.Store
	secret []byte
	now    func() time.Time
}

func NewAuthService(store *storage.Store, secret string) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*model.User, *model.Session, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, apperrors.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, nil, apperrors.ErrPasswordTooShort
	}

	credentials := s.store.Credentials(ctx)
	if _, exists := credentials[email]; exists {
		return nil, nil, apperrors.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  fullName,
		CreatedAt: now,
		Preferences: model.Preferences{
			Language:      model.LanguagePT,
			Notifications: true,
		},
	}

	credentials[email] = model.Credential{
		UserID:       user.ID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	s.store.SaveCredentials(ctx, credentials)
	s.store.SaveUser(ctx, user)

	session, err := s.issueSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	credential, ok := s.store.Credentials(ctx)[email]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueSession(credential.UserID)
}

// CurrentUser resolves the session token back to the stored user profile.
// Expired or malformed tokens fail with ErrSessionExpired.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrSessionExpired
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, apperrors.ErrSessionExpired
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, apperrors.ErrSessionExpired
	}

	user := s.store.User(ctx)
	if user == nil || user.ID != claims.Subject {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueSession(userID string) (*model.Session, error) {
	now := s.now()
	expiresAt := now.Add(sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &model.Session{
		UserID:    userID,
		Token:     signed,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}
