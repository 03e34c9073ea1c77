package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/Geo222222/serenity-s-keys/internal/api"
	"github.com/Geo222222/serenity-s-keys/internal/models"
	"github.com/Geo222222/serenity-s-keys/pkg/utils"
)

// ErrAdminRequired means the operation needs an admin credential and none was
// presented, or the stored one has expired.
var ErrAdminRequired = errors.New("admin login required")

// Credential is a scoped admin credential: acquired via Login, carried
// explicitly on each admin call, invalidated by sign-out. Never looked up
// ambiently.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

func (c Credential) Present() bool {
	return c.Token != ""
}

// Valid reports whether the credential can still be attached to admin calls.
// A credential without a readable expiry is sent anyway; the upstream API is
// the authority on token validity.
func (c Credential) Valid(now time.Time) bool {
	if !c.Present() {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(c.ExpiresAt)
}

type adminAPI interface {
	AdminLogin(ctx context.Context, password string) (*models.AdminToken, error)
	CreateSession(ctx context.Context, token string, draft models.SessionDraft) (*api.RawResult, error)
	AdminSessions(ctx context.Context, token string) (*api.RawResult, error)
	ImportTypingCSV(ctx context.Context, token, filename string, file io.Reader) (*api.RawResult, error)
}

// AdminService wraps the staff-only operations: token acquisition, session
// creation, and Typing.com CSV import.
type AdminService struct {
	api adminAPI
}

func NewAdminService(api adminAPI) *AdminService {
	return &AdminService{api: api}
}

// Login exchanges the staff password for a credential. Expiry comes from the
// token's own exp claim when readable, else from the advertised expires_in.
func (s *AdminService) Login(ctx context.Context, password string) (Credential, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return Credential{}, validationErr("Enter the admin password.")
	}

	token, err := s.api.AdminLogin(ctx, password)
	if err != nil {
		return Credential{}, err
	}
	return s.CredentialFromToken(token.Token, time.Now().Add(time.Duration(token.ExpiresIn)*time.Second)), nil
}

// CredentialFromToken rebuilds a credential from a stored token, e.g. one
// presented back by the browser. fallbackExpiry is used when the token does
// not carry a readable exp claim.
func (s *AdminService) CredentialFromToken(token string, fallbackExpiry time.Time) Credential {
	cred := Credential{Token: token, ExpiresAt: fallbackExpiry}
	if expiry, err := utils.TokenExpiry(token); err == nil {
		cred.ExpiresAt = expiry
	}
	return cred
}

// CreateSession validates the draft, applies defaults, and submits it with
// the admin header. A credential is required before any upstream call.
func (s *AdminService) CreateSession(ctx context.Context, cred Credential, draft models.SessionDraft) (*api.RawResult, error) {
	if !cred.Valid(time.Now()) {
		return nil, ErrAdminRequired
	}

	draft.Course = strings.TrimSpace(draft.Course)
	draft.StartTS = strings.TrimSpace(draft.StartTS)
	draft.EndTS = strings.TrimSpace(draft.EndTS)
	if draft.Course == "" || draft.StartTS == "" || draft.EndTS == "" {
		return nil, validationErr("Course, start, and end times are required.")
	}
	if draft.Capacity <= 0 {
		draft.Capacity = 4
	}
	if strings.TrimSpace(draft.Mode) == "" {
		draft.Mode = "remote"
	} else {
		draft.Mode = strings.TrimSpace(draft.Mode)
	}
	if strings.TrimSpace(draft.Location) == "" {
		draft.Location = "Google Meet"
	} else {
		draft.Location = strings.TrimSpace(draft.Location)
	}

	return s.api.CreateSession(ctx, cred.Token, draft)
}

// UpcomingSessions lists future sessions for the admin console.
func (s *AdminService) UpcomingSessions(ctx context.Context, cred Credential) (*api.RawResult, error) {
	if !cred.Valid(time.Now()) {
		return nil, ErrAdminRequired
	}
	return s.api.AdminSessions(ctx, cred.Token)
}

// ImportCSV forwards a Typing.com export. The admin header is attached only
// when a credential is present; authentication on this endpoint is enforced
// upstream.
func (s *AdminService) ImportCSV(ctx context.Context, cred Credential, filename string, file io.Reader) (*api.RawResult, error) {
	return s.api.ImportTypingCSV(ctx, cred.Token, filename, file)
}
