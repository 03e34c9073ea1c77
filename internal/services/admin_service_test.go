package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Geo222222/serenity-s-keys/internal/api"
	"github.com/Geo222222/serenity-s-keys/internal/models"
)

type stubAdminAPI struct {
	loginResult  *models.AdminToken
	loginErr     error
	loginCalls   int
	lastPassword string

	createResult *api.RawResult
	createErr    error
	createCalls  int
	lastToken    string
	lastDraft    models.SessionDraft

	sessionsResult *api.RawResult
	sessionsCalls  int

	importResult  *api.RawResult
	importCalls   int
	lastImportTok string
	lastFilename  string
	lastContents  string
}

func (s *stubAdminAPI) AdminLogin(_ context.Context, password string) (*models.AdminToken, error) {
	s.loginCalls++
	s.lastPassword = password
	return s.loginResult, s.loginErr
}

func (s *stubAdminAPI) CreateSession(_ context.Context, token string, draft models.SessionDraft) (*api.RawResult, error) {
	s.createCalls++
	s.lastToken = token
	s.lastDraft = draft
	return s.createResult, s.createErr
}

func (s *stubAdminAPI) AdminSessions(_ context.Context, token string) (*api.RawResult, error) {
	s.sessionsCalls++
	s.lastToken = token
	return s.sessionsResult, nil
}

func (s *stubAdminAPI) ImportTypingCSV(_ context.Context, token, filename string, file io.Reader) (*api.RawResult, error) {
	s.importCalls++
	s.lastImportTok = token
	s.lastFilename = filename
	content, _ := io.ReadAll(file)
	s.lastContents = string(content)
	return s.importResult, nil
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiry),
	})
	signed, err := token.SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestLoginRequiresPassword(t *testing.T) {
	stub := &stubAdminAPI{}
	service := NewAdminService(stub)

	_, err := service.Login(context.Background(), "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.loginCalls != 0 {
		t.Errorf("empty password must not reach the network")
	}
}

func TestLoginReadsExpiryFromToken(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	stub := &stubAdminAPI{
		loginResult: &models.AdminToken{Token: signedToken(t, expiry), ExpiresIn: 60},
	}
	service := NewAdminService(stub)

	cred, err := service.Login(context.Background(), "sesame")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if stub.lastPassword != "sesame" {
		t.Errorf("unexpected password %q", stub.lastPassword)
	}
	if !cred.ExpiresAt.Equal(expiry) {
		t.Errorf("expected exp claim %v, got %v", expiry, cred.ExpiresAt)
	}
	if !cred.Valid(time.Now()) {
		t.Errorf("fresh credential should be valid")
	}
}

func TestLoginFallsBackToAdvertisedExpiry(t *testing.T) {
	stub := &stubAdminAPI{
		loginResult: &models.AdminToken{Token: "opaque-token", ExpiresIn: 3600},
	}
	service := NewAdminService(stub)

	cred, err := service.Login(context.Background(), "sesame")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if cred.ExpiresAt.Before(time.Now().Add(59 * time.Minute)) {
		t.Errorf("expected expires_in fallback, got %v", cred.ExpiresAt)
	}
}

func TestCredentialValidity(t *testing.T) {
	now := time.Now()
	if (Credential{}).Valid(now) {
		t.Errorf("absent credential must be invalid")
	}
	if !(Credential{Token: "tok"}).Valid(now) {
		t.Errorf("credential without readable expiry is relayed; upstream decides")
	}
	if (Credential{Token: "tok", ExpiresAt: now.Add(-time.Minute)}).Valid(now) {
		t.Errorf("expired credential must be invalid")
	}
}

func TestCreateSessionRequiresCredential(t *testing.T) {
	stub := &stubAdminAPI{}
	service := NewAdminService(stub)

	_, err := service.CreateSession(context.Background(), Credential{}, models.SessionDraft{
		Course:  "group:6-8",
		StartTS: "2026-09-25T21:00:00-05:00",
		EndTS:   "2026-09-25T21:45:00-05:00",
	})
	if !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
	if stub.createCalls != 0 {
		t.Errorf("missing credential must not reach the network")
	}
}

func TestCreateSessionValidatesAndDefaults(t *testing.T) {
	stub := &stubAdminAPI{createResult: &api.RawResult{Status: 201, Body: `{"id":7}`}}
	service := NewAdminService(stub)
	cred := Credential{Token: "tok123"}

	_, err := service.CreateSession(context.Background(), cred, models.SessionDraft{Course: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Course, start, and end times are required." {
		t.Errorf("unexpected message %q", err.Error())
	}
	if stub.createCalls != 0 {
		t.Errorf("invalid draft must not reach the network")
	}

	raw, err := service.CreateSession(context.Background(), cred, models.SessionDraft{
		Course:  " group:6-8 ",
		StartTS: "2026-09-25T21:00:00-05:00",
		EndTS:   "2026-09-25T21:45:00-05:00",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if raw.Status != 201 {
		t.Errorf("expected relayed status, got %d", raw.Status)
	}
	if stub.lastToken != "tok123" {
		t.Errorf("expected token attached, got %q", stub.lastToken)
	}
	if stub.lastDraft.Course != "group:6-8" {
		t.Errorf("expected trimmed course, got %q", stub.lastDraft.Course)
	}
	if stub.lastDraft.Mode != "remote" || stub.lastDraft.Location != "Google Meet" || stub.lastDraft.Capacity != 4 {
		t.Errorf("expected defaults applied, got %+v", stub.lastDraft)
	}
}

func TestUpcomingSessionsRequiresCredential(t *testing.T) {
	stub := &stubAdminAPI{sessionsResult: &api.RawResult{Status: 200, Body: `[]`}}
	service := NewAdminService(stub)

	if _, err := service.UpcomingSessions(context.Background(), Credential{}); !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
	if stub.sessionsCalls != 0 {
		t.Errorf("missing credential must not reach the network")
	}

	if _, err := service.UpcomingSessions(context.Background(), Credential{Token: "tok123"}); err != nil {
		t.Fatalf("UpcomingSessions: %v", err)
	}
	if stub.lastToken != "tok123" {
		t.Errorf("expected token attached, got %q", stub.lastToken)
	}
}

func TestImportCSVForwardsWithoutCredential(t *testing.T) {
	stub := &stubAdminAPI{importResult: &api.RawResult{Status: 401, Body: `{"detail":"Unauthorized"}`}}
	service := NewAdminService(stub)

	raw, err := service.ImportCSV(context.Background(), Credential{}, "export.csv", strings.NewReader("student,wpm\n"))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if stub.lastImportTok != "" {
		t.Errorf("expected no token, got %q", stub.lastImportTok)
	}
	if stub.lastFilename != "export.csv" || stub.lastContents != "student,wpm\n" {
		t.Errorf("unexpected forward: %q %q", stub.lastFilename, stub.lastContents)
	}
	if raw.Status != 401 {
		t.Errorf("upstream rejection is relayed untouched, got %d", raw.Status)
	}
}
