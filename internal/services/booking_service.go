package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Geo222222/serenity-s-keys/internal/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrSessionBusy means a checkout attempt for the same session is already
	// in flight; the duplicate submission is refused without any upstream call.
	ErrSessionBusy = errors.New("session checkout already in progress")
)

// ValidationError is a local form rejection. Its message is shown to the user
// verbatim, so it carries no wrapping prefix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// AttemptState is the position of a checkout attempt in its three-step
// sequence against the upstream API.
type AttemptState int

const (
	StateIdle AttemptState = iota
	StateSavingProfile
	StateCreatingCheckout
	StateRedirecting
	StateFailed
)

func (s AttemptState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSavingProfile:
		return "saving_profile"
	case StateCreatingCheckout:
		return "creating_checkout"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type bookingAPI interface {
	UpsertProfile(ctx context.Context, profile models.Profile) (*models.ProfileResult, error)
	CreateCheckout(ctx context.Context, request models.CheckoutRequest) (*models.CheckoutResult, error)
}

// BookingService coordinates the profile-upsert -> checkout-create -> redirect
// sequence. A checkout request is never constructed before the profile upsert
// has resolved a student id.
type BookingService struct {
	api           bookingAPI
	guard         *sessionGuard
	defaultOrigin string
}

func NewBookingService(api bookingAPI, defaultOrigin string) *BookingService {
	return &BookingService{
		api:           api,
		guard:         newSessionGuard(),
		defaultOrigin: strings.TrimRight(defaultOrigin, "/"),
	}
}

// StartCheckoutInput carries the raw profile form values. Price and the
// existing student id stay strings until validated so malformed values are
// rejected locally instead of being coerced.
type StartCheckoutInput struct {
	SessionID         int64
	ParentName        string
	ParentEmail       string
	ParentPhone       string
	StudentName       string
	TypingUsername    string
	ExistingStudentID string
	PriceCents        string
	Origin            string
}

// CheckoutAttempt is one run of the booking sequence. A failed attempt is
// never resumed; retrying restarts the whole sequence.
type CheckoutAttempt struct {
	ID            uuid.UUID
	SessionID     int64
	State         AttemptState
	ParentID      int64
	StudentID     int64
	CheckoutURL   string
	FailureReason string
}

type checkoutStep struct {
	state AttemptState
	run   func(ctx context.Context, attempt *CheckoutAttempt) error
}

// StartCheckout validates the profile form, then walks the attempt through
// its transition table. Any step failing aborts all subsequent steps.
func (s *BookingService) StartCheckout(ctx context.Context, input StartCheckoutInput) (*CheckoutAttempt, error) {
	attempt := &CheckoutAttempt{
		ID:        uuid.New(),
		SessionID: input.SessionID,
		State:     StateIdle,
	}

	profile, amountCents, err := s.validate(input)
	if err != nil {
		attempt.fail(err)
		return attempt, err
	}

	if !s.guard.acquire(input.SessionID) {
		attempt.fail(ErrSessionBusy)
		return attempt, ErrSessionBusy
	}
	defer s.guard.release(input.SessionID)

	origin := strings.TrimRight(input.Origin, "/")
	if origin == "" {
		origin = s.defaultOrigin
	}
	typingUsername := profile.TypingUsername

	steps := []checkoutStep{
		{
			state: StateSavingProfile,
			run: func(ctx context.Context, attempt *CheckoutAttempt) error {
				result, err := s.api.UpsertProfile(ctx, profile)
				if err != nil {
					return err
				}
				attempt.ParentID = result.ParentID
				attempt.StudentID = result.StudentID
				return nil
			},
		},
		{
			state: StateCreatingCheckout,
			run: func(ctx context.Context, attempt *CheckoutAttempt) error {
				result, err := s.api.CreateCheckout(ctx, models.CheckoutRequest{
					SessionID:      attempt.SessionID,
					StudentID:      attempt.StudentID,
					AmountCents:    amountCents,
					SuccessURL:     origin + "/success",
					CancelURL:      origin + "/cancel",
					TypingUsername: typingUsername,
				})
				if err != nil {
					return err
				}
				attempt.CheckoutURL = result.CheckoutURL
				return nil
			},
		},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			attempt.fail(err)
			return attempt, err
		}
		attempt.State = step.state
		if err := step.run(ctx, attempt); err != nil {
			attempt.fail(err)
			return attempt, err
		}
	}

	attempt.State = StateRedirecting
	return attempt, nil
}

func (a *CheckoutAttempt) fail(err error) {
	a.State = StateFailed
	a.FailureReason = err.Error()
}

// validate enforces every profile rule before any network call is made. The
// email check is deliberately weak: presence of "@" only.
func (s *BookingService) validate(input StartCheckoutInput) (models.Profile, int64, error) {
	parentName := strings.TrimSpace(input.ParentName)
	parentEmail := strings.TrimSpace(input.ParentEmail)
	studentName := strings.TrimSpace(input.StudentName)

	if input.SessionID <= 0 {
		return models.Profile{}, 0, validationErr("A session must be selected before booking.")
	}
	if parentName == "" || parentEmail == "" || studentName == "" {
		return models.Profile{}, 0, validationErr("Please complete parent and student details before booking.")
	}
	if !strings.Contains(parentEmail, "@") {
		return models.Profile{}, 0, validationErr("Enter a valid parent email address.")
	}

	rawPrice := strings.TrimSpace(input.PriceCents)
	price, err := strconv.ParseFloat(rawPrice, 64)
	if rawPrice == "" || err != nil || price <= 0 || math.IsInf(price, 0) {
		return models.Profile{}, 0, validationErr("Enter a valid price in cents.")
	}

	profile := models.Profile{
		ParentName:  parentName,
		ParentEmail: parentEmail,
		StudentName: studentName,
	}
	if phone := strings.TrimSpace(input.ParentPhone); phone != "" {
		profile.ParentPhone = &phone
	}
	if username := strings.TrimSpace(input.TypingUsername); username != "" {
		profile.TypingUsername = &username
	}
	if rawID := strings.TrimSpace(input.ExistingStudentID); rawID != "" {
		studentID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return models.Profile{}, 0, validationErr("Existing student ID must be a number.")
		}
		profile.StudentID = &studentID
	}

	return profile, int64(math.Round(price)), nil
}
