package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/services"
)

// StudentCookieName keeps the most recently resolved student id so a resumed
// checkout rebinds to the same student instead of creating a new one.
const StudentCookieName = "sk_student_id"

type checkoutStarter interface {
	StartCheckout(ctx context.Context, input services.StartCheckoutInput) (*services.CheckoutAttempt, error)
}

type BookingHandler struct {
	booking checkoutStarter
}

func NewBookingHandler(booking checkoutStarter) *BookingHandler {
	return &BookingHandler{booking: booking}
}

type startCheckoutRequest struct {
	SessionID         int64  `json:"session_id" form:"session_id"`
	ParentName        string `json:"parent_name" form:"parent_name"`
	ParentEmail       string `json:"parent_email" form:"parent_email"`
	ParentPhone       string `json:"parent_phone" form:"parent_phone"`
	StudentName       string `json:"student_name" form:"student_name"`
	TypingUsername    string `json:"typing_username" form:"typing_username"`
	ExistingStudentID string `json:"existing_student_id" form:"existing_student_id"`
	PriceCents        string `json:"price_cents" form:"price_cents"`
}

// StartCheckout runs the booking sequence for one session selection. On
// success the browser is handed off to the external payment page: form posts
// get a 303 redirect, JSON clients get the checkout url to navigate to.
func (h *BookingHandler) StartCheckout(c *fiber.Ctx) error {
	var req startCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	attempt, err := h.booking.StartCheckout(c.Context(), services.StartCheckoutInput{
		SessionID:         req.SessionID,
		ParentName:        req.ParentName,
		ParentEmail:       req.ParentEmail,
		ParentPhone:       req.ParentPhone,
		StudentName:       req.StudentName,
		TypingUsername:    req.TypingUsername,
		ExistingStudentID: req.ExistingStudentID,
		PriceCents:        req.PriceCents,
		Origin:            c.Get("Origin"),
	})

	// The student id is recorded as soon as the profile upsert resolves one,
	// even when the checkout step fails afterwards. A retry must rebind to
	// the same student instead of creating a duplicate upstream.
	if attempt != nil && attempt.StudentID > 0 {
		c.Cookie(&fiber.Cookie{
			Name:     StudentCookieName,
			Value:    strconv.FormatInt(attempt.StudentID, 10),
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			HTTPOnly: false,
			SameSite: "Lax",
		})
	}

	if err != nil {
		return respondError(c, err)
	}

	if isFormPost(c) {
		return c.Redirect(attempt.CheckoutURL, fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{
		"attempt_id":   attempt.ID,
		"state":        attempt.State.String(),
		"student_id":   attempt.StudentID,
		"checkout_url": attempt.CheckoutURL,
	})
}

func isFormPost(c *fiber.Ctx) bool {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	return strings.HasPrefix(contentType, fiber.MIMEApplicationForm) ||
		strings.HasPrefix(contentType, fiber.MIMEMultipartForm)
}
