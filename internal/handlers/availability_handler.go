package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/models"
	"github.com/Geo222222/serenity-s-keys/internal/services"
	"github.com/Geo222222/serenity-s-keys/pkg/utils"
)

type availabilityAPI interface {
	Availability(ctx context.Context, course string) ([]models.Session, error)
}

type AvailabilityHandler struct {
	api     availabilityAPI
	catalog *services.Catalog
}

func NewAvailabilityHandler(api availabilityAPI, catalog *services.Catalog) *AvailabilityHandler {
	return &AvailabilityHandler{api: api, catalog: catalog}
}

type sessionView struct {
	ID             int64  `json:"id"`
	When           string `json:"when"`
	SeatsAvailable int    `json:"seats_available"`
	Bookable       bool   `json:"bookable"`
	Action         string `json:"action"`
}

type availabilityView struct {
	Course              string        `json:"course"`
	Heading             string        `json:"heading"`
	SuggestedPriceCents int64         `json:"suggested_price_cents"`
	HasSessions         bool          `json:"has_sessions"`
	Sessions            []sessionView `json:"sessions"`
}

// List renders bookable time slots for a course. Seat counts are always
// fetched fresh; the upstream call bypasses caches.
func (h *AvailabilityHandler) List(c *fiber.Ctx) error {
	course := c.Query("course")
	if course == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Pick a program first.", "programs_path": "/programs"})
	}

	sessions, err := h.api.Availability(c.Context(), course)
	if err != nil {
		return respondError(c, err)
	}

	view := availabilityView{
		Course:              course,
		Heading:             heading(course),
		SuggestedPriceCents: h.catalog.SuggestedPrice(course, c.Query("price")),
		HasSessions:         len(sessions) > 0,
		Sessions:            make([]sessionView, 0, len(sessions)),
	}
	for _, session := range sessions {
		view.Sessions = append(view.Sessions, sessionView{
			ID:             session.ID,
			When:           utils.FormatSessionRange(session.StartTS, session.EndTS),
			SeatsAvailable: session.SeatsAvailable,
			Bookable:       session.Bookable(),
			Action:         actionLabel(session),
		})
	}
	return c.JSON(view)
}

func heading(course string) string {
	if course == "private:all" {
		return "Private coaching availability"
	}
	return fmt.Sprintf("Availability for %s", course)
}

func actionLabel(session models.Session) string {
	if !session.Bookable() {
		return "Full"
	}
	return "Start checkout"
}
