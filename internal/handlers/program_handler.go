package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/services"
)

type ProgramHandler struct {
	catalog *services.Catalog
}

func NewProgramHandler(catalog *services.Catalog) *ProgramHandler {
	return &ProgramHandler{catalog: catalog}
}

type programView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Blurb             string `json:"blurb"`
	DefaultPriceCents int64  `json:"default_price_cents"`
	AvailabilityPath  string `json:"availability_path"`
}

// List renders the program catalog with availability links carrying the
// suggested price.
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	programs := h.catalog.Programs()
	views := make([]programView, 0, len(programs))
	for _, program := range programs {
		views = append(views, programView{
			ID:                program.ID,
			Name:              program.Name,
			Blurb:             program.Blurb,
			DefaultPriceCents: program.DefaultPriceCents,
			AvailabilityPath: fmt.Sprintf("/availability?course=%s&price=%d",
				url.QueryEscape(program.ID), program.DefaultPriceCents),
		})
	}
	return c.JSON(fiber.Map{"programs": views})
}

// Success is the post-checkout landing page.
func Success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "confirmed",
		"message": "Your session is booked! A confirmation email with the launchpad link is on its way.",
	})
}

// Cancel is the abandoned-checkout landing page. The seat was never consumed.
func Cancel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "cancelled",
		"message": "Checkout was cancelled. Your spot was not reserved; you can pick a session again anytime.",
	})
}
