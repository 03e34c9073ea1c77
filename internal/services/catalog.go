package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/Geo222222/serenity-s-keys/internal/models"
)

const fallbackPriceCents int64 = 8900

// programs is the static marketing catalog. Ids double as upstream course
// identifiers.
var programs = []models.Program{
	{
		ID:                "group:3-5",
		Name:              "Mini Movers Ages 3-5",
		Blurb:             "Sensory-rich 30 minute sessions to spark curiosity and healthy habits.",
		DefaultPriceCents: 3500,
	},
	{
		ID:                "group:6-8",
		Name:              "Group Ages 6-8",
		Blurb:             "Foundations and fun race challenges for younger typists.",
		DefaultPriceCents: 8900,
	},
	{
		ID:                "group:9-11",
		Name:              "Group Ages 9-11",
		Blurb:             "Skill building and accuracy drills with peers.",
		DefaultPriceCents: 8900,
	},
	{
		ID:                "group:12-14",
		Name:              "Group Ages 12-14",
		Blurb:             "Speed, ergonomics, and productivity shortcuts.",
		DefaultPriceCents: 8900,
	},
	{
		ID:                "private:all",
		Name:              "Private Coaching",
		Blurb:             "One-on-one remote coaching tailored to the student.",
		DefaultPriceCents: 12900,
	},
}

// Catalog serves the program list and price suggestions.
type Catalog struct{}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) Programs() []models.Program {
	out := make([]models.Program, len(programs))
	copy(out, programs)
	return out
}

func (c *Catalog) ProgramByID(id string) (models.Program, bool) {
	for _, program := range programs {
		if program.ID == id {
			return program, true
		}
	}
	return models.Program{}, false
}

// SuggestedPrice resolves the pre-seeded price for a course: the referring
// page's price query param when it is a positive number, else the program
// default, else the portal-wide fallback. Fractional values round to cents,
// same as the profile form's price rule.
func (c *Catalog) SuggestedPrice(course, rawPrice string) int64 {
	if raw := strings.TrimSpace(rawPrice); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil && price > 0 && !math.IsInf(price, 0) {
			return int64(math.Round(price))
		}
	}
	if program, ok := c.ProgramByID(course); ok {
		return program.DefaultPriceCents
	}
	return fallbackPriceCents
}
