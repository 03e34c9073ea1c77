package models

// Program is a marketing catalog entry. The catalog is static portal data;
// programs map to upstream course identifiers.
type Program struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Blurb             string `json:"blurb"`
	DefaultPriceCents int64  `json:"default_price_cents"`
}
