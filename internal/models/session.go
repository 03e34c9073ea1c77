package models

import "time"

// Session is a scheduled bookable class instance as reported by the
// Serenity's Keys API. This service only reads snapshots; seat counts are
// mutated upstream as enrollments are consumed.
type Session struct {
	ID             int64     `json:"id"`
	Course         string    `json:"course"`
	StartTS        time.Time `json:"start_ts"`
	EndTS          time.Time `json:"end_ts"`
	Mode           string    `json:"mode"`
	Capacity       int       `json:"capacity"`
	Location       string    `json:"location"`
	MeetLink       *string   `json:"meet_link"`
	Status         string    `json:"status"`
	SeatsAvailable int       `json:"seats_available"`
}

// Bookable reports whether the portal should offer a checkout action for the
// session. Booking is only permitted while the session is scheduled and has
// seats left.
func (s Session) Bookable() bool {
	return s.SeatsAvailable > 0 && s.Status == "scheduled"
}

// SessionDraft is the admin payload for creating a new session upstream.
// Course, start, and end are required; mode and location default to
// "remote" and "Google Meet".
type SessionDraft struct {
	Course   string `json:"course"`
	StartTS  string `json:"start_ts"`
	EndTS    string `json:"end_ts"`
	Capacity int    `json:"capacity"`
	Mode     string `json:"mode"`
	Location string `json:"location"`
}
