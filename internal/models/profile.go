package models

// Profile is the parent/student identity payload for the upsert endpoint.
// When StudentID is nil the upstream API creates a student and returns the
// assigned id; callers must carry that id forward so a resumed checkout
// rebinds to the same student.
type Profile struct {
	ParentName     string  `json:"parent_name"`
	ParentEmail    string  `json:"parent_email"`
	ParentPhone    *string `json:"parent_phone,omitempty"`
	StudentID      *int64  `json:"student_id,omitempty"`
	StudentName    string  `json:"student_name"`
	TypingUsername *string `json:"typing_username,omitempty"`
}

// ProfileResult is the upsert response.
type ProfileResult struct {
	ParentID  int64 `json:"parent_id"`
	StudentID int64 `json:"student_id"`
}
