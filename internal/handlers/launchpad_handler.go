package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/models"
	"github.com/Geo222222/serenity-s-keys/pkg/utils"
)

const (
	placeholderMeetLink = "https://meet.google.com/dev-placeholder"
	typingLoginURL      = "https://www.typing.com/student/login"
	typingLessonsURL    = "https://www.typing.com/student/lessons"
)

type sessionDetailAPI interface {
	GetSession(ctx context.Context, sessionID int64) (*models.Session, error)
}

// LaunchpadHandler serves the post-booking page aggregating join links for a
// session/student pair.
type LaunchpadHandler struct {
	api sessionDetailAPI
}

func NewLaunchpadHandler(api sessionDetailAPI) *LaunchpadHandler {
	return &LaunchpadHandler{api: api}
}

func (h *LaunchpadHandler) Show(c *fiber.Ctx) error {
	sessionID, _ := strconv.ParseInt(c.Query("session_id"), 10, 64)
	if sessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Missing session details. Please use the link from your confirmation email."})
	}
	studentID, _ := strconv.ParseInt(c.Query("student_id"), 10, 64)

	session, err := h.api.GetSession(c.Context(), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	meetLink := placeholderMeetLink
	if session.MeetLink != nil && *session.MeetLink != "" {
		meetLink = *session.MeetLink
	}

	view := fiber.Map{
		"course":             session.Course,
		"when":               utils.FormatSessionStart(session.StartTS),
		"meet_link":          meetLink,
		"typing_login_url":   typingLoginURL,
		"typing_lessons_url": typingLessonsURL,
	}
	if studentID > 0 {
		view["student_id"] = studentID
	}
	return c.JSON(view)
}
