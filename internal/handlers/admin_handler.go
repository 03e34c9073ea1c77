package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/api"
	"github.com/Geo222222/serenity-s-keys/internal/middleware"
	"github.com/Geo222222/serenity-s-keys/internal/models"
	"github.com/Geo222222/serenity-s-keys/internal/services"
)

type adminOps interface {
	Login(ctx context.Context, password string) (services.Credential, error)
	CreateSession(ctx context.Context, cred services.Credential, draft models.SessionDraft) (*api.RawResult, error)
	UpcomingSessions(ctx context.Context, cred services.Credential) (*api.RawResult, error)
	ImportCSV(ctx context.Context, cred services.Credential, filename string, file io.Reader) (*api.RawResult, error)
}

type AdminHandler struct {
	admin        adminOps
	passwordHint string
}

// NewAdminHandler wires the admin console. passwordHint is empty outside
// development builds.
func NewAdminHandler(admin adminOps, passwordHint string) *AdminHandler {
	return &AdminHandler{admin: admin, passwordHint: passwordHint}
}

type adminLoginRequest struct {
	Password string `json:"password" form:"password"`
}

// Overview tells the console whether a stored credential is still usable and,
// in development, shows the password hint.
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	view := fiber.Map{
		"authenticated": middleware.CredentialFromCtx(c).Valid(time.Now()),
	}
	if h.passwordHint != "" {
		view["password_hint"] = h.passwordHint
	}
	return c.JSON(view)
}

// Login exchanges the staff password for an admin token and stores it in the
// portal cookie for reuse until sign-out.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	cred, err := h.admin.Login(c.Context(), req.Password)
	if err != nil {
		return respondError(c, err)
	}

	expires := cred.ExpiresAt
	if expires.IsZero() {
		expires = time.Now().Add(time.Hour)
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    cred.Token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"token": cred.Token, "expires_at": cred.ExpiresAt})
}

// Logout clears the stored credential. Subsequent admin calls carry no token.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"status": "signed_out"})
}

// CreateSession submits an ad-hoc session draft. The upstream response is
// relayed verbatim, success or error undifferentiated.
func (h *AdminHandler) CreateSession(c *fiber.Ctx) error {
	var draft models.SessionDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	raw, err := h.admin.CreateSession(c.Context(), middleware.CredentialFromCtx(c), draft)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(raw.Status).SendString(raw.Body)
}

// Sessions lists upcoming sessions for the console.
func (h *AdminHandler) Sessions(c *fiber.Ctx) error {
	raw, err := h.admin.UpcomingSessions(c.Context(), middleware.CredentialFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(raw.Status).Type("json").SendString(raw.Body)
}

// ImportCSV forwards one Typing.com CSV export upstream and relays the raw
// response text.
func (h *AdminHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Choose a CSV file to upload."})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unable to read the uploaded file."})
	}
	defer file.Close()

	raw, err := h.admin.ImportCSV(c.Context(), middleware.CredentialFromCtx(c), fileHeader.Filename, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(raw.Status).SendString(raw.Body)
}
