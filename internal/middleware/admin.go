package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/services"
)

// AdminCookieName is where the portal keeps the admin token between visits.
// Sign-out clears it.
const AdminCookieName = "sk_admin_token"

const adminTokenHeader = "X-Admin-Token"

const credentialLocal = "admin_credential"

// ResolveAdmin extracts the admin credential, when one is presented, from the
// X-Admin-Token header or the portal cookie and stores it on the request.
// Requests without a credential pass through; enforcement is per-route.
func ResolveAdmin(admin *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(adminTokenHeader)
		if token == "" {
			token = c.Cookies(AdminCookieName)
		}
		if token != "" {
			c.Locals(credentialLocal, admin.CredentialFromToken(token, time.Time{}))
		}
		return c.Next()
	}
}

// AdminRequired rejects requests that lack a usable admin credential before
// any upstream call is attempted.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CredentialFromCtx(c).Valid(time.Now()) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Log in as admin first."})
		}
		return c.Next()
	}
}

// CredentialFromCtx returns the credential resolved for this request, which
// may be absent.
func CredentialFromCtx(c *fiber.Ctx) services.Credential {
	cred, ok := c.Locals(credentialLocal).(services.Credential)
	if !ok {
		return services.Credential{}
	}
	return cred
}
