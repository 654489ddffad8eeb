package middleware

import (
	"context"
	"strings"

	"storefront/internal/config"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Path prefixes governed by the gate.
const (
	AdminPagePrefix = "/admin"
	AdminAPIPrefix  = "/api/admin"
	LoginPagePath   = "/login"
	AdminLoginPath  = "/admin/login"
)

// RouteClass is the gate's per-request classification, derived from the
// URL path. It is computed, never stored.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteAdminPage
	RouteAdminAPI
	RouteLoginPage
)

// ClassifyRoute derives the route class from a request path.
// The admin API prefix is checked before the admin page prefix so that
// /api/admin/* never falls through to page semantics.
func ClassifyRoute(path string) RouteClass {
	switch {
	case path == LoginPagePath:
		return RouteLoginPage
	case path == AdminAPIPrefix || strings.HasPrefix(path, AdminAPIPrefix+"/"):
		return RouteAdminAPI
	case path == AdminPagePrefix || strings.HasPrefix(path, AdminPagePrefix+"/"):
		return RouteAdminPage
	default:
		return RoutePublic
	}
}

// Gate returns the request router/gate middleware. It runs first in the
// chain and produces one of four outcomes per request:
//
//   - internal rewrite: requests on the reserved admin host label are
//     re-routed to the /admin path prefix (query preserved) and
//     reprocessed from the top of the router;
//   - redirect: an admin hitting the public login page goes to the admin
//     login page; an unauthenticated visitor on an admin page goes to /;
//   - deny: admin API calls without an admin credential get a 401 JSON body;
//   - pass-through: everything else.
//
// The session credential is decoded exactly once here. A credential that
// fails to decode is treated identically to an absent one.
func Gate(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// Alternate-host rewrite. The rewritten request restarts routing
		// and passes through the gate again with the new path.
		if hostLeadingLabel(c.Hostname()) == cfg.AdminHostLabel &&
			!strings.HasPrefix(path, AdminPagePrefix) {
			c.Path(AdminPagePrefix + path)
			return c.RestartRouting()
		}

		var claims *SessionClaims
		if raw := CredentialFromRequest(c); raw != "" {
			if parsed, err := ParseSession(cfg.JWTSecret, raw); err == nil {
				claims = parsed
			}
			// Decode errors degrade to "no role"; never fail open.
		}

		switch ClassifyRoute(path) {
		case RouteLoginPage:
			if claims != nil && claims.Role == models.RoleAdmin {
				return c.Redirect(withQuery(c, AdminLoginPath), fiber.StatusFound)
			}

		case RouteAdminPage:
			// The admin login page itself is always reachable.
			if path != AdminLoginPath {
				if claims == nil || claims.Role != models.RoleAdmin {
					return c.Redirect("/", fiber.StatusFound)
				}
			}

		case RouteAdminAPI:
			if claims == nil || claims.Role != models.RoleAdmin {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Unauthorized",
				})
			}
		}

		if claims != nil {
			storeClaims(c, claims)
		}
		return c.Next()
	}
}

// storeClaims places the decoded identity into fiber locals and the
// request context so handlers and the context-aware logger can read it
// without touching the token again.
func storeClaims(c *fiber.Ctx, claims *SessionClaims) {
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)

	ctx := context.WithValue(c.UserContext(), UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	c.SetUserContext(ctx)
}

// hostLeadingLabel returns the first dot-separated label of a host name,
// with any port already stripped by fiber's Hostname.
func hostLeadingLabel(host string) string {
	if i := strings.IndexByte(host, '.'); i >= 0 {
		return host[:i]
	}
	return ""
}

// withQuery appends the original query string to a redirect target.
func withQuery(c *fiber.Ctx, target string) string {
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		return target + "?" + qs
	}
	return target
}
