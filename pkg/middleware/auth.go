package middleware

import (
	"errors"

	"github.com/amirasaad/ledger/pkg/service/auth"
	"github.com/amirasaad/ledger/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SubjectKey is the c.Locals key holding the authenticated caller.
const SubjectKey = "subject"

// Protected requires a valid HS256 bearer token verified by authSvc. The
// parsed token is stored in c.Locals("user") and its subject under
// SubjectKey.
func Protected(authSvc *auth.Service) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:      authSvc.KeyFunc,
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals("user").(*jwt.Token)
			subject, err := authSvc.Subject(token)
			if err != nil {
				return jwtError(c, err)
			}
			c.Locals(SubjectKey, subject)
			return c.Next()
		},
	})
}

// Subject returns the authenticated caller, or "" on unprotected routes.
func Subject(c *fiber.Ctx) string {
	subject, _ := c.Locals(SubjectKey).(string)
	return subject
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing or malformed JWT", err.Error())
	}
	return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Invalid or expired JWT", err.Error())
}
