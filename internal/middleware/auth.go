// auth.go
//
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of nftune-store.
// nftune-store is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// nftune-store is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with nftune-store.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/logger"
	"github.com/localnerve/nftune-store/internal/types"
)

// callerKey is the fiber Locals key holding the resolved caller.
const callerKey = "caller"

// SessionCookie is the cookie the Authorizer service issues.
const SessionCookie = "cookie_session"

// ErrNoCredentials means the request carried nothing to verify. Such
// requests proceed as the anonymous caller.
var ErrNoCredentials = errors.New("no credentials")

// IdentityResolver turns request credentials into a caller identity.
type IdentityResolver interface {
	Resolve(c *fiber.Ctx) (identity.Identity, error)
}

// Identify resolves the caller for every request. Missing credentials
// resolve to the anonymous caller; credentials that fail verification are
// rejected with 401.
func Identify(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := resolver.Resolve(c)
		switch {
		case errors.Is(err, ErrNoCredentials):
			caller = identity.Anonymous
		case err != nil:
			logger.Debug("credential verification failed",
				logger.String("path", c.Path()),
				logger.ErrorField(err),
			)
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Invalid credentials: %v", err),
				Type:    "authentication",
			}
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// Caller returns the identity resolved by Identify, or the anonymous
// caller when none was resolved.
func Caller(c *fiber.Ctx) identity.Identity {
	if id, ok := c.Locals(callerKey).(identity.Identity); ok && id != "" {
		return id
	}
	return identity.Anonymous
}

// JWTResolver verifies HS256 bearer tokens. The subject claim is the
// caller identity.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver returns a resolver verifying tokens signed with secret.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve implements IdentityResolver.
func (r *JWTResolver) Resolve(c *fiber.Ctx) (identity.Identity, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrNoCredentials
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errors.New("authorization header must be a bearer token")
	}

	token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if id := identity.Identity(sub); id.IsAnonymous() {
		return "", errors.New("token subject is empty")
	}
	return identity.Identity(sub), nil
}

// SessionValidator checks an Authorizer session cookie and returns the id
// of the user it belongs to.
type SessionValidator interface {
	ValidateSession(c *fiber.Ctx, cookie string) (string, error)
}

// SessionResolver resolves the caller from the Authorizer session cookie.
type SessionResolver struct {
	validator SessionValidator
}

// NewSessionResolver returns a resolver backed by validator.
func NewSessionResolver(validator SessionValidator) *SessionResolver {
	return &SessionResolver{validator: validator}
}

// Resolve implements IdentityResolver.
func (r *SessionResolver) Resolve(c *fiber.Ctx) (identity.Identity, error) {
	cookie := c.Cookies(SessionCookie)
	if cookie == "" {
		return "", ErrNoCredentials
	}

	userID, err := r.validator.ValidateSession(c, cookie)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", errors.New("session has no user")
	}
	return identity.Identity(userID), nil
}
