package middleware

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/authorizer-go"
	"github.com/localnerve/nftune-store/internal/config"
	"github.com/localnerve/nftune-store/internal/logger"
	"github.com/localnerve/nftune-store/internal/utils"
)

// AuthorizerSessions validates session cookies against an Authorizer
// service. The client is created on the first request, since the redirect
// URL is taken from the request's protocol and host. A failed attempt is
// retried on the next request.
type AuthorizerSessions struct {
	cfg   *config.Config
	roles []string

	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

// NewAuthorizerSessions returns a validator accepting sessions that hold
// any of roles. No roles means any valid session.
func NewAuthorizerSessions(cfg *config.Config, roles ...string) *AuthorizerSessions {
	return &AuthorizerSessions{cfg: cfg, roles: roles}
}

func (a *AuthorizerSessions) init(protocol, host string) (*authorizer.AuthorizerClient, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	if err := utils.PingAuthorizer(a.cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	redirectURL := fmt.Sprintf("%s://%s", protocol, host)
	logger.Info("initializing authorizer client",
		logger.String("authorizerURL", a.cfg.AuthzURL),
		logger.String("clientID", a.cfg.AuthzClientID),
		logger.String("redirectURL", redirectURL),
	)

	client, err := authorizer.NewAuthorizerClient(a.cfg.AuthzClientID, a.cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	a.client = client
	return client, nil
}

// ValidateSession implements SessionValidator.
func (a *AuthorizerSessions) ValidateSession(c *fiber.Ctx, cookie string) (string, error) {
	client, err := a.init(c.Protocol(), c.Hostname())
	if err != nil {
		return "", err
	}

	var roles []*string
	for i := range a.roles {
		roles = append(roles, &a.roles[i])
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  roles,
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid || res.User == nil {
		return "", fmt.Errorf("session is not valid")
	}

	return res.User.ID, nil
}
