package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.ShareLink.DefaultTTL <= 0 {
		return fmt.Errorf("sharelink.default_ttl must be > 0 (got %v)", c.ShareLink.DefaultTTL)
	}

	if c.Outbox.Retention <= 0 {
		return fmt.Errorf("outbox.retention must be > 0 (got %v)", c.Outbox.Retention)
	}

	if c.RateLimit.ResolveMaxRequests <= 0 {
		return fmt.Errorf("ratelimit.resolve_max_requests must be > 0 (got %d)", c.RateLimit.ResolveMaxRequests)
	}
	if c.RateLimit.ResolveWindow <= 0 {
		return fmt.Errorf("ratelimit.resolve_window must be > 0 (got %v)", c.RateLimit.ResolveWindow)
	}

	return nil
}
