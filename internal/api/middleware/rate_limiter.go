package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// EndpointRateLimit overrides the default limit for one path.
type EndpointRateLimit struct {
	Requests int
	Window   time.Duration
}

// RateLimiterConfig holds configuration for rate limiting
type RateLimiterConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Key generator function - returns the client key from context
	KeyGenerator func(c *fiber.Ctx) string
	// PerEndpoint overrides the default limit for specific paths
	PerEndpoint map[string]EndpointRateLimit
}

// DefaultRateLimiterConfig returns default configuration. Clients are keyed
// by their authenticated API key ID.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Max:    1000,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			keyID, ok := c.Locals(LocalAPIKeyID).(uuid.UUID)
			if !ok {
				return "anonymous"
			}
			return keyID.String()
		},
	}
}

// SubmissionRateLimits are the per-endpoint overrides for the verification
// API. Document submission triggers OCR, so it gets a much tighter budget
// than read endpoints.
func SubmissionRateLimits() map[string]EndpointRateLimit {
	return map[string]EndpointRateLimit{
		"/v1/verifications": {Requests: 30, Window: time.Minute},
	}
}

// clientLimiter tracks rate limiting state for one client+endpoint bucket
type clientLimiter struct {
	count      int
	windowEnd  time.Time
	lastAccess time.Time
}

// RateLimiter implements per-client rate limiting with optional per-endpoint
// overrides
type RateLimiter struct {
	config   RateLimiterConfig
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	done     chan struct{}
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Max == 0 {
		config.Max = 1000
	}
	if config.Window == 0 {
		config.Window = time.Minute
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = DefaultRateLimiterConfig().KeyGenerator
	}

	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		done:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// Stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// limitFor resolves the limit that applies to a path.
func (rl *RateLimiter) limitFor(path string) (int, time.Duration) {
	if override, ok := rl.config.PerEndpoint[path]; ok {
		return override.Requests, override.Window
	}
	return rl.config.Max, rl.config.Window
}

// Handler returns the Fiber middleware handler
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := rl.config.KeyGenerator(c)
		if key == "" || key == "anonymous" {
			// Allow anonymous requests to proceed (they'll fail at auth anyway)
			return c.Next()
		}

		max, window := rl.limitFor(c.Path())

		// Separate counters per endpoint so a burst of status polls cannot
		// starve the submission budget and vice versa.
		bucket := key + "|" + c.Path()

		now := time.Now()

		rl.mu.Lock()
		limiter, exists := rl.limiters[bucket]

		if !exists || now.After(limiter.windowEnd) {
			// Create new window
			newLimiter := &clientLimiter{
				count:      1,
				windowEnd:  now.Add(window),
				lastAccess: now,
			}
			rl.limiters[bucket] = newLimiter
			rl.mu.Unlock()

			c.Set("X-RateLimit-Limit", intToString(max))
			c.Set("X-RateLimit-Remaining", intToString(max-1))
			c.Set("X-RateLimit-Reset", newLimiter.windowEnd.Format(time.RFC3339))

			return c.Next()
		}

		limiter.count++
		limiter.lastAccess = now
		count := limiter.count
		remaining := max - count
		windowEnd := limiter.windowEnd
		rl.mu.Unlock()

		c.Set("X-RateLimit-Limit", intToString(max))
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", intToString(remaining))
		c.Set("X-RateLimit-Reset", windowEnd.Format(time.RFC3339))

		if count > max {
			c.Set("Retry-After", intToString(int(time.Until(windowEnd).Seconds())))
			return domain.ErrRateLimitExceeded
		}

		return c.Next()
	}
}

// cleanup removes stale entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, limiter := range rl.limiters {
				// Remove entries that haven't been accessed in 2 windows
				if now.Sub(limiter.lastAccess) > 2*rl.config.Window {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// intToString converts int to string without fmt
func intToString(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}

	// Reverse
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}
