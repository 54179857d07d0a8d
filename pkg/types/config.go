package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Session cookie
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"pawhaven_session"`
	SessionMaxAgeSec  int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Pet image storage
	ImageBucket    string `envconfig:"IMAGE_BUCKET" default:"pawhaven-pet-images"`
	ImageKeyPrefix string `envconfig:"IMAGE_KEY_PREFIX" default:"pets"`
	ImageBaseURL   string `envconfig:"IMAGE_BASE_URL"`
}
