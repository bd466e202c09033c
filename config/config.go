package config

// AppConfig holds the application configuration loaded at startup.
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string
}

// GetBearerToken returns the static API bearer token from the config.
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
