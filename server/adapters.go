package server

import (
	"time"

	"github.com/umputun/leadfeed/pkg/config"
)

// ConfigAdapter adapts config.Config to server.ConfigProvider interface
type ConfigAdapter struct {
	*config.Config
}

// GetServerConfig returns listen address and request timeout
func (c *ConfigAdapter) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the public url used in generated links
func (c *ConfigAdapter) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetMinScore returns the default sales intelligence threshold
func (c *ConfigAdapter) GetMinScore() int {
	return c.Query.MinScore
}
