package block

import "github.com/arloliu/bytecol/internal/options"

type loadConfig struct {
	verifyChecksum bool
}

// LoadOption configures Load.
type LoadOption = options.Option[*loadConfig]

// WithChecksum enables or disables verification of the checksum trailer.
// Verification is enabled by default.
func WithChecksum(enabled bool) LoadOption {
	return options.NoError(func(c *loadConfig) {
		c.verifyChecksum = enabled
	})
}
