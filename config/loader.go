package config

import (
	"errors"
	"strings"
	"time"
)

// LoaderConfig controls how T1250 files are loaded.
type LoaderConfig struct {
	// CommsDir receives the zero-byte comms markers.
	CommsDir string `env:"COMMS_DIR"           envDefault:"/var/spool/t1250/comms"`
	// DryRun rolls back every file; also set by the -dry-run flag.
	DryRun            bool          `env:"DRY_RUN"             envDefault:"false"`
	BusinessUnitsFile string        `env:"BUSINESS_UNITS_FILE" envDefault:"config/business_units.yaml"`
	AgentCacheTTL     time.Duration `env:"AGENT_CACHE_TTL"     envDefault:"15m"`
	// FileEncoding is latin1 or utf8.
	FileEncoding string `env:"FILE_ENCODING" envDefault:"latin1"`
}

// Sanitize normalises paths and the encoding name.
func (c *LoaderConfig) Sanitize() {
	c.CommsDir = strings.TrimSpace(c.CommsDir)
	c.BusinessUnitsFile = strings.TrimSpace(c.BusinessUnitsFile)
	c.FileEncoding = strings.ToLower(strings.TrimSpace(c.FileEncoding))
	if c.FileEncoding == "" {
		c.FileEncoding = "latin1"
	}
	if c.AgentCacheTTL < 0 {
		c.AgentCacheTTL = 0
	}
}

// Validate reports missing loader settings.
func (c *LoaderConfig) Validate() error {
	var errs []error
	if c.CommsDir == "" {
		errs = append(errs, errors.New("LOADER_COMMS_DIR is required"))
	}
	if c.BusinessUnitsFile == "" {
		errs = append(errs, errors.New("LOADER_BUSINESS_UNITS_FILE is required"))
	}
	return errors.Join(errs...)
}
