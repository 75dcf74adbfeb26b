package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: passwords are never configured, they are prompted at runtime - use ReadPassword()
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	NodeURL         string        `envconfig:"WARTHOG_NODE_URL" default:"https://node.wartscan.io"`
	Nodes           []string      `envconfig:"WARTHOG_NODES" default:"https://warthognode.duckdns.org,http://51.75.21.134:3001,http://62.72.44.89:3001,http://dev.node-s.com:3001,https://node.wartscan.io"`
	WalletStorePath string        `envconfig:"WALLET_STORE_PATH" default:"./data/wallet"`
	ScryptN         int           `envconfig:"SCRYPT_N" default:"262144"`
	ScryptR         int           `envconfig:"SCRYPT_R" default:"8"`
	ScryptP         int           `envconfig:"SCRYPT_P" default:"1"`
	NodeTimeout     time.Duration `envconfig:"NODE_TIMEOUT" default:"15s"`
	NodeRateLimit   float64       `envconfig:"NODE_RATE_LIMIT" default:"5"`
	NodeInsecureTLS bool          `envconfig:"NODE_INSECURE_TLS" default:"false"`
	LogPath         string        `envconfig:"LOG_PATH"`
	LogMaxAgeHours  int           `envconfig:"LOG_MAX_AGE_HOURS" default:"168"`
	LogRotateHours  int           `envconfig:"LOG_ROTATE_HOURS" default:"24"`
	Debug           bool          `envconfig:"DEBUG" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func (c *Config) validate() error {
	// scrypt wants a power of two above 1
	if c.ScryptN < 2 || c.ScryptN&(c.ScryptN-1) != 0 {
		return fmt.Errorf("SCRYPT_N must be a power of two, got %d", c.ScryptN)
	}
	if c.ScryptR < 1 || c.ScryptP < 1 {
		return errors.New("SCRYPT_R and SCRYPT_P must be positive")
	}

	for i, n := range c.Nodes {
		c.Nodes[i] = strings.TrimRight(strings.TrimSpace(n), "/")
	}
	c.NodeURL = strings.TrimRight(strings.TrimSpace(c.NodeURL), "/")
	if c.NodeURL == "" {
		return errors.New("WARTHOG_NODE_URL cannot be empty")
	}
	if !slices.Contains(c.Nodes, c.NodeURL) {
		c.Nodes = append(c.Nodes, c.NodeURL)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetNodeURL returns the node used at startup
func GetNodeURL() string {
	return Get().NodeURL
}

// GetNodes returns the nodes a user may switch between
func GetNodes() []string {
	return slices.Clone(Get().Nodes)
}

// GetWalletStorePath returns path to the wallet store directory
func GetWalletStorePath() string {
	return Get().WalletStorePath
}

// ReadPassword prompts for a password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use for security.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// ReadNewPassword prompts twice and fails when the entries differ
func ReadNewPassword(prompt string) ([]byte, error) {
	first, err := ReadPassword(prompt)
	if err != nil {
		return nil, err
	}
	second, err := ReadPassword("Repeat password: ")
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)

	if string(first) != string(second) {
		clear(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}
