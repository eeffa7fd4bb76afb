package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
	"github.com/matzehuels/mindmup/pkg/idea"
)

// configFile is the file name looked up in the configuration directory.
const configFile = "config.toml"

// Config holds settings read from config.toml. Command-line flags take
// precedence over file values.
type Config struct {
	LinkColor     string `toml:"link_color"`
	LineStyle     string `toml:"line_style"`
	AutoIncrement bool   `toml:"auto_increment"`
	Lenient       bool   `toml:"lenient"`
	StoreDir      string `toml:"store_dir"`
	RedisAddr     string `toml:"redis_addr"`
	CacheDir      string `toml:"cache_dir"`
	Listen        string `toml:"listen"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		LinkColor:     idea.DefaultLinkColor,
		LineStyle:     idea.DefaultLinkLineStyle,
		AutoIncrement: true,
		Listen:        "127.0.0.1:8080",
	}
}

// LoadConfig reads path on top of the defaults. An empty path selects the
// default location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, apperrors.New(apperrors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if err := apperrors.ValidateColor(cfg.LinkColor); err != nil {
		return err
	}
	return apperrors.ValidateLineStyle(cfg.LineStyle)
}

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				printDetail("# %s", c.configPath)
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.Config)
		},
	}
}
