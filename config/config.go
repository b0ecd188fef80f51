package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigWidth             = "width"
	ConfigHeight            = "height"
	ConfigThreads           = "threads"
	ConfigDebug             = "debug"
	ConfigCPUProfile        = "cpu-profile"
	ConfigTTableMemFraction = "ttable-mem-fraction"
)

type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigWidth, 7)
	v.SetDefault(ConfigHeight, 4)
	v.SetDefault(ConfigThreads, max(1, runtime.NumCPU()-1))
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigTTableMemFraction, 0.25)
}

// DefaultConfig has only the defaults. It doesn't look at the environment,
// the command line or any config file, so it is what tests should use.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load reads the configuration, in increasing order of precedence, from the
// defaults, a config.yaml in the working directory or in ~/.chomp, CHOMP_*
// environment variables, and flags in args. Whatever in args is not a flag
// is kept, and available from Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	c.AddConfigPath("$HOME/.chomp")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	c.SetEnvPrefix("chomp")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("chomp", pflag.ContinueOnError)
	fs.Int(ConfigWidth, c.GetInt(ConfigWidth), "width of a new board")
	fs.Int(ConfigHeight, c.GetInt(ConfigHeight), "height of a new board")
	fs.Int(ConfigThreads, c.GetInt(ConfigThreads), "how many boards to solve at once")
	fs.Bool(ConfigDebug, c.GetBool(ConfigDebug), "debug logging on")
	fs.String(ConfigCPUProfile, c.GetString(ConfigCPUProfile), "write a CPU profile here")
	fs.Float64(ConfigTTableMemFraction, c.GetFloat64(ConfigTTableMemFraction),
		"fraction of system memory the transposition table may preallocate")
	// Everything after the first non-flag argument is a shell command.
	fs.SetInterspersed(false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()
	return nil
}

// Args are the leftover, non-flag arguments given to Load.
func (c *Config) Args() []string {
	return c.args
}

// SanitizedSettings is every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
