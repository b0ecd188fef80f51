package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigWidth), 7)
	is.Equal(cfg.GetInt(ConfigHeight), 4)
	is.True(cfg.GetInt(ConfigThreads) >= 1)
	is.Equal(cfg.GetBool(ConfigDebug), false)
	is.Equal(cfg.GetFloat64(ConfigTTableMemFraction), 0.25)
}

func TestLoadFlagsAndArgs(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--width", "5", "--debug", "solve", "3", "3"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigWidth), 5)
	is.Equal(cfg.GetInt(ConfigHeight), 4)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.Args(), []string{"solve", "3", "3"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("CHOMP_HEIGHT", "6")
	t.Setenv("CHOMP_TTABLE_MEM_FRACTION", "0.5")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetInt(ConfigHeight), 6)
	is.Equal(cfg.GetFloat64(ConfigTTableMemFraction), 0.5)
	is.Equal(len(cfg.Args()), 0)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--width", "wide"})
	is.True(err != nil)
}
