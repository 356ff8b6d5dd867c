package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps a viper instance with our settings layered as, in order of
// precedence: command-line flags, GRAPHPOET_* environment variables, an
// optional graphpoet.yml config file, and defaults.
type Config struct {
	v *viper.Viper
	// positional arguments left over after flag parsing
	args []string
}

func (c *Config) Load(args []string) error {
	c.v = viper.New()

	fs := pflag.NewFlagSet("graphpoet", pflag.ContinueOnError)
	// Stop flag parsing at the first positional argument so one-shot
	// shell commands can carry their own -options.
	fs.SetInterspersed(false)
	fs.Bool("debug", false, "debug logging, plus internal graph consistency checks")
	fs.String("corpus-path", "./data/corpora", "directory to resolve relative corpus filenames against")
	fs.String("history-file", "/tmp/graphpoet_history", "readline history file for the shell")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}

	c.v.SetEnvPrefix("graphpoet")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.v.SetConfigName("graphpoet")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(".")
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// AdjustRelativePaths rebases relative path settings onto basePath. We call
// this with the executable's directory so the shell finds its data files no
// matter where it is launched from.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{"corpus-path"} {
		p := c.v.GetString(key)
		if p != "" && !filepath.IsAbs(p) {
			c.v.Set(key, filepath.Join(basePath, p))
		}
	}
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}
