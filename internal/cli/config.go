package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/mirrorcount/internal/mirrorcount"
)

// settings holds the resolved command options.
type settings struct {
	// Original is the original tree.
	Original string `mapstructure:"original"`
	// Preview is the preview tree.
	Preview string `mapstructure:"preview"`
	// Thumbnail is the thumbnail tree.
	Thumbnail string `mapstructure:"thumbnail"`
	// Output represents output format (table or json).
	Output string `mapstructure:"output"`
	// All indicates whether matching directories are listed too.
	All bool `mapstructure:"all"`
	// Strict indicates whether discrepancies fail the run.
	Strict bool `mapstructure:"strict"`
	// Debug indicates whether debug output is enabled.
	Debug bool `mapstructure:"debug"`
}

// roots returns the trees to compare.
func (s settings) roots() mirrorcount.Roots {
	return mirrorcount.Roots{
		Original:  s.Original,
		Preview:   s.Preview,
		Thumbnail: s.Thumbnail,
	}
}

// loadSettings merges flags with the optional YAML file at path.
// Flags changed on the command line win over the file, which wins over flag defaults.
func loadSettings(flags *pflag.FlagSet, path string) (settings, error) {
	v := viper.New()

	for _, name := range []string{"original", "preview", "thumbnail", "output", "all", "strict", "debug"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return settings{}, fmt.Errorf("binding flag %q: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decoding config: %w", err)
	}

	s.Output = strings.ToLower(s.Output)

	return s, nil
}
