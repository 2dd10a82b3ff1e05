// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: config.go — engine tunables
//
// Purpose:
//   - Two scalar knobs the batched lookup primitive needs: the prehash
//     window width and the largest query batch a single request may
//     submit. Everything else about the engine is computed, not
//     configured.
//
// Notes:
//   - Flag parsing uses github.com/spf13/pflag (the erigon example's
//     flag library) rather than hand-rolled os.Args scanning. A full
//     config-file loader (viper) was considered and rejected for two
//     scalars — see DESIGN.md.
// ─────────────────────────────────────────────────────────────────────────────

package config

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"callfwd/constants"
)

// Config holds the engine's tunable knobs. The zero value is invalid;
// use Load or New to obtain one with defaults applied. Defaults and
// bounds live in callfwd/constants, the single compile-time source for
// both this runtime layer and anything else that needs the same knobs
// (e.g. tests) without pulling in pflag.
type Config struct {
	PrefetchWindow int
	MaxQueryKeys   int
}

// New returns a Config populated with defaults.
func New() Config {
	return Config{
		PrefetchWindow: constants.DefaultPrefetchWindow,
		MaxQueryKeys:   constants.DefaultMaxQueryKeys,
	}
}

func clampPrefetchWindow(n int) int {
	switch {
	case n < constants.MinPrefetchWindow:
		return constants.MinPrefetchWindow
	case n > constants.MaxPrefetchWindow:
		return constants.MaxPrefetchWindow
	default:
		return n
	}
}

// RegisterFlags binds Config's fields to fs, defaulting to c's current
// values. Call before fs.Parse.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.PrefetchWindow, "prefetch-window", c.PrefetchWindow,
		"batched lookup prehash window width")
	fs.IntVar(&c.MaxQueryKeys, "max-query-keys", c.MaxQueryKeys,
		"largest number of phone numbers accepted in one batch query")
}

// ApplyEnv overrides fields already set via flags with CALLFWD_*
// environment variables, when present and well-formed. Flags parsed
// explicitly on the command line still win only if ApplyEnv is called
// before RegisterFlags+Parse in the caller's wiring order; cmd/callfwdd
// calls ApplyEnv first, so an explicit flag always overrides the
// environment, and the environment always overrides the built-in default.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv("CALLFWD_PREFETCH_WINDOW"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PrefetchWindow = clampPrefetchWindow(n)
		}
	}
	if v, ok := os.LookupEnv("CALLFWD_MAX_QUERY_KEYS"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxQueryKeys = n
		}
	}
}

// Load builds a Config from defaults, environment overrides, then flags
// parsed from args (not including the program name).
func Load(args []string) (Config, error) {
	c := New()
	c.ApplyEnv()

	fs := pflag.NewFlagSet("callfwdd", pflag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	c.PrefetchWindow = clampPrefetchWindow(c.PrefetchWindow)
	return c, nil
}
