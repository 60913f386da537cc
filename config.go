package jolt

import "github.com/spf13/pflag"

// Flags holds CLI flag names for encoder configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	AlwaysSafe string
	SortKeys   string
}

// Config holds CLI flag values for encoder configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewEncoder] to create an [Encoder].
type Config struct {
	Flags      Flags
	AlwaysSafe bool
	SortKeys   bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		AlwaysSafe: "always-safe",
		SortKeys:   "sort-keys",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds encoder flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.AlwaysSafe, c.Flags.AlwaysSafe, false,
		"force sigil form for every int, float, and map")
	flags.BoolVar(&c.SortKeys, c.Flags.SortKeys, false,
		"emit object entries in ascending key order")
}

// NewEncoder creates an [Encoder] using this [Config].
func (c *Config) NewEncoder() *Encoder {
	return NewEncoder(
		WithAlwaysSafe(c.AlwaysSafe),
		WithSortKeys(c.SortKeys),
	)
}
