package diff

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for diff configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	AnyOrderArrays       string
	AnyOrderObjects      string
	AnyAdditionalArrays  string
	AnyAdditionalObjects string
	Numbers              string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for diff configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewMode] to build a [Mode] for
// [Compare].
type Config struct {
	AnyOrderArrays       bool
	AnyOrderObjects      bool
	AnyAdditionalArrays  bool
	AnyAdditionalObjects bool
	Numbers              string
	Flags                Flags
}

// NewConfig returns a new [Config] with default flag names and zero-value
// fields. Numbers starts empty, which [Config.NewMode] rejects; it becomes
// "textual" (fully strict together with the other zero values) once
// [Config.RegisterFlags] registers its default, or when set directly.
func NewConfig() *Config {
	f := Flags{
		AnyOrderArrays:       "any-order-arrays",
		AnyOrderObjects:      "any-order-objects",
		AnyAdditionalArrays:  "any-additional-arrays",
		AnyAdditionalObjects: "any-additional-objects",
		Numbers:              "numbers",
	}

	return f.NewConfig()
}

// RegisterFlags adds diff-mode flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.AnyOrderArrays, c.Flags.AnyOrderArrays, false,
		"ignore array element order")
	flags.BoolVar(&c.AnyOrderObjects, c.Flags.AnyOrderObjects, false,
		"ignore object member order")
	flags.BoolVar(&c.AnyAdditionalArrays, c.Flags.AnyAdditionalArrays, false,
		"allow extra array elements on the actual side")
	flags.BoolVar(&c.AnyAdditionalObjects, c.Flags.AnyAdditionalObjects, false,
		"allow extra object members on the actual side")
	flags.StringVar(&c.Numbers, c.Flags.Numbers, "textual",
		fmt.Sprintf("number comparison, one of: %s", GetAllNumberModeStrings()))
}

// RegisterCompletions registers shell completions for diff flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Numbers,
		cobra.FixedCompletions(GetAllNumberModeStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering numbers completion: %w", err)
	}

	return nil
}

// GetAllNumberModeStrings returns every valid string a --numbers flag
// accepts.
func GetAllNumberModeStrings() []string {
	return []string{"textual", "numeric"}
}

// ParseNumberMode parses one of [GetAllNumberModeStrings] into a
// [NumberMode].
func ParseNumberMode(s string) (NumberMode, error) {
	switch s {
	case "textual":
		return Textual, nil
	case "numeric":
		return Numeric, nil
	default:
		return 0, fmt.Errorf("unknown number mode %q, must be one of: %s", s, GetAllNumberModeStrings())
	}
}

// NewMode builds a [Mode] from the configured flag values.
func (c *Config) NewMode() (Mode, error) {
	numbers, err := ParseNumberMode(c.Numbers)
	if err != nil {
		return Mode{}, err
	}

	return Mode{
		Arrays:  OrderPolicy{AnyOrder: c.AnyOrderArrays, AnyAdditional: c.AnyAdditionalArrays},
		Objects: OrderPolicy{AnyOrder: c.AnyOrderObjects, AnyAdditional: c.AnyAdditionalObjects},
		Numbers: numbers,
	}, nil
}
