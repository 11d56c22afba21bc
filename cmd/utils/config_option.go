package utils

import (
	"fmt"
	"go/types"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigOptions is a group of ConfigOptions that can be for convenience
// initialized and set at the same time.
type ConfigOptions []*ConfigOption

// Init calls Init on each ConfigOption passing on the cobra.Command.
func (cos ConfigOptions) Init(cmd *cobra.Command) error {
	for _, co := range cos {
		err := co.Init(cmd)
		if err != nil {
			return err
		}
	}
	return nil
}

// Require calls Require on each ConfigOption.
func (cos ConfigOptions) Require() {
	for _, co := range cos {
		co.Require()
	}
}

// RequireE is like Require, but returns the error instead of Fatal.
func (cos ConfigOptions) RequireE() error {
	for _, co := range cos {
		if err := co.RequireE(); err != nil {
			return err
		}
	}
	return nil
}

// SetValues calls SetValue on each ConfigOption.
func (cos ConfigOptions) SetValues() error {
	for _, co := range cos {
		if err := co.SetValue(); err != nil {
			return err
		}
	}
	return nil
}

// ConfigOption is a complete description of a single command line option: its
// flag, the environment variable bound to it, and the config struct field the
// final value is written to.
type ConfigOption struct {
	Name           string                    // e.g. "wallet-api-base-url"
	EnvVar         string                    // e.g. "WALLET_API_BASE_URL". Defaults to the CONSTANT_CASE of Name
	OptType        types.BasicKind           // The type of this option, e.g. types.Bool
	FlagDefault    interface{}               // A default if no option is provided. Omit or set to `nil` if no default
	Required       bool                      // Whether this option must be set for the command to run
	Usage          string                    // Help text
	CustomSetValue func(*ConfigOption) error // Optional function for custom validation/transformation
	ConfigKey      interface{}               // Pointer to the final key in the linked options struct
	flag           *pflag.Flag               // The persistent flag that the config option is attached to
}

// Init binds the environment variable name and registers the persistent flag
// on the given command.
func (co *ConfigOption) Init(cmd *cobra.Command) error {
	// Unless overridden, default to a transform like wallet-api-base-url -> WALLET_API_BASE_URL
	if co.EnvVar == "" {
		co.EnvVar = strings.ReplaceAll(strings.ToUpper(co.Name), "-", "_")
	}
	return co.setFlag(cmd)
}

// Bind binds the config option to viper.
func (co *ConfigOption) Bind() {
	if err := viper.BindPFlag(co.Name, co.flag); err != nil {
		logrus.Fatalf("Error binding flag %q: %s", co.Name, err.Error())
	}
	if err := viper.BindEnv(co.Name, co.EnvVar); err != nil {
		logrus.Fatalf("Error binding env var %q: %s", co.EnvVar, err.Error())
	}
}

// Require checks that a required configuration option is not empty, exiting
// with a user error if it is.
func (co *ConfigOption) Require() {
	if err := co.RequireE(); err != nil {
		logrus.Fatal(err.Error())
	}
}

// RequireE is like Require, but returns the error instead of Fatal.
func (co *ConfigOption) RequireE() error {
	co.Bind()
	if co.Required && viper.GetString(co.Name) == "" {
		return fmt.Errorf("invalid config: %[1]s is missing. Please specify --%[1]s on the command line or set the %[2]s environment variable", co.Name, co.EnvVar)
	}
	return nil
}

// SetValue writes the resolved value into ConfigKey, going through
// CustomSetValue when one is provided.
func (co *ConfigOption) SetValue() error {
	co.Bind()

	if co.CustomSetValue != nil {
		if err := co.CustomSetValue(co); err != nil {
			return err
		}
	} else if co.ConfigKey != nil {
		co.setSimpleValue()
	}
	return nil
}

// UsageText returns the string to use for the usage text of the option: the
// Usage defined on the ConfigOption, along with the environment variable.
func (co *ConfigOption) UsageText() string {
	return fmt.Sprintf("%s (%s)", co.Usage, co.EnvVar)
}

// IsExplicitlySet returns true if and only if the given config option was set
// explicitly, either via a command line argument or via an environment variable.
func IsExplicitlySet(co *ConfigOption) bool {
	// co.flag.Changed is only true when the option was set via command line
	// parameter, so env var configuration needs its own lookup.
	return co.flag.Changed || len(os.Getenv(co.EnvVar)) > 0
}

// setSimpleValue sets the value of a ConfigOption's ConfigKey, based on the
// ConfigOption's OptType.
func (co *ConfigOption) setSimpleValue() {
	switch co.OptType {
	case types.String:
		*(co.ConfigKey.(*string)) = viper.GetString(co.Name)
	case types.Int:
		*(co.ConfigKey.(*int)) = viper.GetInt(co.Name)
	case types.Bool:
		*(co.ConfigKey.(*bool)) = viper.GetBool(co.Name)
	case types.Float64:
		*(co.ConfigKey.(*float64)) = viper.GetFloat64(co.Name)
	}
}

// setFlag registers the pflag matching the ConfigOption's OptType.
func (co *ConfigOption) setFlag(cmd *cobra.Command) error {
	switch co.OptType {
	case types.String:
		// Some value is always required for pflags, so default to an empty string
		if co.FlagDefault == nil {
			co.FlagDefault = ""
		}
		cmd.PersistentFlags().String(co.Name, co.FlagDefault.(string), co.UsageText())
	case types.Int:
		cmd.PersistentFlags().Int(co.Name, co.FlagDefault.(int), co.UsageText())
	case types.Bool:
		cmd.PersistentFlags().Bool(co.Name, co.FlagDefault.(bool), co.UsageText())
	case types.Float64:
		cmd.PersistentFlags().Float64(co.Name, co.FlagDefault.(float64), co.UsageText())
	default:
		return fmt.Errorf("config option %q has an unsupported OptType %v", co.Name, co.OptType)
	}

	co.flag = cmd.PersistentFlags().Lookup(co.Name)

	return nil
}
