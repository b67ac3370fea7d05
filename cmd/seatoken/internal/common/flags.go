package common

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configKeyAnnotation = "seatoken_config_key"

// BindFlag marks the flag as an override of the config key.
// The binding happens in BindFlags, so only the command being executed overrides the config.
func BindFlag(cmd *cobra.Command, flag, key string) {
	if err := cmd.Flags().SetAnnotation(flag, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[configKeyAnnotation]
		if !ok || err != nil {
			return
		}
		err = v.BindPFlag(keys[0], f)
	})
	return err
}
