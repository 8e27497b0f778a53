package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makeadle/dle-service/internal/config"
	"github.com/makeadle/dle-service/internal/ui"
)

// Version is stamped at build time.
var Version = "dev"

// NewRootCmd builds the dle command tree.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()
	cmd := &cobra.Command{
		Use:           "dle",
		Short:         "Daily guessing games over an authoritative scorer",
		Long:          "dle hosts and plays daily guessing games: an HTTP service for web clients and a terminal player.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.BindFlags(v, cmd.Flags())
		},
	}
	cmd.SetGlobalNormalizationFunc(config.NormalizeFlagName)
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newServeCmd(v),
		newPlayCmd(v),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func loadConfig(v *viper.Viper) (config.Config, error) {
	cfg := config.Load(v)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
