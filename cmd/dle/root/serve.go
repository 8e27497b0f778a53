package root

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makeadle/dle-service/internal/config"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/server"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host game sessions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(logging.Config{
				Level:   cfg.LogLevel,
				Format:  cfg.LogFormat,
				Service: cfg.Metrics.ServiceName,
				Version: Version,
				Output:  cmd.ErrOrStderr(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	config.RegisterServeFlags(cmd.Flags())
	return cmd
}

