package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/makeadle/dle-service/internal/app/play"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/metrics"
	"github.com/makeadle/dle-service/internal/server"
	"github.com/makeadle/dle-service/internal/tui"
)

func newPlayCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <topic> [mode]",
		Short: "Play today's game in the terminal",
		Example: `  dle play mobiledle
  dle play mobiledle audio --scorer remote --scorer-url https://scorer.example`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			order, err := game.ParseHistoryOrder(cfg.Scorer.HistoryOrder)
			if err != nil {
				return err
			}
			// The terminal belongs to the player, so logs are dropped.
			logger := logging.Discard()
			scorer, err := server.BuildScorer(cfg.Scorer, logger, metrics.NewRecorder())
			if err != nil {
				return err
			}

			// The player owns its single session; nothing is hosted.
			svc := play.NewService(scorer, nil, play.Options{
				HistoryOrder: order,
				Strict:       cfg.Session.Strict,
				Logger:       logger,
			})
			mode := ""
			if len(args) > 1 {
				mode = args[1]
			}
			sess, err := svc.NewSession(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	return cmd
}
