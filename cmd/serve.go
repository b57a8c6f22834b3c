package cmd

import (
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/routes"
	"github.com/cppla/microblog/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if err := cfg.Validate(); err != nil {
				return err
			}
			defer utils.Logger.Sync()

			db, err := config.InitDatabase(cfg, schema()...)
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
				if err := utils.CloseRedis(); err != nil {
					utils.Logger.Warn("close redis", zap.Error(err))
				}
			}()

			r := routes.SetupRouter(db)
			addr := net.JoinHostPort("", cfg.AppPort)
			utils.Logger.Info("starting server", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
			return utils.GraceServer(cmd.Context(), addr, r, cfg.ShutdownTimeout)
		},
	}
}
