package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/utils"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			conn, err := config.OpenDatabase(cfg)
			if err != nil {
				return err
			}
			if err := config.Migrate(conn, schema()...); err != nil {
				return err
			}
			utils.Sugar.Infof("schema up to date (%s)", cfg.DBDriver)
			return nil
		},
	}
}
