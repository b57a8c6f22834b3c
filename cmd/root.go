package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "microblog",
		Short:         "Minimal microblogging service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Initialize logger early
			return utils.InitLogger(cfg)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to the JSON config file")
	root.AddCommand(newServeCmd(), newMigrateCmd(), newUserCmd())
	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

// schema lists every model the service persists.
func schema() []interface{} {
	return []interface{}{&models.User{}, &models.Post{}, &models.PageView{}}
}
