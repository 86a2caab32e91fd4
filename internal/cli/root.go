package cli

import (
	"github.com/spf13/cobra"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/app"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
)

// Opener builds the services for one command run and returns a cleanup.
type Opener func(configPath string) (*service.Service, func(), error)

// runWrapper turns a service-level run func into a cobra RunE
type runWrapper func(run func(cmd *cobra.Command, svc *service.Service) error) func(*cobra.Command, []string) error

// OpenApp connects to the configured database and redis.
func OpenApp(configPath string) (*service.Service, func(), error) {
	a, err := app.Open(configPath)
	if err != nil {
		return nil, nil, err
	}
	return a.Service, a.Close, nil
}

// NewRootCmd the caritasctl command tree
func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:          "caritasctl",
		Short:        "Operator tools for the Caritas service dashboard",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to the config file")

	wrap := func(run func(cmd *cobra.Command, svc *service.Service) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			svc, cleanup, err := open(configPath)
			if err != nil {
				return err
			}
			defer cleanup()
			return run(cmd, svc)
		}
	}

	root.AddCommand(
		newSeedGroupsCmd(wrap),
		newSeedScheduleCmd(wrap),
		newCloseDayCmd(wrap),
		newImportCmd(wrap),
	)
	return root
}

// Execute runs caritasctl against the configured environment.
func Execute() error {
	return NewRootCmd(OpenApp).Execute()
}
