package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
)

func newSeedGroupsCmd(wrap runWrapper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-groups",
		Short: "Create the rotation groups and the waiting list when missing",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, svc *service.Service) error {
			groups, err := svc.Group.Seed(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, g := range groups {
				_, _ = fmt.Fprintf(w, "%-12s %s\n", g.Name, g.ID)
			}
			return nil
		}),
	}
}

func newSeedScheduleCmd(wrap runWrapper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-schedule",
		Short: "Persist the generated service days of a year",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, svc *service.Service) error {
			year, _ := cmd.Flags().GetInt("year")
			overwrite, _ := cmd.Flags().GetBool("overwrite")
			if year < 2000 || year > 2100 {
				return fmt.Errorf("--year must be between 2000 and 2100")
			}

			resp, err := svc.Schedule.SeedYear(cmd.Context(), &dto.SeedScheduleRequest{Year: year, Overwrite: overwrite})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "year %d: %d generated, %d written, %d holidays\n",
				resp.Year, resp.Generated, resp.Written, resp.Holidays)
			return nil
		}),
	}
	cmd.Flags().Int("year", 0, "year to seed")
	cmd.Flags().Bool("overwrite", false, "replace days that already exist")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
