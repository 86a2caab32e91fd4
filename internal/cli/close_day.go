package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
)

func newCloseDayCmd(wrap runWrapper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close-day",
		Short: "Mark every active member without a record as absent",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, svc *service.Service) error {
			groupFlag, _ := cmd.Flags().GetString("group")
			date, _ := cmd.Flags().GetString("date")

			groupID, err := resolveGroupID(cmd, svc, groupFlag)
			if err != nil {
				return err
			}

			resp, err := svc.ServiceDay.CloseDay(cmd.Context(), &dto.CloseDayRequest{GroupID: groupID, Date: date})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d members, %d present, %d marked absent\n",
				resp.Date, resp.Total, resp.Present, resp.Absent)
			return nil
		}),
	}
	cmd.Flags().String("group", "", "group name or ID")
	cmd.Flags().String("date", "", "service date YYYY-MM-DD, defaults to today")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

// resolveGroupID accepts a group name (case-insensitive) or ID
func resolveGroupID(cmd *cobra.Command, svc *service.Service, nameOrID string) (string, error) {
	groups, err := svc.Group.List(cmd.Context())
	if err != nil {
		return "", err
	}
	for _, g := range groups {
		if g.ID == nameOrID || strings.EqualFold(g.Name, nameOrID) {
			return g.ID, nil
		}
	}
	return "", fmt.Errorf("group %q: %w", nameOrID, service.ErrGroupNotFound)
}
