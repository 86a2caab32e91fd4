package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/service"
)

func newImportCmd(wrap runWrapper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load beneficiaries and attendance from an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: wrap(func(cmd *cobra.Command, svc *service.Service) error {
			path, _ := cmd.Flags().GetString("file")
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			resp, err := svc.Import.ImportWorkbook(cmd.Context(), f)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "beneficiaries: %d (groups created: %d)\n", resp.Beneficiaries, resp.GroupsCreated)
			_, _ = fmt.Fprintf(w, "attendances:   %d (duplicates: %d)\n", resp.Attendances, resp.Duplicates)
			for _, e := range resp.Errors {
				_, _ = fmt.Fprintf(w, "  %s row %d: %s\n", e.Sheet, e.Row, e.Message)
			}
			return nil
		}),
	}
	cmd.Flags().String("file", "", "path to the .xlsx file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
