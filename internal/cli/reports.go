package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"interviewanalyzer/internal/archive"
	"interviewanalyzer/internal/output"
)

func NewReportsCmd(deps *Dependencies) *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "reports [ID]",
		Short: "List archived reports or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(cmd.OutOrStdout())
			if deps.App.Archive == nil {
				return errors.New("report archive is not configured; set SUPABASE_URL and SUPABASE_SERVICE_KEY")
			}

			if len(args) == 1 {
				id, err := uuid.Parse(args[0])
				if err != nil {
					return fmt.Errorf("invalid report id %q", args[0])
				}
				report, err := deps.App.Archive.Get(cmd.Context(), id)
				if errors.Is(err, archive.ErrNotFound) {
					return fmt.Errorf("report %s not found", id)
				}
				if err != nil {
					return err
				}
				return formatter.Report(report, format)
			}

			reports, err := deps.App.Archive.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return formatter.ReportList(reports, format)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", archive.DefaultListLimit, "maximum number of reports")
	cmd.Flags().StringVarP(&format, "format", "o", output.FormatText, "output format: text, json or yaml")
	return cmd
}
