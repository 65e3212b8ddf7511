package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/taskdesk/backend/internal/core/report"
	"github.com/taskdesk/backend/internal/core/services"
	"github.com/taskdesk/backend/internal/core/taskview"
	"github.com/taskdesk/backend/internal/infrastructure/storage"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered and sorted task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}

			tasks, err := e.tasks.ListTasks(cmd.Context(), flags.filter())
			if err != nil {
				return err
			}

			now := e.clock.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tASSIGNED TO\tDEADLINE\tSTATUS\t")
			for _, t := range tasks {
				status := string(t.Status)
				if taskview.IsOverdue(t, now) {
					status += " (overdue)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", t.Title, t.AssignedTo, taskview.FormatShort(t.Deadline), status)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			counts := taskview.CountByStatus(tasks)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d tasks: %d pending, %d in progress, %d done\n",
				counts.Total, counts.Pending, counts.InProgress, counts.Done)
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		flags   filterFlags
		title   string
		out     string
		archive bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the task list as a PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := opts.open(ctx)
			if err != nil {
				return err
			}

			cfg := services.ReportServiceConfig{
				Tasks:        e.tasks,
				Renderer:     report.NewRenderer(),
				Clock:        e.clock,
				DefaultTitle: e.cfg.Reports.Title,
				Logger:       e.log,
			}
			if archive {
				sink, err := storage.New(e.cfg.Reports, e.log)
				if err != nil {
					return err
				}
				cfg.Sink = sink
			}
			svc := services.NewReportService(cfg)

			if archive {
				archived, err := svc.Archive(ctx, flags.filter(), title)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "archived %s (%d rows, %d pages)\n", archived.Location, archived.Rows, archived.Pages)
				return nil
			}

			file, err := svc.Generate(ctx, flags.filter(), title)
			if err != nil {
				return err
			}
			if out == "" {
				out = file.Name
			}
			if err := os.WriteFile(out, file.Data, 0644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows, %d pages)\n", out, file.Rows, file.Pages)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&title, "title", "t", "", "report title")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (tasks-report.pdf when empty)")
	cmd.Flags().BoolVar(&archive, "archive", false, "store the report in the configured reports sink instead")
	return cmd
}
