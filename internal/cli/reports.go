package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) reportCommands() []*cobra.Command {
	sessionReport := &cobra.Command{
		Use:   "session-report",
		Short: "Show total study time per course",
		Args:  cobra.NoArgs,
		RunE: r.action("session-report", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			rows, err := a.reports.StudySummary(ctx)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(r.stdout, "No study sessions found.")
				return nil
			}
			fmt.Fprintln(r.stdout, "\n=== Study Time by Course ===")
			for _, row := range rows {
				fmt.Fprintf(r.stdout, "%s\n", row.CourseName)
				fmt.Fprintf(r.stdout, "  Sessions: %d\n", row.SessionCount)
				fmt.Fprintf(r.stdout, "  Total: %d minutes (%.2f hours)\n\n", row.TotalMinutes, row.TotalHours)
			}
			return nil
		}),
	}

	finalGrade := &cobra.Command{
		Use:   "final-grade",
		Short: "Show the credit-weighted final grade",
		Args:  cobra.NoArgs,
		RunE: r.action("final-grade", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			grade, err := a.reports.FinalGrade(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, "Final weighted grade: %.2f\n", grade)
			return nil
		}),
	}

	averages := &cobra.Command{
		Use:   "course-averages",
		Short: "Show the average grade of each graded course",
		Args:  cobra.NoArgs,
		RunE: r.action("course-averages", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			rows, err := a.reports.CourseAverages(ctx)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(r.stdout, "No graded assignments found.")
				return nil
			}
			fmt.Fprintln(r.stdout, "\n=== Average Grade by Course ===")
			for _, row := range rows {
				fmt.Fprintf(r.stdout, "%s: %.2f (%d graded)\n", row.CourseName, row.AverageGrade, row.GradedCount)
			}
			return nil
		}),
	}

	workload := &cobra.Command{
		Use:   "weekly-workload",
		Short: "Show assignments due per week",
		Args:  cobra.NoArgs,
		RunE: r.action("weekly-workload", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			timeline, err := a.reports.Timeline(ctx)
			if err != nil {
				return err
			}
			if len(timeline.Buckets) == 0 {
				fmt.Fprintln(r.stdout, "No assignments found.")
				return nil
			}
			fmt.Fprintln(r.stdout, "\n=== Weekly Workload ===")
			for _, b := range timeline.Buckets {
				fmt.Fprintf(r.stdout, "Week %d (%s to %s): %d due, %d graded, %d ungraded\n",
					b.Index, b.StartDate, b.EndDate, b.Total, b.Graded, b.Ungraded())
			}
			return nil
		}),
	}

	return []*cobra.Command{sessionReport, finalGrade, averages, workload}
}
