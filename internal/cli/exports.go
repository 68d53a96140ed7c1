package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/internal/service"
)

var exportNotices = map[models.ExportType]string{
	models.ExportTypeCourses:     "Courses exported to %s\n",
	models.ExportTypeAssignments: "Assignments exported to %s\n",
	models.ExportTypeFull:        "Full report exported to %s\n",
}

func (r *runner) exportCommands() []*cobra.Command {
	var reportType, format, output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export data to CSV, Excel or PDF",
		Args:  cobra.NoArgs,
		RunE: r.action("export", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			parsed, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}
			req := service.ExportRequest{Type: models.ExportType(reportType), Format: parsed, Output: output}
			result, err := a.exports.Export(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, exportNotices[req.Type], result.Path)
			return nil
		}),
	}
	export.Flags().StringVar(&reportType, "type", string(models.ExportTypeFull), "Type of report (courses, assignments, full)")
	export.Flags().StringVar(&format, "format", string(models.ExportFormatCSV), "Output format (csv, excel, pdf)")
	export.Flags().StringVar(&output, "output", "", "Output file path")
	_ = export.MarkFlagRequired("output")

	var enrichedFormat, enrichedOutput string
	enriched := &cobra.Command{
		Use:   "export-enriched",
		Short: "Export the full report with the weighted final grade",
		Args:  cobra.NoArgs,
		RunE: r.action("export-enriched", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			parsed, err := service.ParseExportFormat(enrichedFormat)
			if err != nil {
				return err
			}
			result, err := a.exports.ExportEnriched(ctx, parsed, enrichedOutput)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, "Enriched report exported to %s\n", result.Path)
			return nil
		}),
	}
	enriched.Flags().StringVar(&enrichedFormat, "format", string(models.ExportFormatCSV), "Output format (csv, excel, pdf)")
	enriched.Flags().StringVar(&enrichedOutput, "output", "", "Output file path")
	_ = enriched.MarkFlagRequired("output")

	return []*cobra.Command{export, enriched}
}

type plotFunc func(s *service.ChartService, ctx context.Context, output string) (string, error)

func (r *runner) plotCommand(use, short, fallback string, plot plotFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: r.action(use, func(ctx context.Context, cmd *cobra.Command, a *app) error {
			path, err := plot(a.charts, ctx, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, "Plot saved to %s\n", path)
			return nil
		}),
	}
	cmd.Flags().StringVar(&output, "output", fallback, "Output PDF file path")
	return cmd
}

func (r *runner) plotCommands() []*cobra.Command {
	return []*cobra.Command{
		r.plotCommand("plot-grades", "Plot average grades per course", service.DefaultGradePlot, (*service.ChartService).PlotGrades),
		r.plotCommand("plot-timeline", "Plot assignment due dates and weekly workload", service.DefaultTimelinePlot, (*service.ChartService).PlotTimeline),
		r.plotCommand("plot-study-time", "Plot study hours per course", service.DefaultStudyTimePlot, (*service.ChartService).PlotStudyTime),
		r.plotCommand("plot-study-efficiency", "Plot study hours against average grade", service.DefaultEfficiencyPlot, (*service.ChartService).PlotStudyEfficiency),
	}
}
