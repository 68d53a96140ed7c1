package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/internal/service"
)

func (r *runner) assignmentCommands() []*cobra.Command {
	var (
		req   service.CreateAssignmentRequest
		grade float64
	)
	add := &cobra.Command{
		Use:   "add-assignment",
		Short: "Add a new assignment",
		Args:  cobra.NoArgs,
		RunE: r.action("add-assignment", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			if cmd.Flags().Changed("grade") {
				req.Grade = &grade
			}
			assignment, err := a.assignments.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, "Assignment added successfully! ID: %d\n", assignment.ID)
			return nil
		}),
	}
	add.Flags().Int64Var(&req.CourseID, "course-id", 0, "Course ID")
	add.Flags().StringVar(&req.Title, "title", "", "Assignment title")
	add.Flags().StringVar(&req.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	add.Flags().Float64Var(&grade, "grade", 0, "Grade (optional)")
	_ = add.MarkFlagRequired("course-id")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("due-date")

	var filterCourse int64
	list := &cobra.Command{
		Use:   "list-assignments",
		Short: "List assignments",
		Args:  cobra.NoArgs,
		RunE: r.action("list-assignments", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			var (
				assignments []models.Assignment
				err         error
			)
			if cmd.Flags().Changed("course-id") {
				assignments, err = a.assignments.ListByCourse(ctx, filterCourse)
				if err != nil {
					return err
				}
				fmt.Fprintf(r.stdout, "\n=== Assignments for Course %d ===\n", filterCourse)
			} else {
				assignments, err = a.assignments.List(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(r.stdout, "\n=== All Assignments ===")
			}
			if len(assignments) == 0 {
				fmt.Fprintln(r.stdout, "No assignments found.")
				return nil
			}
			for _, as := range assignments {
				fmt.Fprintf(r.stdout, "ID: %d\n", as.ID)
				if as.CourseName != "" {
					fmt.Fprintf(r.stdout, "  Course: %s\n", as.CourseName)
				}
				fmt.Fprintf(r.stdout, "  Title: %s\n", as.Title)
				fmt.Fprintf(r.stdout, "  Due Date: %s\n", as.DueDate)
				fmt.Fprintf(r.stdout, "  Grade: %s\n\n", gradeText(as.Grade))
			}
			return nil
		}),
	}
	list.Flags().Int64Var(&filterCourse, "course-id", 0, "Filter by course ID")

	var (
		assignmentID int64
		update       service.UpdateGradeRequest
	)
	updateGrade := &cobra.Command{
		Use:   "update-grade",
		Short: "Update assignment grade",
		Args:  cobra.NoArgs,
		RunE: r.action("update-grade", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			updated, err := a.assignments.UpdateGrade(ctx, assignmentID, update)
			if err != nil {
				return err
			}
			if updated {
				fmt.Fprintf(r.stdout, "Assignment %d grade updated to %s\n", assignmentID, service.FormatGrade(update.Grade))
			} else {
				fmt.Fprintf(r.stdout, "Assignment %d not found.\n", assignmentID)
			}
			return nil
		}),
	}
	updateGrade.Flags().Int64Var(&assignmentID, "assignment-id", 0, "Assignment ID")
	updateGrade.Flags().Float64Var(&update.Grade, "grade", 0, "New grade")
	_ = updateGrade.MarkFlagRequired("assignment-id")
	_ = updateGrade.MarkFlagRequired("grade")

	return []*cobra.Command{add, list, updateGrade}
}

func gradeText(grade *float64) string {
	if grade == nil {
		return "Not graded"
	}
	return service.FormatGrade(*grade)
}
