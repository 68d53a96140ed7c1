package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studytracker/internal/service"
	"github.com/noah-isme/studytracker/pkg/config"
	"github.com/noah-isme/studytracker/pkg/database"
	appErrors "github.com/noah-isme/studytracker/pkg/errors"
)

func (r *runner) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the database schema",
		Args:  cobra.NoArgs,
		RunE: r.action("init", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			if err := database.InitSchema(ctx, a.db); err != nil {
				return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to initialize schema")
			}
			target := a.cfg.Database.Path
			if a.cfg.Database.Driver == config.DriverPostgres {
				target = "postgres"
			}
			fmt.Fprintf(r.stdout, "Database schema initialized in %s\n", target)
			return nil
		}),
	}
}

func (r *runner) courseCommands() []*cobra.Command {
	var req service.CreateCourseRequest
	add := &cobra.Command{
		Use:   "add-course",
		Short: "Add a new course",
		Args:  cobra.NoArgs,
		RunE: r.action("add-course", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			course, err := a.courses.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, "Course added successfully! ID: %d\n", course.ID)
			return nil
		}),
	}
	add.Flags().StringVar(&req.Name, "name", "", "Course name")
	add.Flags().StringVar(&req.Teacher, "teacher", "", "Teacher name")
	add.Flags().IntVar(&req.Credits, "credits", 0, "Number of credits")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("credits")

	list := &cobra.Command{
		Use:   "list-courses",
		Short: "List all courses",
		Args:  cobra.NoArgs,
		RunE: r.action("list-courses", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			courses, err := a.courses.List(ctx)
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				fmt.Fprintln(r.stdout, "No courses found.")
				return nil
			}
			fmt.Fprintln(r.stdout, "\n=== All Courses ===")
			for _, c := range courses {
				fmt.Fprintf(r.stdout, "ID: %d\n", c.ID)
				fmt.Fprintf(r.stdout, "  Name: %s\n", c.Name)
				fmt.Fprintf(r.stdout, "  Teacher: %s\n", c.Teacher)
				fmt.Fprintf(r.stdout, "  Credits: %d\n\n", c.Credits)
			}
			return nil
		}),
	}

	var courseID int64
	del := &cobra.Command{
		Use:   "delete-course",
		Short: "Delete a course with its assignments and study sessions",
		Args:  cobra.NoArgs,
		RunE: r.action("delete-course", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			deleted, err := a.courses.Delete(ctx, courseID)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(r.stdout, "Course %d deleted successfully!\n", courseID)
			} else {
				fmt.Fprintf(r.stdout, "Course %d not found.\n", courseID)
			}
			return nil
		}),
	}
	del.Flags().Int64Var(&courseID, "course-id", 0, "Course ID")
	_ = del.MarkFlagRequired("course-id")

	return []*cobra.Command{add, list, del}
}
