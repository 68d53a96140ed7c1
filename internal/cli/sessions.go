package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/studytracker/internal/models"
	"github.com/noah-isme/studytracker/internal/service"
)

func (r *runner) sessionCommands() []*cobra.Command {
	var (
		req          service.CreateStudySessionRequest
		assignmentID int64
		notes        string
	)
	add := &cobra.Command{
		Use:   "add-session",
		Short: "Log a study session",
		Args:  cobra.NoArgs,
		RunE: r.action("add-session", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			if cmd.Flags().Changed("assignment-id") {
				req.AssignmentID = &assignmentID
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			session, err := a.sessions.Create(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.stdout, "Study session added successfully! ID: %d\n", session.ID)
			return nil
		}),
	}
	add.Flags().Int64Var(&req.CourseID, "course-id", 0, "Course ID")
	add.Flags().StringVar(&req.Date, "date", "", "Session date (YYYY-MM-DD)")
	add.Flags().IntVar(&req.DurationMinutes, "duration", 0, "Duration in minutes")
	add.Flags().Int64Var(&assignmentID, "assignment-id", 0, "Related assignment ID (optional)")
	add.Flags().StringVar(&notes, "notes", "", "Notes (optional)")
	_ = add.MarkFlagRequired("course-id")
	_ = add.MarkFlagRequired("date")
	_ = add.MarkFlagRequired("duration")

	var filterCourse int64
	list := &cobra.Command{
		Use:   "list-sessions",
		Short: "List study sessions",
		Args:  cobra.NoArgs,
		RunE: r.action("list-sessions", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			var (
				sessions []models.StudySession
				err      error
			)
			if cmd.Flags().Changed("course-id") {
				sessions, err = a.sessions.ListByCourse(ctx, filterCourse)
				if err != nil {
					return err
				}
				fmt.Fprintf(r.stdout, "\n=== Study Sessions for Course %d ===\n", filterCourse)
			} else {
				sessions, err = a.sessions.List(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(r.stdout, "\n=== All Study Sessions ===")
			}
			if len(sessions) == 0 {
				fmt.Fprintln(r.stdout, "No study sessions found.")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(r.stdout, "ID: %d\n", s.ID)
				if s.CourseName != "" {
					fmt.Fprintf(r.stdout, "  Course: %s\n", s.CourseName)
				}
				if s.AssignmentTitle != nil {
					fmt.Fprintf(r.stdout, "  Assignment: %s\n", *s.AssignmentTitle)
				}
				fmt.Fprintf(r.stdout, "  Date: %s\n", s.Date)
				fmt.Fprintf(r.stdout, "  Duration: %d minutes\n", s.DurationMinutes)
				if s.Notes != nil {
					fmt.Fprintf(r.stdout, "  Notes: %s\n", *s.Notes)
				}
				fmt.Fprintln(r.stdout)
			}
			return nil
		}),
	}
	list.Flags().Int64Var(&filterCourse, "course-id", 0, "Filter by course ID")

	var sessionID int64
	del := &cobra.Command{
		Use:   "delete-session",
		Short: "Delete a study session",
		Args:  cobra.NoArgs,
		RunE: r.action("delete-session", func(ctx context.Context, cmd *cobra.Command, a *app) error {
			deleted, err := a.sessions.Delete(ctx, sessionID)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(r.stdout, "Study session %d deleted successfully!\n", sessionID)
			} else {
				fmt.Fprintf(r.stdout, "Study session %d not found.\n", sessionID)
			}
			return nil
		}),
	}
	del.Flags().Int64Var(&sessionID, "session-id", 0, "Study session ID")
	_ = del.MarkFlagRequired("session-id")

	return []*cobra.Command{add, list, del}
}
