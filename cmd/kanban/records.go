package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	kanbansdk "kanban/sdk/go"
)

func taskCmd() *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage tasks"}
	task.AddCommand(taskCreateCmd())
	task.AddCommand(taskListCmd())
	task.AddCommand(taskGetCmd())
	task.AddCommand(taskUpdateCmd())
	task.AddCommand(taskDeleteCmd())
	return task
}

func taskFlags(fs *pflag.FlagSet, t *kanbansdk.Task) {
	fs.StringVar(&t.Title, "title", "", "title")
	fs.StringVar(&t.Description, "description", "", "description")
	fs.StringVar(&t.Status, "status", "todo", "status column")
	fs.StringVar(&t.StartDate, "start-date", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&t.EndDate, "end-date", "", "end date (YYYY-MM-DD)")
	fs.StringVar(&t.AssignedTo, "assigned-to", "", "assignee")
}

func taskCreateCmd() *cobra.Command {
	var t kanbansdk.Task
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create task",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := client().CreateTask(cmd.Context(), t)
			if err != nil {
				return err
			}
			return printTasks(created)
		},
	}
	taskFlags(cmd.Flags(), &t)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")
	return cmd
}

func taskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := client().ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(tasks)
			}
			return printTasks(tasks...)
		},
	}
}

func taskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := client().GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printTasks(t)
		},
	}
}

// taskUpdateCmd replaces a task, keeping current values for flags not given.
func taskUpdateCmd() *cobra.Command {
	var patch kanbansdk.Task
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client()
			current, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			overlay(fs, "title", &current.Title, patch.Title)
			overlay(fs, "description", &current.Description, patch.Description)
			overlay(fs, "status", &current.Status, patch.Status)
			overlay(fs, "start-date", &current.StartDate, patch.StartDate)
			overlay(fs, "end-date", &current.EndDate, patch.EndDate)
			overlay(fs, "assigned-to", &current.AssignedTo, patch.AssignedTo)
			updated, err := c.UpdateTask(cmd.Context(), args[0], current)
			if err != nil {
				return err
			}
			return printTasks(updated)
		},
	}
	taskFlags(cmd.Flags(), &patch)
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client().DeleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printMessage(msg)
		},
	}
}

func projectCmd() *cobra.Command {
	prj := &cobra.Command{Use: "project", Short: "Manage projects"}
	prj.AddCommand(projectCreateCmd())
	prj.AddCommand(projectListCmd())
	prj.AddCommand(projectGetCmd())
	prj.AddCommand(projectUpdateCmd())
	prj.AddCommand(projectDeleteCmd())
	return prj
}

func projectFlags(fs *pflag.FlagSet, p *kanbansdk.Project) {
	fs.StringVar(&p.Name, "name", "", "name")
	fs.StringVar(&p.Description, "description", "", "description")
	fs.StringVar(&p.Status, "status", "active", "status")
	fs.IntVar(&p.Progress, "progress", 0, "progress percentage (0-100)")
	fs.StringSliceVar(&p.Team, "team", nil, "team members (comma separated)")
	fs.StringVar(&p.DueDate, "due-date", "", "due date (YYYY-MM-DD)")
	fs.StringVar(&p.Priority, "priority", "medium", "priority")
}

func projectCreateCmd() *cobra.Command {
	var p kanbansdk.Project
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create project",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := client().CreateProject(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printProjects(created)
		},
	}
	projectFlags(cmd.Flags(), &p)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("due-date")
	return cmd
}

func projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := client().ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(items)
			}
			return printProjects(items...)
		},
	}
}

func projectGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client().GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printProjects(p)
		},
	}
}

// projectUpdateCmd replaces a project, keeping current values for flags not given.
func projectUpdateCmd() *cobra.Command {
	var patch kanbansdk.Project
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client()
			current, err := c.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			overlay(fs, "name", &current.Name, patch.Name)
			overlay(fs, "description", &current.Description, patch.Description)
			overlay(fs, "status", &current.Status, patch.Status)
			overlay(fs, "progress", &current.Progress, patch.Progress)
			overlay(fs, "team", &current.Team, patch.Team)
			overlay(fs, "due-date", &current.DueDate, patch.DueDate)
			overlay(fs, "priority", &current.Priority, patch.Priority)
			updated, err := c.UpdateProject(cmd.Context(), args[0], current)
			if err != nil {
				return err
			}
			return printProjects(updated)
		},
	}
	projectFlags(cmd.Flags(), &patch)
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client().DeleteProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printMessage(msg)
		},
	}
}

func overlay[T any](fs *pflag.FlagSet, name string, dst *T, v T) {
	if fs.Changed(name) {
		*dst = v
	}
}

func printTasks(tasks ...kanbansdk.Task) error {
	if viper.GetBool("json") && len(tasks) == 1 {
		return printJSON(tasks[0])
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Title", "Status", "Start", "End", "Assigned To"})
	for _, t := range tasks {
		tw.AppendRow(table.Row{t.ID, t.Title, t.Status, t.StartDate, t.EndDate, t.AssignedTo})
	}
	tw.Render()
	return nil
}

func printProjects(items ...kanbansdk.Project) error {
	if viper.GetBool("json") && len(items) == 1 {
		return printJSON(items[0])
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Name", "Status", "Progress", "Due", "Priority", "Team"})
	for _, p := range items {
		tw.AppendRow(table.Row{p.ID, p.Name, p.Status, fmt.Sprintf("%d%%", p.Progress), p.DueDate, p.Priority, strings.Join(p.Team, ", ")})
	}
	tw.Render()
	return nil
}

func printMessage(msg string) error {
	if viper.GetBool("json") {
		return printJSON(map[string]string{"message": msg})
	}
	fmt.Println(msg)
	return nil
}
