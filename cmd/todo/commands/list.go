package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var category string
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			if err := engine.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch todos: %w", err)
			}

			todos := engine.All()
			if category != "" {
				todos = engine.ByCategory(category)
			}
			if pendingOnly {
				todos = engine.Pending()
			}

			if len(todos) == 0 {
				fmt.Println("No todos")
				return nil
			}

			for _, todo := range todos {
				printTodo(todo)
			}

			stats := engine.Stats()
			fmt.Printf("\n%d total, %d completed, %d pending\n", stats.Total, stats.Completed, stats.Pending)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show todos in this category")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only show todos that are not completed")

	return cmd
}
