package commands

import (
	"fmt"
	"strings"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/arizal132/todo-app/internal/syncx"
	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	var description string
	var priority string
	var category string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := syncx.CreatePayload{
				Title:       strings.Join(args, " "),
				Description: description,
			}
			if priority != "" {
				p := models.Priority(priority)
				payload.Priority = &p
			}
			if category != "" {
				payload.Category = &category
			}

			engine := newEngine()
			todo, err := engine.Create(cmd.Context(), payload)
			if err != nil {
				return fmt.Errorf("failed to create todo: %w", err)
			}

			fmt.Println("Created:")
			printTodo(*todo)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Todo description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")

	return cmd
}
