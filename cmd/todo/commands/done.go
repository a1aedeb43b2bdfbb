package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewDoneCmd creates the done command
func NewDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid todo id %q", args[0])
			}

			engine := newEngine()
			if err := engine.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("failed to fetch todos: %w", err)
			}

			todo, err := engine.ToggleComplete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to toggle todo: %w", err)
			}

			printTodo(*todo)
			return nil
		},
	}
}
