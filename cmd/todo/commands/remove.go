package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the rm command
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
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

			if err := engine.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete todo: %w", err)
			}

			fmt.Println("Deleted", id)
			return nil
		},
	}
}
