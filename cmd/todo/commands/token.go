package commands

import (
	"fmt"
	"time"

	"github.com/arizal132/todo-app/internal/auth"
	"github.com/arizal132/todo-app/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewTokenCmd creates the token command, an operator tool for minting access
// tokens against a deployment's TOKEN_SECRET.
func NewTokenCmd() *cobra.Command {
	var secret string
	var principalID string
	var email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a principal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}

			id := uuid.New()
			if principalID != "" {
				parsed, err := uuid.Parse(principalID)
				if err != nil {
					return fmt.Errorf("invalid principal id %q", principalID)
				}
				id = parsed
			}

			resolver := auth.NewResolver(secret)
			token, err := resolver.Issue(&models.Principal{ID: id, Email: email}, ttl)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Printf("Principal: %s\n", id)
			fmt.Printf("Token:     %s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "Deployment token secret")
	cmd.Flags().StringVar(&principalID, "principal", "", "Principal id (random when omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Principal email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")

	return cmd
}
