package commands

import (
	"fmt"
	"os"

	"github.com/arizal132/todo-app/internal/models"
	"github.com/arizal132/todo-app/internal/syncx"
)

const defaultAPIURL = "http://localhost:8080/api/v1"

// newEngine builds a sync engine from TODO_API_URL and TODO_TOKEN.
func newEngine() *syncx.Engine {
	baseURL := os.Getenv("TODO_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	token := os.Getenv("TODO_TOKEN")

	client := syncx.NewClient(baseURL, token)
	return syncx.NewEngine(client, syncx.WithLogoutHandler(func() {
		fmt.Fprintln(os.Stderr, "Session expired. Provide a fresh TODO_TOKEN.")
	}))
}

func printTodo(todo models.Todo) {
	mark := " "
	if todo.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %s  %s (%s/%s)\n", mark, todo.ID, todo.Title, todo.Priority, todo.Category)
	if todo.Description != "" {
		fmt.Printf("      %s\n", todo.Description)
	}
}
