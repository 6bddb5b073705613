package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"rosterhub/roster"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:8000"

func main() {
	// .env is optional for the client; env vars win either way
	_ = godotenv.Load()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	fmt.Println("========================================")
	fmt.Println("Mergington Activity Roster")
	fmt.Println("========================================")
	fmt.Printf("Server: %s\n", baseURL)
	fmt.Println("Commands: list, login, logout, signup, remove, quit")
	fmt.Println()

	renderer := NewTerminalRenderer(os.Stdout)
	notifier := roster.NewStatusNotifier()
	notifier.OnChange = renderer.ShowStatus

	ctrl := roster.NewController(roster.NewClient(baseURL), notifier, renderer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutdown signal received...")
		cancel()
		os.Exit(0)
	}()

	// Follow server-side roster changes in the background
	go SubscribeRosterEvents(ctx, baseURL, ctrl)

	ctrl.Start()
	runPromptLoop(ctx, ctrl)
}

func runPromptLoop(ctx context.Context, ctrl *roster.Controller) {
	for ctx.Err() == nil {
		command := promptInput("> ")

		switch command {
		case "list", "":
			ctrl.Refresh()
		case "login":
			username := promptInput("Username: ")
			password := promptInput("Password: ")
			if !ctrl.SubmitLogin(username, password) {
				fmt.Println("A login is already in progress")
				continue
			}
			if session := ctrl.CurrentSession(); session.Authenticated() {
				fmt.Printf("Logged in as %s\n", session.Username)
			}
		case "logout":
			ctrl.Logout()
			fmt.Println("Logged out")
		case "signup":
			activity := promptInput("Activity: ")
			email := promptInput("Email: ")
			if !ctrl.SubmitEnroll(activity, email) {
				fmt.Println("A signup is already in progress")
			}
		case "remove":
			if !ctrl.CurrentSession().Authenticated() {
				fmt.Println("Log in as a teacher to remove participants")
				continue
			}
			activity := promptInput("Activity: ")
			email := promptInput("Email: ")
			if !ctrl.RemoveParticipant(activity, email) {
				fmt.Println("A removal is already in progress")
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command:", command)
		}
	}
}

// One shared reader so type-ahead buffered between prompts is not lost.
var stdinReader = bufio.NewReader(os.Stdin)

func promptInput(prompt string) string {
	fmt.Print(prompt)
	input, err := stdinReader.ReadString('\n')
	if err != nil {
		// stdin closed; nothing left to do
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(input)
}
