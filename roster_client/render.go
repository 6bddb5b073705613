package main

import (
	"fmt"
	"io"
	"rosterhub/roster"
	"sync"
)

// TerminalRenderer prints view records to the terminal. It is the external
// rendering layer the controller feeds; it holds no roster state of its own.
type TerminalRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

func (r *TerminalRenderer) RenderActivities(views []roster.ActivityView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(views) == 0 {
		fmt.Fprintln(r.out, "No activities available")
		return
	}

	for _, view := range views {
		fmt.Fprintf(r.out, "\n%s\n", view.Name)
		fmt.Fprintf(r.out, "  %s\n", view.Description)
		fmt.Fprintf(r.out, "  Schedule: %s\n", view.Schedule)
		fmt.Fprintf(r.out, "  Availability: %d spots left\n", view.SpotsLeft)
		if len(view.Participants) == 0 {
			fmt.Fprintln(r.out, "  No participants yet")
			continue
		}
		fmt.Fprintln(r.out, "  Participants:")
		for _, row := range view.Participants {
			if row.Removable {
				fmt.Fprintf(r.out, "    - %s [removable]\n", row.Email)
			} else {
				fmt.Fprintf(r.out, "    - %s\n", row.Email)
			}
		}
	}
	fmt.Fprintln(r.out)
}

func (r *TerminalRenderer) RenderLoadFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, "Failed to load activities. Please try again later.")
}

// ShowStatus is wired into the notifier's OnChange hook. Hide events are
// skipped; a terminal cannot retract a printed line.
func (r *TerminalRenderer) ShowStatus(msg roster.StatusMessage, visible bool) {
	if !visible {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.Kind == roster.StatusError {
		fmt.Fprintf(r.out, "[error] %s\n", msg.Text)
		return
	}
	fmt.Fprintf(r.out, "[ok] %s\n", msg.Text)
}
