package roster

import (
	"log"
	"sync"
	"sync/atomic"
)

// Renderer is the external rendering layer. The controller pushes view
// records into it and never touches presentation itself.
type Renderer interface {
	RenderActivities(views []ActivityView)
	// RenderLoadFailure shows the persistent roster placeholder used when
	// no snapshot could be fetched. Unlike a status message it stays up
	// until a fetch succeeds.
	RenderLoadFailure()
}

type action int

const (
	actionLogin action = iota
	actionEnroll
	actionUnenroll
)

// Fallback texts for when the server gives no detail.
const (
	fallbackGeneric       = "An error occurred"
	fallbackLoginFailed   = "Login failed"
	fallbackLoginNetwork  = "Login error"
	fallbackEnrollNetwork = "Failed to sign up. Please try again."
	fallbackRemoveNetwork = "Failed to unregister. Please try again."
)

// Controller owns the client-side state: the session, the latest roster
// snapshot and the per-action submit guards. Every user action enters
// through one of its handlers; it is the only place API errors get turned
// into status messages.
type Controller struct {
	api      *Client
	notifier *StatusNotifier
	renderer Renderer

	fetchSeq atomic.Uint64

	mu         sync.Mutex
	session    Session
	roster     Roster
	loadFailed bool
	inFlight   map[action]bool
}

func NewController(api *Client, notifier *StatusNotifier, renderer Renderer) *Controller {
	return &Controller{
		api:      api,
		notifier: notifier,
		renderer: renderer,
		inFlight: make(map[action]bool),
	}
}

// CurrentSession returns a copy of the credential state.
func (c *Controller) CurrentSession() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// CurrentRoster returns the latest fetched snapshot.
func (c *Controller) CurrentRoster() Roster {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster
}

// Start runs the initial roster fetch. A failure here leaves the roster
// empty and the placeholder up; the app stays interactive either way.
func (c *Controller) Start() {
	c.refreshRoster()
}

// Refresh re-fetches the whole roster and re-renders.
func (c *Controller) Refresh() {
	c.refreshRoster()
}

// SubmitLogin exchanges credentials for a session. Returns false when a
// login is already in flight and the submit was ignored.
func (c *Controller) SubmitLogin(username, password string) bool {
	if !c.begin(actionLogin) {
		return false
	}
	defer c.end(actionLogin)

	result, apiErr := c.api.Login(username, password)
	if apiErr != nil {
		if apiErr.Kind == ErrNetwork {
			log.Println("Login error:", apiErr)
			c.notifier.Show(fallbackLoginNetwork, StatusError)
		} else {
			c.notifier.Show(orFallback(apiErr.Detail, fallbackLoginFailed), StatusError)
		}
		return true
	}

	c.mu.Lock()
	c.session = Session{Token: result.Token, Username: result.Username}
	c.mu.Unlock()

	// Auth changed, roster didn't; re-project without a re-fetch.
	c.renderView()
	return true
}

// Logout drops the session. Always succeeds, safe to repeat, leaves the
// roster and any visible status message alone.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.session = Session{}
	c.mu.Unlock()

	c.renderView()
}

// SubmitEnroll signs email up for activity, then re-fetches the roster on
// success. Returns false when an enroll is already in flight.
func (c *Controller) SubmitEnroll(activity, email string) bool {
	if !c.begin(actionEnroll) {
		return false
	}
	defer c.end(actionEnroll)

	message, apiErr := c.api.Enroll(activity, email, c.CurrentSession())
	if apiErr != nil {
		if apiErr.Kind == ErrNetwork {
			log.Println("Error signing up:", apiErr)
			c.notifier.Show(fallbackEnrollNetwork, StatusError)
		} else {
			c.notifier.Show(orFallback(apiErr.Detail, fallbackGeneric), StatusError)
		}
		return true
	}

	c.refreshRoster()
	c.notifier.Show(message, StatusSuccess)
	return true
}

// RemoveParticipant unregisters email from activity, then re-fetches on
// success. The server is the authority on whether the session may do this.
func (c *Controller) RemoveParticipant(activity, email string) bool {
	if !c.begin(actionUnenroll) {
		return false
	}
	defer c.end(actionUnenroll)

	message, apiErr := c.api.Unenroll(activity, email, c.CurrentSession())
	if apiErr != nil {
		if apiErr.Kind == ErrNetwork {
			log.Println("Error unregistering:", apiErr)
			c.notifier.Show(fallbackRemoveNetwork, StatusError)
		} else {
			c.notifier.Show(orFallback(apiErr.Detail, fallbackGeneric), StatusError)
		}
		return true
	}

	c.refreshRoster()
	c.notifier.Show(message, StatusSuccess)
	return true
}

// refreshRoster replaces the snapshot wholesale. Responses are tagged with
// a sequence number so a slow fetch can never clobber a newer one.
func (c *Controller) refreshRoster() {
	seq := c.fetchSeq.Add(1)

	roster, apiErr := c.api.FetchRoster()
	if apiErr != nil {
		log.Println("Error fetching activities:", apiErr)
	}

	c.mu.Lock()
	if c.fetchSeq.Load() != seq {
		// A newer fetch was issued while this one was in flight. Results
		// apply under the same lock, so whichever response lands second
		// cannot clobber the newer one.
		c.mu.Unlock()
		return
	}
	if apiErr != nil {
		c.loadFailed = true
	} else {
		c.roster = roster
		c.loadFailed = false
	}
	c.mu.Unlock()
	c.renderView()
}

// renderView recomputes the projection and pushes it at the renderer.
func (c *Controller) renderView() {
	c.mu.Lock()
	views := ProjectView(c.roster, c.session)
	failed := c.loadFailed
	c.mu.Unlock()

	if failed {
		c.renderer.RenderLoadFailure()
		return
	}
	c.renderer.RenderActivities(views)
}

func (c *Controller) begin(a action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[a] {
		return false
	}
	c.inFlight[a] = true
	return true
}

func (c *Controller) end(a action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[a] = false
}

func orFallback(detail, fallback string) string {
	if detail != "" {
		return detail
	}
	return fallback
}
