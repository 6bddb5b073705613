package roster

import (
	"encoding/json"
	"fmt"
	"io"
)

// Activity is one extracurricular activity as served by the backend.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// SpotsLeft can go negative when an activity is oversubscribed. The server
// owns capacity enforcement, so no clamping here.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Roster holds the full activity list keyed by name, in the order the
// server sent it. Fetches replace the whole value, never merge.
type Roster struct {
	order  []string
	byName map[string]Activity
}

func (r Roster) Len() int {
	return len(r.order)
}

func (r Roster) Get(name string) (Activity, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Activities returns the activities in server order.
func (r Roster) Activities() []Activity {
	out := make([]Activity, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the activity names in server order.
func (r Roster) Names() []string {
	return append([]string(nil), r.order...)
}

type activityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ParseRoster decodes the GET /activities payload, a JSON object keyed by
// activity name. encoding/json maps lose key order, so the object is
// walked token by token to keep the server's ordering intact.
func ParseRoster(r io.Reader) (Roster, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return Roster{}, fmt.Errorf("reading roster payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Roster{}, fmt.Errorf("roster payload is not a JSON object")
	}

	roster := Roster{byName: make(map[string]Activity)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Roster{}, fmt.Errorf("reading activity name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return Roster{}, fmt.Errorf("activity name is not a string")
		}

		var details activityDetails
		if err := dec.Decode(&details); err != nil {
			return Roster{}, fmt.Errorf("decoding activity %q: %w", name, err)
		}

		if _, dup := roster.byName[name]; !dup {
			roster.order = append(roster.order, name)
		}
		roster.byName[name] = Activity{
			Name:            name,
			Description:     details.Description,
			Schedule:        details.Schedule,
			MaxParticipants: details.MaxParticipants,
			Participants:    details.Participants,
		}
	}

	if _, err := dec.Token(); err != nil {
		return Roster{}, fmt.Errorf("reading roster payload: %w", err)
	}

	return roster, nil
}
