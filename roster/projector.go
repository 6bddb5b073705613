package roster

// ParticipantRow is one rendered participant line.
type ParticipantRow struct {
	Email     string
	Removable bool
}

// ActivityView is the render-ready form of one activity. Derived state
// only: recomputed from (Roster, Session) on every change, never mutated.
type ActivityView struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
}

// ProjectView maps the roster and session into view records. Activity and
// participant ordering come straight from the server. Removable is decided
// once for the whole pass so a single render can never mix states.
func ProjectView(r Roster, s Session) []ActivityView {
	removable := s.Authenticated()

	views := make([]ActivityView, 0, r.Len())
	for _, activity := range r.Activities() {
		rows := make([]ParticipantRow, 0, len(activity.Participants))
		for _, email := range activity.Participants {
			rows = append(rows, ParticipantRow{Email: email, Removable: removable})
		}
		views = append(views, ActivityView{
			Name:         activity.Name,
			Description:  activity.Description,
			Schedule:     activity.Schedule,
			SpotsLeft:    activity.SpotsLeft(),
			Participants: rows,
		})
	}
	return views
}
