package activities

import (
	"fmt"
	"rosterhub/auth"
	"rosterhub/db"

	"github.com/google/uuid"
)

func EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS teachers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uuid TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			schedule TEXT NOT NULL,
			max_participants INTEGER NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			activity_id INTEGER NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
			email TEXT NOT NULL,
			UNIQUE(activity_id, email)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.RosterDB.Exec(stmt); err != nil {
			return fmt.Errorf("schema exec failed: %w", err)
		}
	}

	return nil
}

type seedActivity struct {
	name            string
	description     string
	schedule        string
	maxParticipants int
	participants    []string
}

var seedActivities = []seedActivity{
	{
		name:            "Chess Club",
		description:     "Learn strategies and compete in chess tournaments",
		schedule:        "Fridays, 3:30 PM - 5:00 PM",
		maxParticipants: 12,
		participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		name:            "Programming Class",
		description:     "Learn programming fundamentals and build software projects",
		schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		maxParticipants: 20,
		participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		name:            "Gym Class",
		description:     "Physical education and sports activities",
		schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		maxParticipants: 30,
		participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	{
		name:            "Soccer Team",
		description:     "Join the school soccer team and compete in matches",
		schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
		maxParticipants: 22,
		participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	{
		name:            "Basketball Team",
		description:     "Practice and play basketball with the school team",
		schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
		maxParticipants: 15,
		participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
	},
	{
		name:            "Art Club",
		description:     "Explore your creativity through painting and drawing",
		schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		maxParticipants: 15,
		participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	{
		name:            "Drama Club",
		description:     "Act, direct, and produce plays and performances",
		schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
		maxParticipants: 20,
		participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	{
		name:            "Math Club",
		description:     "Solve challenging problems and participate in math competitions",
		schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
		maxParticipants: 10,
		participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	{
		name:            "Debate Team",
		description:     "Develop public speaking and argumentation skills",
		schedule:        "Fridays, 4:00 PM - 5:30 PM",
		maxParticipants: 12,
		participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
	},
}

// SeedActivities loads the starter roster once. An already-populated table
// is left alone so restarts keep accumulated signups.
func SeedActivities() error {
	var count int
	if err := db.RosterDB.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count); err != nil {
		return fmt.Errorf("counting activities: %w", err)
	}
	if count > 0 {
		return nil
	}

	for position, activity := range seedActivities {
		var activityID int
		query := `INSERT INTO activities (uuid, name, description, schedule, max_participants, position)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
		err := db.RosterDB.QueryRow(query,
			uuid.NewString(), activity.name, activity.description,
			activity.schedule, activity.maxParticipants, position,
		).Scan(&activityID)
		if err != nil {
			return fmt.Errorf("seeding activity %q: %w", activity.name, err)
		}

		for _, email := range activity.participants {
			_, err := db.RosterDB.Exec(
				`INSERT INTO participants (activity_id, email) VALUES (?, ?)`,
				activityID, email,
			)
			if err != nil {
				return fmt.Errorf("seeding participant %q: %w", email, err)
			}
		}
	}

	return nil
}

// SeedTeacher upserts one teacher login with a bcrypt-hashed password.
func SeedTeacher(username, password string) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing teacher password: %w", err)
	}

	query := `INSERT INTO teachers (uuid, username, password) VALUES (?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET password = excluded.password`
	if _, err := db.RosterDB.Exec(query, uuid.NewString(), username, hashed); err != nil {
		return fmt.Errorf("seeding teacher %q: %w", username, err)
	}

	return nil
}
