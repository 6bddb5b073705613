package activities

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"rosterhub/db"
	"rosterhub/live"
	"rosterhub/types"

	"github.com/gin-gonic/gin"
)

// HandleGetActivities serves the roster snapshot as a JSON object keyed by
// activity name. Clients rely on the key order, so the object is assembled
// by hand instead of marshaling a Go map (which would sort the keys).
func HandleGetActivities(c *gin.Context) {
	rows, err := db.RosterDB.Query(
		`SELECT id, name, description, schedule, max_participants FROM activities ORDER BY position, id`)
	if err != nil {
		c.JSON(500, gin.H{"detail": "Database error listing activities"})
		return
	}
	defer rows.Close()

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	for rows.Next() {
		var activity types.ActivityData
		if err := rows.Scan(&activity.ID, &activity.Name, &activity.Description,
			&activity.Schedule, &activity.MaxParticipants); err != nil {
			c.JSON(500, gin.H{"detail": "Database error scanning activity"})
			return
		}

		participants, err := participantEmails(activity.ID)
		if err != nil {
			c.JSON(500, gin.H{"detail": "Database error listing participants"})
			return
		}

		details := types.ActivityDetails{
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxParticipants,
			Participants:    participants,
		}

		nameJSON, err := json.Marshal(activity.Name)
		if err != nil {
			c.JSON(500, gin.H{"detail": "Failed to encode activity"})
			return
		}
		detailsJSON, err := json.Marshal(details)
		if err != nil {
			c.JSON(500, gin.H{"detail": "Failed to encode activity"})
			return
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(nameJSON)
		buf.WriteByte(':')
		buf.Write(detailsJSON)
	}
	if err := rows.Err(); err != nil {
		c.JSON(500, gin.H{"detail": "Database error listing activities"})
		return
	}
	buf.WriteByte('}')

	c.Data(200, "application/json; charset=utf-8", buf.Bytes())
}

func participantEmails(activityID int) ([]string, error) {
	rows, err := db.RosterDB.Query(
		`SELECT email FROM participants WHERE activity_id = ? ORDER BY id`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// HandleSignup adds an email to an activity. Anonymous signups are allowed;
// a presented token is validated by the OptionalTeacher middleware upstream.
func HandleSignup(c *gin.Context) {
	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		c.JSON(400, gin.H{"detail": "Email is required"})
		return
	}

	var activityID int
	err := db.RosterDB.QueryRow(`SELECT id FROM activities WHERE name = ?`, name).Scan(&activityID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(404, gin.H{"detail": "Activity not found"})
		} else {
			c.JSON(500, gin.H{"detail": "Database error finding activity"})
		}
		return
	}

	_, err = db.RosterDB.Exec(
		`INSERT INTO participants (activity_id, email) VALUES (?, ?)`, activityID, email)
	if err != nil {
		// Check if the error message contains "UNIQUE constraint failed"
		if err.Error() == "UNIQUE constraint failed: participants.activity_id, participants.email" {
			c.JSON(400, gin.H{"detail": "Student is already signed up"})
			return
		}

		c.JSON(500, gin.H{"detail": "Database error inserting participant"})
		return
	}

	live.NotifyRosterChanged()

	c.JSON(200, gin.H{"message": fmt.Sprintf("Signed up %s for %s", email, name)})
}

// HandleUnregister removes an email from an activity. Routed behind
// RequireTeacher; removal is a moderation action.
func HandleUnregister(c *gin.Context) {
	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		c.JSON(400, gin.H{"detail": "Email is required"})
		return
	}

	var activityID int
	err := db.RosterDB.QueryRow(`SELECT id FROM activities WHERE name = ?`, name).Scan(&activityID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(404, gin.H{"detail": "Activity not found"})
		} else {
			c.JSON(500, gin.H{"detail": "Database error finding activity"})
		}
		return
	}

	res, err := db.RosterDB.Exec(
		`DELETE FROM participants WHERE activity_id = ? AND email = ?`, activityID, email)
	if err != nil {
		c.JSON(500, gin.H{"detail": "Database error removing participant"})
		return
	}

	if rowsAffected, _ := res.RowsAffected(); rowsAffected == 0 {
		c.JSON(400, gin.H{"detail": "Student is not signed up for this activity"})
		return
	}

	live.NotifyRosterChanged()

	c.JSON(200, gin.H{"message": fmt.Sprintf("Unregistered %s from %s", email, name)})
}
