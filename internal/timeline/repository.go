package timeline

import (
	"database/sql"
	"fmt"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/segmentio/ksuid"
)

func stagePtr(s string) *application.InterviewStage {
	stage := application.InterviewStage(s)
	return &stage
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// EventsForApplication returns the full ordered ledger for one application.
func (r *Repository) EventsForApplication(applicationID string) ([]Event, error) {
	events := []Event{}
	rows, err := r.db.Query(
		`SELECT id, application_id, event_type, event_date, description, interview_stage, created_at
		FROM timeline_event
		WHERE application_id = $1
		ORDER BY event_date ASC, created_at ASC, id ASC`, applicationID)
	if err != nil {
		return events, err
	}
	defer rows.Close()
	for rows.Next() {
		event := Event{}
		var description, stage sql.NullString
		err := rows.Scan(
			&event.ID,
			&event.ApplicationID,
			&event.EventType,
			&event.EventDate,
			&description,
			&stage,
			&event.CreatedAt,
		)
		if err != nil {
			return events, err
		}
		event.Description = description.String
		if stage.Valid {
			event.InterviewStage = stagePtr(stage.String)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// AddManualEvent appends a user-composed entry to the ledger. Only the
// user-addable subset of event types is accepted; the system types are
// written exclusively by the application repository. There is deliberately
// no update or delete counterpart.
func (r *Repository) AddManualEvent(applicationID string, rq AddEventRq) (Event, error) {
	if !rq.EventType.IsUserAddable() {
		return Event{}, fmt.Errorf("event type %q cannot be added manually", rq.EventType)
	}
	if rq.EventDate.IsZero() {
		return Event{}, fmt.Errorf("event date is required")
	}
	var stage interface{}
	if rq.EventType.IsInterviewType() && rq.InterviewStage != nil {
		stage = string(*rq.InterviewStage)
	}
	id, err := ksuid.NewRandom()
	if err != nil {
		return Event{}, err
	}
	res := r.db.QueryRow(
		`INSERT INTO timeline_event (id, application_id, event_type, event_date, description, interview_stage, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NOW())
		RETURNING id, application_id, event_type, event_date, COALESCE(description, ''), interview_stage, created_at`,
		id.String(), applicationID, rq.EventType, rq.EventDate, rq.Description, stage)
	event := Event{}
	var stageOut sql.NullString
	err = res.Scan(
		&event.ID,
		&event.ApplicationID,
		&event.EventType,
		&event.EventDate,
		&event.Description,
		&stageOut,
		&event.CreatedAt,
	)
	if err != nil {
		return Event{}, err
	}
	if stageOut.Valid {
		event.InterviewStage = stagePtr(stageOut.String)
	}
	return event, nil
}
