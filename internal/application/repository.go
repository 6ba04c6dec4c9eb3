package application

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/segmentio/ksuid"
)

// system timeline event types written by the repository as a side effect of
// lifecycle changes. The user-addable types live in the timeline package;
// these are never accepted from a client.
const (
	eventApplied       = "applied"
	eventStatusChanged = "status_changed"
	eventNoteAdded     = "note_added"
	eventOfferReceived = "offer_received"
	eventOfferAccepted = "offer_accepted"
	eventRejected      = "rejected"
	eventWithdrawn     = "withdrawn"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

const applicationColumns = `id, slug, company, role, status, current_interview_stage, offer_details, rejection_details, is_pinned, notes, archived_at, created_at, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }) (Application, error) {
	app := Application{}
	var stage sql.NullString
	var offerRaw, rejectionRaw []byte
	err := row.Scan(
		&app.ID,
		&app.Slug,
		&app.Company,
		&app.Role,
		&app.Status,
		&stage,
		&offerRaw,
		&rejectionRaw,
		&app.IsPinned,
		&app.Notes,
		&app.ArchivedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if stage.Valid {
		s := InterviewStage(stage.String)
		app.CurrentInterviewStage = &s
	}
	if len(offerRaw) > 0 {
		app.OfferDetails = &OfferDetails{}
		if err := json.Unmarshal(offerRaw, app.OfferDetails); err != nil {
			return Application{}, err
		}
	}
	if len(rejectionRaw) > 0 {
		app.RejectionDetails = &RejectionDetails{}
		if err := json.Unmarshal(rejectionRaw, app.RejectionDetails); err != nil {
			return Application{}, err
		}
	}
	return app, nil
}

func (r *Repository) Create(rq CreateRq) (Application, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return Application{}, err
	}
	eventID, err := ksuid.NewRandom()
	if err != nil {
		return Application{}, err
	}
	tx, err := r.db.Begin()
	if err != nil {
		return Application{}, err
	}
	defer tx.Rollback()
	_, err = tx.Exec(
		`INSERT INTO application (id, slug, company, role, status, is_pinned, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, NOW(), NOW())`,
		id.String(), slug.Make(rq.Company+" "+rq.Role), rq.Company, rq.Role, StatusApplied, rq.Notes)
	if err != nil {
		return Application{}, err
	}
	_, err = tx.Exec(
		`INSERT INTO timeline_event (id, application_id, event_type, event_date, created_at)
		VALUES ($1, $2, $3, NOW(), NOW())`,
		eventID.String(), id.String(), eventApplied)
	if err != nil {
		return Application{}, err
	}
	if err := tx.Commit(); err != nil {
		return Application{}, err
	}
	return r.GetByID(id.String())
}

func (r *Repository) GetByID(id string) (Application, error) {
	res := r.db.QueryRow(`SELECT `+applicationColumns+` FROM application WHERE id = $1`, id)
	return scanApplication(res)
}

// List returns non-archived applications, pinned first.
func (r *Repository) List() ([]Application, error) {
	apps := []Application{}
	rows, err := r.db.Query(`SELECT ` + applicationColumns + ` FROM application WHERE archived_at IS NULL ORDER BY is_pinned DESC, created_at DESC`)
	if err != nil {
		return apps, err
	}
	defer rows.Close()
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return apps, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ApplyTransition moves an application to rq.Status together with the
// captured auxiliary payload, in one transaction that also appends the
// matching system timeline event. The adjacency table is re-checked here so
// the database never observes an illegal move even if a client skipped its
// own guard.
func (r *Repository) ApplyTransition(id string, rq UpdateRq) (Application, error) {
	if rq.Status == nil {
		return Application{}, fmt.Errorf("transition requires a target status")
	}
	target := *rq.Status
	if !target.IsValid() {
		return Application{}, fmt.Errorf("unknown status %q", target)
	}
	tx, err := r.db.Begin()
	if err != nil {
		return Application{}, err
	}
	defer tx.Rollback()

	var current Status
	res := tx.QueryRow(`SELECT status FROM application WHERE id = $1 FOR UPDATE`, id)
	if err := res.Scan(&current); err != nil {
		return Application{}, err
	}
	if err := CanTransition(current, target); err != nil {
		return Application{}, err
	}

	var eventType string
	var eventStage interface{}
	switch target {
	case StatusInterviewing:
		if rq.CurrentInterviewStage == nil || !rq.CurrentInterviewStage.IsValid() {
			return Application{}, fmt.Errorf("transition to %q requires an interview stage", target)
		}
		_, err = tx.Exec(`UPDATE application SET status = $1, current_interview_stage = $2, updated_at = NOW() WHERE id = $3`,
			target, string(*rq.CurrentInterviewStage), id)
		eventType = eventStatusChanged
		eventStage = string(*rq.CurrentInterviewStage)
	case StatusOffer:
		offer := rq.OfferDetails
		if offer == nil {
			offer = &OfferDetails{}
		}
		_, err = tx.Exec(`UPDATE application SET status = $1, offer_details = $2, updated_at = NOW() WHERE id = $3`,
			target, *offer, id)
		eventType = eventOfferReceived
	case StatusRejected:
		rejection := rq.RejectionDetails
		if rejection == nil {
			rejection = &RejectionDetails{}
		}
		if rejection.RejectedAt == nil {
			now := time.Now().UTC()
			rejection.RejectedAt = &now
		}
		_, err = tx.Exec(`UPDATE application SET status = $1, rejection_details = $2, updated_at = NOW() WHERE id = $3`,
			target, *rejection, id)
		eventType = eventRejected
	case StatusAccepted:
		_, err = tx.Exec(`UPDATE application SET status = $1, updated_at = NOW() WHERE id = $2`, target, id)
		eventType = eventOfferAccepted
	case StatusWithdrawn:
		_, err = tx.Exec(`UPDATE application SET status = $1, updated_at = NOW() WHERE id = $2`, target, id)
		eventType = eventWithdrawn
	default:
		return Application{}, &InvalidTransitionError{From: current, To: target}
	}
	if err != nil {
		return Application{}, err
	}

	eventID, err := ksuid.NewRandom()
	if err != nil {
		return Application{}, err
	}
	_, err = tx.Exec(
		`INSERT INTO timeline_event (id, application_id, event_type, event_date, interview_stage, created_at)
		VALUES ($1, $2, $3, NOW(), $4, NOW())`,
		eventID.String(), id, eventType, eventStage)
	if err != nil {
		return Application{}, err
	}
	if err := tx.Commit(); err != nil {
		return Application{}, err
	}
	return r.GetByID(id)
}

// UpdateNotes saves the free-text notes and appends the note_added system
// event in the same transaction, same shape as ApplyTransition.
func (r *Repository) UpdateNotes(id, notes string) error {
	eventID, err := ksuid.NewRandom()
	if err != nil {
		return err
	}
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	_, err = tx.Exec(`UPDATE application SET notes = $1, updated_at = NOW() WHERE id = $2`, notes, id)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		`INSERT INTO timeline_event (id, application_id, event_type, event_date, created_at)
		VALUES ($1, $2, $3, NOW(), NOW())`,
		eventID.String(), id, eventNoteAdded)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) SetPinned(id string, pinned bool) error {
	_, err := r.db.Exec(`UPDATE application SET is_pinned = $1, updated_at = NOW() WHERE id = $2`, pinned, id)
	return err
}

// UpdateOfferDetails re-sends the full value object; fields absent from
// details end up absent in storage, not empty.
func (r *Repository) UpdateOfferDetails(id string, details OfferDetails) error {
	_, err := r.db.Exec(`UPDATE application SET offer_details = $1, updated_at = NOW() WHERE id = $2`, details, id)
	return err
}

func (r *Repository) UpdateRejectionDetails(id string, details RejectionDetails) error {
	_, err := r.db.Exec(`UPDATE application SET rejection_details = $1, updated_at = NOW() WHERE id = $2`, details, id)
	return err
}

func (r *Repository) Archive(id string) error {
	_, err := r.db.Exec(`UPDATE application SET archived_at = NOW(), updated_at = NOW() WHERE id = $1 AND archived_at IS NULL`, id)
	return err
}

func (r *Repository) Restore(id string) error {
	_, err := r.db.Exec(`UPDATE application SET archived_at = NULL, updated_at = NOW() WHERE id = $1`, id)
	return err
}
