package application

import (
	"time"
)

// Status represents the lifecycle state of a job application.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusAccepted     Status = "Accepted"
	StatusRejected     Status = "Rejected"
	StatusWithdrawn    Status = "Withdrawn"
)

// IsValid checks if the status value is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// InterviewStage is meaningful only while an application is Interviewing,
// though the last recorded stage is kept around afterwards so the rejection
// form can offer it as a default.
type InterviewStage string

const (
	StagePhoneScreen InterviewStage = "Phone Screen"
	StageOnsite      InterviewStage = "Onsite"
	StageFinalRound  InterviewStage = "Final Round"
)

func (s InterviewStage) IsValid() bool {
	switch s {
	case StagePhoneScreen, StageOnsite, StageFinalRound:
		return true
	}
	return false
}

// Stages lists the fixed interview stages offered by the stage selector.
func Stages() []InterviewStage {
	return []InterviewStage{StagePhoneScreen, StageOnsite, StageFinalRound}
}

// OfferDetails is a sparse value object: a nil field means "not captured",
// never "zero". Editing re-sends the whole object and omitted fields
// serialize as absent.
type OfferDetails struct {
	BaseSalary       *int64     `json:"base_salary,omitempty"`
	SalaryCurrency   *string    `json:"salary_currency,omitempty"`
	BonusPercent     *float64   `json:"bonus_percent,omitempty"`
	EquityValue      *int64     `json:"equity_value,omitempty"`
	EquityType       *string    `json:"equity_type,omitempty"`
	VestingYears     *int       `json:"vesting_years,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	ResponseDeadline *time.Time `json:"response_deadline,omitempty"`
	Benefits         *string    `json:"benefits,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

// RejectionDetails is a sparse value object, same absence semantics as
// OfferDetails.
type RejectionDetails struct {
	Stage      *InterviewStage `json:"stage,omitempty"`
	Reason     *string         `json:"reason,omitempty"`
	Feedback   *string         `json:"feedback,omitempty"`
	RejectedAt *time.Time      `json:"rejected_at,omitempty"`
}

// Application is one tracked job application. It is never deleted, only
// archived (reversible via restore). Status moves only through validated
// transitions; pin, archive and notes are independent of the lifecycle.
type Application struct {
	ID                    string            `json:"id"`
	Slug                  string            `json:"slug"`
	Company               string            `json:"company"`
	Role                  string            `json:"role"`
	Status                Status            `json:"status"`
	CurrentInterviewStage *InterviewStage   `json:"current_interview_stage,omitempty"`
	OfferDetails          *OfferDetails     `json:"offer_details,omitempty"`
	RejectionDetails      *RejectionDetails `json:"rejection_details,omitempty"`
	IsPinned              bool              `json:"is_pinned"`
	Notes                 string            `json:"notes,omitempty"`
	ArchivedAt            *time.Time        `json:"archived_at,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// UpdateRq is the partial PATCH body for an application. For a lifecycle
// transition Status is set together with whatever auxiliary payload the
// capture step produced, in one request. Non-lifecycle edits (notes, pin,
// detail cards) set their field alone.
type UpdateRq struct {
	Status                *Status           `json:"status,omitempty"`
	CurrentInterviewStage *InterviewStage   `json:"current_interview_stage,omitempty"`
	OfferDetails          *OfferDetails     `json:"offer_details,omitempty"`
	RejectionDetails      *RejectionDetails `json:"rejection_details,omitempty"`
	Notes                 *string           `json:"notes,omitempty"`
	IsPinned              *bool             `json:"is_pinned,omitempty"`
}

// CreateRq is the body for registering a new tracked application.
type CreateRq struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Notes   string `json:"notes,omitempty"`
}
