package capture

import (
	"fmt"
	"time"

	"github.com/applytrack/applytrack/internal/application"
)

// DefaultCurrency is applied when the offer form's currency is left
// untouched.
const DefaultCurrency = "USD"

// InterviewStageForm gates the transition into Interviewing. The stage is
// mandatory: the transition cannot be confirmed without one.
type InterviewStageForm struct {
	Stage *application.InterviewStage
}

func NewInterviewStageForm() *InterviewStageForm {
	return &InterviewStageForm{}
}

// Options lists the fixed stages the selector offers.
func (f *InterviewStageForm) Options() []application.InterviewStage {
	return application.Stages()
}

func (f *InterviewStageForm) Select(stage application.InterviewStage) {
	f.Stage = &stage
}

func (f *InterviewStageForm) Validate() error {
	if f.Stage == nil {
		return fmt.Errorf("an interview stage is required")
	}
	if !f.Stage.IsValid() {
		return fmt.Errorf("unknown interview stage %q", *f.Stage)
	}
	return nil
}

func (f *InterviewStageForm) Apply(rq *application.UpdateRq) {
	rq.CurrentInterviewStage = f.Stage
}

// OfferForm gates the transition into Offer. Every field is optional; an
// untouched field stays absent from the payload rather than serializing as
// an empty value.
type OfferForm struct {
	BaseSalary       *int64
	Currency         string
	BonusPercent     *float64
	EquityValue      *int64
	EquityType       *string
	VestingYears     *int
	StartDate        *time.Time
	ResponseDeadline *time.Time
	Benefits         *string
	Notes            *string
}

func NewOfferForm() *OfferForm {
	return &OfferForm{Currency: DefaultCurrency}
}

func (f *OfferForm) Validate() error {
	if f.BaseSalary != nil && *f.BaseSalary < 0 {
		return fmt.Errorf("base salary cannot be negative")
	}
	if f.BonusPercent != nil && (*f.BonusPercent < 0 || *f.BonusPercent > 100) {
		return fmt.Errorf("bonus percent must be between 0 and 100")
	}
	return nil
}

// Details builds the sparse value object from what was actually entered.
// Currency is the one field that always travels, defaulting to USD.
func (f *OfferForm) Details() *application.OfferDetails {
	currency := f.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return &application.OfferDetails{
		BaseSalary:       f.BaseSalary,
		SalaryCurrency:   &currency,
		BonusPercent:     f.BonusPercent,
		EquityValue:      f.EquityValue,
		EquityType:       f.EquityType,
		VestingYears:     f.VestingYears,
		StartDate:        f.StartDate,
		ResponseDeadline: f.ResponseDeadline,
		Benefits:         f.Benefits,
		Notes:            f.Notes,
	}
}

func (f *OfferForm) Apply(rq *application.UpdateRq) {
	rq.OfferDetails = f.Details()
}

// RejectionForm gates the transition into Rejected. If the application has
// an interview stage recorded the form opens with it pre-selected as a
// convenience default, still editable.
type RejectionForm struct {
	Stage    *application.InterviewStage
	Reason   *string
	Feedback *string
}

func NewRejectionForm(current application.Application) *RejectionForm {
	f := &RejectionForm{}
	if current.CurrentInterviewStage != nil {
		stage := *current.CurrentInterviewStage
		f.Stage = &stage
	}
	return f
}

func (f *RejectionForm) Validate() error {
	if f.Stage != nil && !f.Stage.IsValid() {
		return fmt.Errorf("unknown interview stage %q", *f.Stage)
	}
	return nil
}

func (f *RejectionForm) Apply(rq *application.UpdateRq) {
	rq.RejectionDetails = &application.RejectionDetails{
		Stage:    f.Stage,
		Reason:   f.Reason,
		Feedback: f.Feedback,
	}
}
