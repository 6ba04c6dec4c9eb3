// Package capture holds the dialogs that gate lifecycle transitions: which
// auxiliary data a target status demands, and the form state collecting it.
// Every form is constructed fresh when its dialog opens, derived from the
// current application data; stale input from a previous open never survives.
package capture

import (
	"github.com/applytrack/applytrack/internal/application"
)

// Step names the capture step a target status requires before the
// transition may commit.
type Step int

const (
	// StepNone applies to statuses that cannot be reached at all.
	StepNone Step = iota
	// StepInterviewStage demands a stage selection, mandatory.
	StepInterviewStage
	// StepOfferForm opens the offer details form, all fields optional.
	StepOfferForm
	// StepRejectionForm opens the rejection details form, all fields optional.
	StepRejectionForm
	// StepConfirm is a plain "are you sure" prompt with no extra data.
	StepConfirm
)

// StepFor routes a selected target status to the capture step that must be
// completed before the transition commits.
func StepFor(target application.Status) Step {
	switch target {
	case application.StatusInterviewing:
		return StepInterviewStage
	case application.StatusOffer:
		return StepOfferForm
	case application.StatusRejected:
		return StepRejectionForm
	case application.StatusAccepted, application.StatusWithdrawn:
		return StepConfirm
	}
	return StepNone
}

// Form is the contract every capture dialog satisfies: validate what was
// entered, then fold the captured payload into the transition request so
// status and auxiliary data travel in one atomic PATCH.
type Form interface {
	Validate() error
	Apply(rq *application.UpdateRq)
}

// FormFor builds a fresh capture form for the target status, pre-populated
// from the current application per each dialog's rules. It returns nil for
// plain-confirmation transitions.
func FormFor(target application.Status, current application.Application) Form {
	switch StepFor(target) {
	case StepInterviewStage:
		return NewInterviewStageForm()
	case StepOfferForm:
		return NewOfferForm()
	case StepRejectionForm:
		return NewRejectionForm(current)
	}
	return nil
}
