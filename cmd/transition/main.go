package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/cache"
	"github.com/applytrack/applytrack/internal/capture"
	"github.com/applytrack/applytrack/internal/client"
	"github.com/applytrack/applytrack/internal/coordinator"
)

// transition drives one status transition through the coordinator against a
// running tracker, capture payload supplied via flags.
func main() {
	var (
		id         = flag.String("id", "", "application id")
		target     = flag.String("status", "", "target status")
		stage      = flag.String("stage", "", "interview stage (required for Interviewing)")
		baseSalary = flag.Int64("base-salary", 0, "offer base salary")
		currency   = flag.String("currency", "", "offer salary currency")
		deadline   = flag.String("deadline", "", "offer response deadline (2006-01-02)")
		reason     = flag.String("reason", "", "rejection reason")
		feedback   = flag.String("feedback", "", "rejection feedback")
	)
	flag.Parse()
	if *id == "" || *target == "" {
		flag.Usage()
		os.Exit(2)
	}
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:8080"
	}

	readCache, err := cache.New(12 * time.Hour)
	if err != nil {
		log.Fatalf("unable to initialise cache: %v", err)
	}
	coord := coordinator.NewCoordinator(client.NewClient(apiBaseURL), readCache, coordinator.NewLogNotifier())

	ctx := context.Background()
	app, err := coord.Application(ctx, *id)
	if err != nil {
		log.Fatalf("unable to retrieve application %s: %v", *id, err)
	}
	log.Printf("%s at %s is %s; allowed targets: %v", app.Company, app.Role, app.Status, application.AllowedTargets(app.Status))

	submission, err := coord.Begin(app, application.Status(*target))
	if err != nil {
		log.Fatalf("cannot start transition: %v", err)
	}

	switch form := submission.Form().(type) {
	case *capture.InterviewStageForm:
		if *stage != "" {
			form.Select(application.InterviewStage(*stage))
		}
	case *capture.OfferForm:
		if *baseSalary > 0 {
			form.BaseSalary = baseSalary
		}
		if *currency != "" {
			form.Currency = *currency
		}
		if *deadline != "" {
			t, err := time.Parse("2006-01-02", *deadline)
			if err != nil {
				log.Fatalf("unable to parse deadline %q: %v", *deadline, err)
			}
			form.ResponseDeadline = &t
		}
	case *capture.RejectionForm:
		if *reason != "" {
			form.Reason = reason
		}
		if *feedback != "" {
			form.Feedback = feedback
		}
	}

	updated, err := submission.Confirm(ctx)
	if err != nil {
		os.Exit(1)
	}
	log.Printf("%s is now %s", updated.Company, updated.Status)
}
