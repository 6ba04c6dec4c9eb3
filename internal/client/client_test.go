package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/timeline"
)

func TestUpdateApplicationSendsSinglePatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		json.NewEncoder(w).Encode(application.Application{
			ID:     "app1",
			Status: application.StatusInterviewing,
		})
	}))
	defer srv.Close()

	status := application.StatusInterviewing
	stage := application.StageOnsite
	c := NewClient(srv.URL)
	updated, err := c.UpdateApplication(context.Background(), "app1", application.UpdateRq{
		Status:                &status,
		CurrentInterviewStage: &stage,
	})
	require.NoError(t, err)
	assert.Equal(t, application.StatusInterviewing, updated.Status)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/applications/app1", gotPath)

	// one atomic body: the status and its auxiliary field, nothing else
	assert.Equal(t, map[string]interface{}{
		"status":                  "Interviewing",
		"current_interview_stage": "Onsite",
	}, gotBody)
}

func TestUpdateApplicationOmitsUntouchedOfferFields(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		json.NewEncoder(w).Encode(application.Application{ID: "app1"})
	}))
	defer srv.Close()

	status := application.StatusOffer
	currency := "USD"
	salary := int64(155000)
	c := NewClient(srv.URL)
	_, err := c.UpdateApplication(context.Background(), "app1", application.UpdateRq{
		Status: &status,
		OfferDetails: &application.OfferDetails{
			BaseSalary:     &salary,
			SalaryCurrency: &currency,
		},
	})
	require.NoError(t, err)

	var details map[string]interface{}
	require.Contains(t, gotBody, "offer_details")
	require.NoError(t, json.Unmarshal(gotBody["offer_details"], &details))
	assert.Equal(t, map[string]interface{}{
		"base_salary":     float64(155000),
		"salary_currency": "USD",
	}, details, "absent fields never serialize as zero values")
}

func TestAddTimelineEventBody(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/applications/app1/timeline", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(timeline.Event{ID: "ev1", EventType: timeline.EventFollowUpSent})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	event, err := c.AddTimelineEvent(context.Background(), "app1", timeline.AddEventRq{
		EventType:   timeline.EventFollowUpSent,
		EventDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "pinged the recruiter",
	})
	require.NoError(t, err)
	assert.Equal(t, "ev1", event.ID)
	assert.Equal(t, "follow_up_sent", gotBody["event_type"])
	assert.NotContains(t, gotBody, "interview_stage")
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("404 is NotFoundError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).GetApplication(context.Background(), "missing")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "missing", nf.ID)
	})

	t.Run("4xx is ValidationError carrying the server message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode("interview stage is required")
		}))
		defer srv.Close()

		status := application.StatusInterviewing
		_, err := NewClient(srv.URL).UpdateApplication(context.Background(), "app1", application.UpdateRq{Status: &status})
		var v *ValidationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, "interview stage is required", v.Message)
	})

	t.Run("5xx is TransientError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Timeline(context.Background(), "app1")
		var tr *TransientError
		assert.ErrorAs(t, err, &tr)
	})

	t.Run("network failure is TransientError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		_, err := NewClient(srv.URL).GetApplication(context.Background(), "app1")
		var tr *TransientError
		require.ErrorAs(t, err, &tr)
		assert.Error(t, tr.Unwrap())
	})
}

func TestUpdateCertificationPosition(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateCertificationPosition(context.Background(), "cert2", 4)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/certifications/cert2", gotPath)
	assert.Equal(t, map[string]interface{}{"position": float64(4)}, gotBody)
}

func TestArchiveAndRestoreRoutes(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.Archive(context.Background(), "app1"))
	require.NoError(t, c.Restore(context.Background(), "app1"))
	assert.Equal(t, []string{
		"DELETE /applications/app1",
		"POST /applications/app1/restore",
	}, calls)
}
