package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/certification"
	"github.com/applytrack/applytrack/internal/server"
	"github.com/applytrack/applytrack/internal/timeline"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
)

// free text coming from clients is plain text; anything that looks like
// markup is stripped before storage
var sanitizer = bluemonday.StrictPolicy()

const applicationsListCacheKey = "applications"

func applicationCacheKey(id string) string {
	return "application:" + id
}

// invalidateApplicationCache drops the cached reads a mutation makes stale.
// Never called before the mutation is confirmed.
func invalidateApplicationCache(svr server.Server, id string) {
	_ = svr.CacheDelete(applicationCacheKey(id))
	_ = svr.CacheDelete(applicationsListCacheKey)
}

func cachedJSON(svr server.Server, w http.ResponseWriter, key string) bool {
	body, ok := svr.CacheGet(key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return true
}

func cacheAndRespond(svr server.Server, w http.ResponseWriter, key string, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		svr.Log(err, "unable to marshal cached response")
		svr.JSON(w, http.StatusInternalServerError, nil)
		return
	}
	if err := svr.CacheSet(key, body); err != nil {
		svr.Log(err, "unable to save response in cache")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

type applicationGetter interface {
	GetByID(id string) (application.Application, error)
}

type applicationLister interface {
	List() ([]application.Application, error)
}

func CreateApplicationHandler(svr server.Server, appRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := application.CreateRq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if req.Company == "" || req.Role == "" {
			svr.JSON(w, http.StatusBadRequest, "company and role are required")
			return
		}
		req.Notes = sanitizer.Sanitize(req.Notes)
		app, err := appRepo.Create(req)
		if err != nil {
			svr.Log(err, "unable to create application")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		invalidateApplicationCache(svr, app.ID)
		svr.JSON(w, http.StatusCreated, app)
	}
}

func ListApplicationsHandler(svr server.Server, appRepo applicationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cachedJSON(svr, w, applicationsListCacheKey) {
			return
		}
		apps, err := appRepo.List()
		if err != nil {
			svr.Log(err, "unable to list applications")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		cacheAndRespond(svr, w, applicationsListCacheKey, apps)
	}
}

func GetApplicationHandler(svr server.Server, appRepo applicationGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		if cachedJSON(svr, w, applicationCacheKey(vars["id"])) {
			return
		}
		app, err := appRepo.GetByID(vars["id"])
		if errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve application")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		cacheAndRespond(svr, w, applicationCacheKey(vars["id"]), app)
	}
}

// UpdateApplicationHandler applies a partial update. A body carrying status
// is a lifecycle transition and commits status plus its captured payload in
// one transaction; bodies without status update notes, pin or detail cards
// independently.
func UpdateApplicationHandler(svr server.Server, appRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["id"]
		req := application.UpdateRq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}

		if req.Status != nil {
			if !req.Status.IsValid() {
				svr.JSON(w, http.StatusBadRequest, "unknown status")
				return
			}
			if *req.Status == application.StatusInterviewing &&
				(req.CurrentInterviewStage == nil || !req.CurrentInterviewStage.IsValid()) {
				svr.JSON(w, http.StatusBadRequest, "an interview stage is required to move to Interviewing")
				return
			}
			app, err := appRepo.ApplyTransition(id, req)
			if errors.Is(err, sql.ErrNoRows) {
				svr.JSON(w, http.StatusNotFound, "application not found")
				return
			}
			var invalid *application.InvalidTransitionError
			if errors.As(err, &invalid) {
				svr.JSON(w, http.StatusBadRequest, invalid.Error())
				return
			}
			if err != nil {
				svr.Log(err, "unable to apply transition")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
			invalidateApplicationCache(svr, id)
			svr.JSON(w, http.StatusOK, app)
			return
		}

		if req.CurrentInterviewStage != nil {
			svr.JSON(w, http.StatusBadRequest, "current_interview_stage can only be set by a status transition")
			return
		}
		if _, err := appRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		if req.Notes != nil {
			if err := appRepo.UpdateNotes(id, sanitizer.Sanitize(*req.Notes)); err != nil {
				svr.Log(err, "unable to update notes")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
		}
		if req.IsPinned != nil {
			if err := appRepo.SetPinned(id, *req.IsPinned); err != nil {
				svr.Log(err, "unable to update pin")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
		}
		if req.OfferDetails != nil {
			if err := appRepo.UpdateOfferDetails(id, *req.OfferDetails); err != nil {
				svr.Log(err, "unable to update offer details")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
		}
		if req.RejectionDetails != nil {
			if err := appRepo.UpdateRejectionDetails(id, *req.RejectionDetails); err != nil {
				svr.Log(err, "unable to update rejection details")
				svr.JSON(w, http.StatusInternalServerError, nil)
				return
			}
		}
		invalidateApplicationCache(svr, id)
		app, err := appRepo.GetByID(id)
		if err != nil {
			svr.Log(err, "unable to retrieve application after update")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusOK, app)
	}
}

func GetTimelineHandler(svr server.Server, appRepo applicationGetter, timelineRepo *timeline.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["id"]
		if _, err := appRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		events, err := timelineRepo.EventsForApplication(id)
		if err != nil {
			svr.Log(err, "unable to retrieve timeline")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusOK, events)
	}
}

// AddTimelineEventHandler appends a manual entry to the ledger. Only the
// user-addable event types come through here; there is no edit or delete
// counterpart anywhere.
func AddTimelineEventHandler(svr server.Server, appRepo applicationGetter, timelineRepo *timeline.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["id"]
		req := timeline.AddEventRq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if !req.EventType.IsUserAddable() {
			svr.JSON(w, http.StatusBadRequest, "event type cannot be added manually")
			return
		}
		if req.EventDate.IsZero() {
			svr.JSON(w, http.StatusBadRequest, "event date is required")
			return
		}
		if req.InterviewStage != nil && !req.InterviewStage.IsValid() {
			svr.JSON(w, http.StatusBadRequest, "unknown interview stage")
			return
		}
		if _, err := appRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		req.Description = sanitizer.Sanitize(req.Description)
		event, err := timelineRepo.AddManualEvent(id, req)
		if err != nil {
			svr.Log(err, "unable to add timeline event")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusCreated, event)
	}
}

func ArchiveApplicationHandler(svr server.Server, appRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["id"]
		if _, err := appRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		if err := appRepo.Archive(id); err != nil {
			svr.Log(err, "unable to archive application")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		invalidateApplicationCache(svr, id)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"status": "archived"})
	}
}

func RestoreApplicationHandler(svr server.Server, appRepo *application.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["id"]
		if _, err := appRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "application not found")
			return
		}
		if err := appRepo.Restore(id); err != nil {
			svr.Log(err, "unable to restore application")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		invalidateApplicationCache(svr, id)
		svr.JSON(w, http.StatusOK, map[string]interface{}{"status": "restored"})
	}
}

func ListCertificationsHandler(svr server.Server, certRepo *certification.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certs, err := certRepo.List()
		if err != nil {
			svr.Log(err, "unable to list certifications")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusOK, certs)
	}
}

func CreateCertificationHandler(svr server.Server, certRepo *certification.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Name   string `json:"name"`
			Issuer string `json:"issuer,omitempty"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if req.Name == "" {
			svr.JSON(w, http.StatusBadRequest, "name is required")
			return
		}
		cert, err := certRepo.Create(req.Name, req.Issuer)
		if err != nil {
			svr.Log(err, "unable to create certification")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusCreated, cert)
	}
}

func UpdateCertificationHandler(svr server.Server, certRepo *certification.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		req := struct {
			Position *int `json:"position"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			svr.JSON(w, http.StatusBadRequest, "request is invalid")
			return
		}
		if req.Position == nil || *req.Position < 0 {
			svr.JSON(w, http.StatusBadRequest, "a non-negative position is required")
			return
		}
		err := certRepo.UpdatePosition(vars["id"], *req.Position)
		if errors.Is(err, sql.ErrNoRows) {
			svr.JSON(w, http.StatusNotFound, "certification not found")
			return
		}
		if err != nil {
			svr.Log(err, "unable to update certification position")
			svr.JSON(w, http.StatusInternalServerError, nil)
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
	}
}
