package main

import (
	"log"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/certification"
	"github.com/applytrack/applytrack/internal/config"
	"github.com/applytrack/applytrack/internal/database"
	"github.com/applytrack/applytrack/internal/handler"
	"github.com/applytrack/applytrack/internal/server"
	"github.com/applytrack/applytrack/internal/timeline"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)

	appRepo := application.NewRepository(conn)
	timelineRepo := timeline.NewRepository(conn)
	certRepo := certification.NewRepository(conn)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
	)

	// applications
	svr.RegisterRoute("/applications", handler.CreateApplicationHandler(svr, appRepo), []string{"POST"})
	svr.RegisterRoute("/applications", handler.ListApplicationsHandler(svr, appRepo), []string{"GET"})
	svr.RegisterRoute("/applications/{id}", handler.GetApplicationHandler(svr, appRepo), []string{"GET"})

	// lifecycle transitions and independent edits share the PATCH route
	svr.RegisterRoute("/applications/{id}", handler.UpdateApplicationHandler(svr, appRepo), []string{"PATCH"})

	// archive is a soft delete, reversible via restore
	svr.RegisterRoute("/applications/{id}", handler.ArchiveApplicationHandler(svr, appRepo), []string{"DELETE"})
	svr.RegisterRoute("/applications/{id}/restore", handler.RestoreApplicationHandler(svr, appRepo), []string{"POST"})

	// timeline ledger: append and read, never edit or delete
	svr.RegisterRoute("/applications/{id}/timeline", handler.GetTimelineHandler(svr, appRepo, timelineRepo), []string{"GET"})
	svr.RegisterRoute("/applications/{id}/timeline", handler.AddTimelineEventHandler(svr, appRepo, timelineRepo), []string{"POST"})

	// reorderable certification list
	svr.RegisterRoute("/certifications", handler.ListCertificationsHandler(svr, certRepo), []string{"GET"})
	svr.RegisterRoute("/certifications", handler.CreateCertificationHandler(svr, certRepo), []string{"POST"})
	svr.RegisterRoute("/certifications/{id}", handler.UpdateCertificationHandler(svr, certRepo), []string{"PATCH"})

	log.Fatal(svr.Run())
}
