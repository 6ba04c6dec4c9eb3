package database

import (
	"database/sql"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS application (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	slug VARCHAR(255) NOT NULL,
// 	company VARCHAR(255) NOT NULL,
// 	role VARCHAR(255) NOT NULL,
// 	status VARCHAR(20) NOT NULL,
// 	current_interview_stage VARCHAR(20),
// 	offer_details JSONB,
// 	rejection_details JSONB,
// 	is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
// 	notes TEXT NOT NULL DEFAULT '',
// 	archived_at TIMESTAMP,
// 	created_at TIMESTAMP NOT NULL,
// 	updated_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// )
//
// CREATE TABLE IF NOT EXISTS timeline_event (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	application_id CHAR(27) NOT NULL REFERENCES application(id),
// 	event_type VARCHAR(30) NOT NULL,
// 	event_date TIMESTAMP NOT NULL,
// 	description TEXT,
// 	interview_stage VARCHAR(20),
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// )
// CREATE INDEX timeline_event_application_idx ON timeline_event (application_id, event_date, created_at, id);
//
// CREATE TABLE IF NOT EXISTS certification (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	name VARCHAR(255) NOT NULL,
// 	issuer VARCHAR(255),
// 	issued_at TIMESTAMP,
// 	position INTEGER NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// )

// GetDbConn tries to establish a connection to postgres and returns the
// connection handler
func GetDbConn(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}
