package application

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Editing notes is one of the actions that writes its system event as a side
// effect: the row update and the note_added insert commit together.
func TestUpdateNotesAppendsNoteAddedEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE application SET notes").
		WithArgs("spoke to the hiring manager", "app1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO timeline_event").
		WithArgs(sqlmock.AnyArg(), "app1", eventNoteAdded).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewRepository(db)
	require.NoError(t, repo.UpdateNotes("app1", "spoke to the hiring manager"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotesRollsBackWhenEventInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE application SET notes").
		WithArgs("lost notes", "app1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO timeline_event").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewRepository(db)
	require.Error(t, repo.UpdateNotes("app1", "lost notes"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
