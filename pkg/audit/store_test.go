package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := LedgerEvent{
		Actor:     "m",
		ClientIP:  "10.0.0.1",
		Operation: "payout_junior",
		From:      "pool:owner",
		To:        "a",
		Amount:    100000000,
		Success:   true,
	}

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(
			FacilityAuthPriv,  // facility
			int(SeverityInfo), // severity
			sqlmock.AnyArg(),  // timestamp
			sqlmock.AnyArg(),  // hostname
			"newsdesk",        // appname
			sqlmock.AnyArg(),  // procid
			"ledger",          // msgid
			sqlmock.AnyArg(),  // sdata (JSON)
			sqlmock.AnyArg(),  // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveWorkflowEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := WorkflowEvent{
		Actor:        "j",
		ClientIP:     "10.0.0.1",
		Entity:       "news",
		Operation:    "approve_news",
		ItemID:       1,
		Owner:        "a",
		ErrorMessage: "forbidden",
	}

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(
			FacilityLocal0,
			int(SeverityWarning),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			"newsdesk",
			sqlmock.AnyArg(),
			"news",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Save(event); err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)
	mock.ExpectExec(`INSERT INTO messages`).WillReturnError(errors.New("connection refused"))

	if err := store.Save(RegistryEvent{Actor: "owner", Operation: "create_admin", Success: true}); err == nil {
		t.Error("Save() expected error")
	}
}

func TestStoreNilDB(t *testing.T) {
	store := &Store{}
	if err := store.Save(RegistryEvent{Actor: "owner", Operation: "create_user", Success: true}); err != nil {
		t.Errorf("Save() with nil db error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() with nil db error = %v", err)
	}
}

func TestStoreClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	store := NewStoreWithDB(db)
	mock.ExpectClose()

	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"facility", "severity", "timestamp", "hostname", "appname", "procid", "msgid", "sdata", "message"}).
		AddRow(FacilityAuthPriv, int(SeverityInfo), ts, "host", "newsdesk", "42", "ledger",
			[]byte(`{"ledger@32473":{"amount":"5"}}`), "owner performed deposit of 5")
	mock.ExpectQuery(`SELECT (.+) FROM messages ORDER BY timestamp DESC LIMIT`).
		WithArgs(10).
		WillReturnRows(rows)

	messages, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Recent() returned %d messages, want 1", len(messages))
	}
	m := messages[0]
	if m.Msgid != "ledger" || m.Message != "owner performed deposit of 5" || !m.Timestamp.Equal(ts) {
		t.Errorf("unexpected message %+v", m)
	}
	ledger, ok := m.Sdata["ledger@32473"].(map[string]any)
	if !ok || ledger["amount"] != "5" {
		t.Errorf("unexpected sdata %v", m.Sdata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
