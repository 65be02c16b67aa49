package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestArtistRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewArtistRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, debut_year FROM Artist WHERE id = ?")).
		WithArgs(model.ID(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "debut_year"}).AddRow(3, "Aurora", 2015))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, debut_year FROM Artist WHERE id = ?")).
		WithArgs(model.ID(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "debut_year"}))

	a, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if a != (model.Artist{ID: 3, Name: "Aurora", DebutYear: 2015}) {
		t.Fatalf("unexpected artist: %+v", a)
	}
	if _, err := repo.GetByID(context.Background(), 4); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("missing artist err = %v, want ErrArtistNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEventRepo_ListByArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewEventRepo(db)

	cols := []string{"id", "name", "group_id", "type_id", "type_name"}
	mock.ExpectQuery(`FROM Event e JOIN EventType t ON t.id = e.type_id WHERE e.group_id = \? ORDER BY e.id`).
		WithArgs(model.ID(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Spring Live", 1, 1, "concert").
			AddRow(2, "Meet & Greet", 1, 2, "fanmeeting"))
	mock.ExpectQuery(`WHERE e.group_id = \? AND t.type_name = \? ORDER BY e.id`).
		WithArgs(model.ID(1), "concert").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "Spring Live", 1, 1, "concert"))

	all, err := repo.ListByArtist(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("ListByArtist: %v", err)
	}
	if len(all) != 2 || all[1].TypeName != "fanmeeting" {
		t.Fatalf("unexpected events: %+v", all)
	}
	filtered, err := repo.ListByArtist(context.Background(), 1, "concert")
	if err != nil {
		t.Fatalf("ListByArtist filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Spring Live" {
		t.Fatalf("unexpected filtered events: %+v", filtered)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSubscriptionRepo_DetailsByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	repo := NewSubscriptionRepo(db)

	mock.ExpectQuery("FROM Subscription s JOIN Artist a").
		WithArgs(model.ID(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "course_name", "start_date", "end_date"}).
			AddRow(3, "Aurora", "Half Year", day(2024, 8, 1), day(2025, 1, 28)).
			AddRow(1, "Aurora", "Half Year", day(2024, 1, 1), day(2024, 6, 29)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM Subscription WHERE customer_id = ?")).
		WithArgs(model.ID(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	details, err := repo.DetailsByCustomer(context.Background(), 10)
	if err != nil {
		t.Fatalf("DetailsByCustomer: %v", err)
	}
	if len(details) != 2 || details[0].SubscriptionID != 3 || !details[1].EndDate.Equal(day(2024, 6, 29)) {
		t.Fatalf("unexpected details: %+v", details)
	}
	n, err := repo.CountByCustomer(context.Background(), 10)
	if err != nil || n != 2 {
		t.Fatalf("CountByCustomer = %d, %v", n, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !isDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"}) {
		t.Error("1062 not detected")
	}
	if isDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Error("foreign key error reported as duplicate")
	}
	if isDuplicateKey(errors.New("Error 1062")) {
		t.Error("plain error reported as duplicate")
	}
}
