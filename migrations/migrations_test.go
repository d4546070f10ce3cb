package migrations

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

// uuidArg matches any argument that parses as a UUID.
type uuidArg struct{}

func (uuidArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func TestOrderRevisionsSortsByPredecessor(t *testing.T) {
	revs := []Revision{
		{ID: "c", Revises: "b"},
		{ID: "a"},
		{ID: "b", Revises: "a"},
	}

	ordered, err := orderRevisions(revs)
	if err != nil {
		t.Fatalf("orderRevisions: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, rev := range ordered {
		if rev.ID != want[i] {
			t.Errorf("position %d = %q, want %q", i, rev.ID, want[i])
		}
	}
}

func TestOrderRevisionsRejectsFork(t *testing.T) {
	revs := []Revision{
		{ID: "a"},
		{ID: "b", Revises: "a"},
		{ID: "c", Revises: "a"},
	}
	if _, err := orderRevisions(revs); err == nil {
		t.Fatal("expected error for two revisions sharing a predecessor")
	}
}

func TestOrderRevisionsRejectsBrokenChain(t *testing.T) {
	revs := []Revision{
		{ID: "a"},
		{ID: "c", Revises: "missing"},
	}
	if _, err := orderRevisions(revs); err == nil {
		t.Fatal("expected error for a gap in the chain")
	}
}

func TestOrderRevisionsRejectsDuplicateID(t *testing.T) {
	revs := []Revision{
		{ID: "a"},
		{ID: "a", Revises: "a"},
	}
	if _, err := orderRevisions(revs); err == nil {
		t.Fatal("expected error for a duplicate revision id")
	}
}

// The registered chain must always form a single path.
func TestAllFormsSinglePath(t *testing.T) {
	ordered, err := orderRevisions(All)
	if err != nil {
		t.Fatalf("orderRevisions(All): %v", err)
	}
	if len(ordered) != len(All) {
		t.Fatalf("ordered %d revisions, want %d", len(ordered), len(All))
	}
	if ordered[0].ID != "001_initial" {
		t.Errorf("chain starts at %q, want 001_initial", ordered[0].ID)
	}
	if ordered[len(ordered)-1].ID != "005_customer_uuid" {
		t.Errorf("chain ends at %q, want 005_customer_uuid", ordered[len(ordered)-1].ID)
	}
}

func TestApplySkipsRecordedRevisions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied := sqlmock.NewRows([]string{"id"})
	for _, rev := range All {
		applied.AddRow(rev.ID)
	}
	mock.ExpectQuery("SELECT id FROM schema_migrations").WillReturnRows(applied)

	// Everything is recorded as applied, so no transaction may be opened.
	if err := Apply(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSalonSlugBackfill(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	// Column absent: add it nullable first.
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("salons", "slug").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("ALTER TABLE salons ADD COLUMN slug TEXT").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Two salons with the same name: the second gets the -1 suffix.
	mock.ExpectQuery("SELECT id, name FROM salons WHERE slug IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow("7a0e6d69-0001-4a7e-9e1e-000000000001", "Bella's Salon & Spa!!").
			AddRow("7a0e6d69-0002-4a7e-9e1e-000000000002", "Bella's Salon & Spa!!"))
	mock.ExpectExec("UPDATE salons SET slug").
		WithArgs("bella-s-salon-spa", "7a0e6d69-0001-4a7e-9e1e-000000000001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE salons SET slug").
		WithArgs("bella-s-salon-spa-1", "7a0e6d69-0002-4a7e-9e1e-000000000002").
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Only after every row has a value is the column tightened.
	mock.ExpectExec("ALTER TABLE salons ALTER COLUMN slug SET NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("salons", "idx_salons_slug").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE UNIQUE INDEX idx_salons_slug").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := salonSlug.Up(context.Background(), db); err != nil {
		t.Fatalf("salonSlug.Up: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Re-running the slug revision against a schema that already has the column
// and index must be a no-op, not an error.
func TestSalonSlugRevisionIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("salons", "slug").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	// Slugs assigned by the earlier run seed the uniqueness set.
	mock.ExpectQuery("SELECT slug FROM salons WHERE slug IS NOT NULL").
		WillReturnRows(sqlmock.NewRows([]string{"slug"}).AddRow("bella-s-salon-spa"))

	// No rows left to backfill.
	mock.ExpectQuery("SELECT id, name FROM salons WHERE slug IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	mock.ExpectExec("ALTER TABLE salons ALTER COLUMN slug SET NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("salons", "idx_salons_slug").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := salonSlug.Up(context.Background(), db); err != nil {
		t.Fatalf("salonSlug.Up rerun: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateTableSkippedWhenPresent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("widgets").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := createTable(context.Background(), db, "widgets", `CREATE TABLE widgets (id INT)`); err != nil {
		t.Fatalf("createTable: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSalonCustomersBackfill(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("salon_customers").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE salon_customers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX ix_salon_customers_salon_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX ix_salon_customers_customer_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Skeleton rows first, counters only after every pair exists.
	mock.ExpectExec(`(?s)INSERT INTO salon_customers.*DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("SET total_appointments").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("SET total_spent").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("SET last_interaction_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := salonCustomers.Up(context.Background(), db); err != nil {
		t.Fatalf("salonCustomers.Up: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// A rerun skips the structural work; the conflict-tolerant insert and the
// derived-counter updates recompute without duplicating links.
func TestSalonCustomersRevisionIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("salon_customers").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectExec(`(?s)INSERT INTO salon_customers.*DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SET total_appointments").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("SET total_spent").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("SET last_interaction_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := salonCustomers.Up(context.Background(), db); err != nil {
		t.Fatalf("salonCustomers.Up rerun: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCustomerUUIDBackfill(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("customers", "uuid").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("ALTER TABLE customers ADD COLUMN uuid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT id FROM customers WHERE uuid IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	// Each pending row gets its own generated identifier.
	mock.ExpectExec("UPDATE customers SET uuid").
		WithArgs(uuidArg{}, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE customers SET uuid").
		WithArgs(uuidArg{}, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// The constraint tightens only once no row is missing a value.
	mock.ExpectExec("ALTER TABLE customers ALTER COLUMN uuid SET NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("customers", "uq_customers_uuid").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE UNIQUE INDEX uq_customers_uuid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := customerUUID.Up(context.Background(), db); err != nil {
		t.Fatalf("customerUUID.Up: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCustomerUUIDRevisionIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("customers", "uuid").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	// Every customer already carries an identifier; nothing to rewrite.
	mock.ExpectQuery("SELECT id FROM customers WHERE uuid IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectExec("ALTER TABLE customers ALTER COLUMN uuid SET NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("customers", "uq_customers_uuid").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := customerUUID.Up(context.Background(), db); err != nil {
		t.Fatalf("customerUUID.Up rerun: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRollbackUndoesNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	applied := sqlmock.NewRows([]string{"id"})
	for _, rev := range All {
		applied.AddRow(rev.ID)
	}
	mock.ExpectQuery("SELECT id FROM schema_migrations").WillReturnRows(applied)

	mock.ExpectBegin()
	mock.ExpectExec("DROP INDEX IF EXISTS uq_customers_uuid").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE customers DROP COLUMN IF EXISTS uuid").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM schema_migrations").
		WithArgs("005_customer_uuid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Rollback(context.Background(), db, 1); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
