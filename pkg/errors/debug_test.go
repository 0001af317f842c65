package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpExtractsPgconnFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "inventory_items_name_key",
		TableName:      "inventory_items",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, fmt.Errorf("insert item: %w", pgErr), "item name already exists")

	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "inventory_items_name_key" || dump.PGTable != "inventory_items" {
		t.Fatalf("unexpected pg fields %+v", dump)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
}

func TestDumpExtractsPqFields(t *testing.T) {
	err := fmt.Errorf("update: %w", &pq.Error{Code: "23514", Constraint: "inventory_items_quantity_check", Table: "inventory_items"})

	dump := Dump(err)
	if dump.PGCode != "23514" || dump.PGConstraint != "inventory_items_quantity_check" {
		t.Fatalf("unexpected pq fields %+v", dump)
	}
	if dump.Code != "" {
		t.Fatalf("untyped error should not carry a code, got %s", dump.Code)
	}
}

func TestDumpNil(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" || d.Chain != nil {
		t.Fatalf("expected empty dump, got %+v", d)
	}
}
