package sqlerr

import (
	"net/http"
	"testing"

	"github.com/edustack/admin-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"22P02", InvalidTextRepresentation},
		{"40001", SerializationFailure},
		{"40P01", DeadlockDetected},
		{"99999", Other},
	}

	for _, tt := range tests {
		t.Run(tt.sqlstate, func(t *testing.T) {
			if got := MapCode(tt.sqlstate); got != tt.want {
				t.Errorf("MapCode(%q) = %v, want %v", tt.sqlstate, got, tt.want)
			}
		})
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table   string
		errType Code
		want    string
	}{
		{"causes", UniqueViolation, "CAUSE_ALREADY_EXISTS"},
		{"users", ForeignKeyViolation, "USER_NOT_FOUND"},
		{"lectures", NotNullViolation, "LECTURE_REQUIRED"},
		{"", UniqueViolation, "RECORD_ALREADY_EXISTS"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := generateErrorCode(tt.table, tt.errType); got != tt.want {
				t.Errorf("generateErrorCode(%q, %v) = %q, want %q", tt.table, tt.errType, got, tt.want)
			}
		})
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"users_email_key", "email"},
		{"organizations_name_key", "name"},
		{"unique_users_email", "email"},
		{"some_pkey_thing", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			if got := extractColumnForUniqueViolation(tt.constraint); got != tt.want {
				t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", tt.constraint, got, tt.want)
			}
		})
	}
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "USER_ALREADY_EXISTS" {
		t.Errorf("code = %q, want USER_ALREADY_EXISTS", httpErr.Code)
	}
}

func TestHandleErrorAnnotatedNoRows(t *testing.T) {
	err := HandleError(errors.Wrap(pgx.ErrNoRows, "table:causes: id 9"))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.Status)
	}
	if httpErr.Message != "Cause not found" {
		t.Errorf("message = %q, want %q", httpErr.Message, "Cause not found")
	}
}

func TestHandleErrorUnknownFallsBackTo500(t *testing.T) {
	err := HandleError(errors.New("socket closed"))

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", httpErr.Status)
	}
}
