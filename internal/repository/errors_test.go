package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"pgx 23505", &pgconn.PgError{Code: "23505"}, true},
		{"pgx fk violation", &pgconn.PgError{Code: "23503"}, false},
		{"lib/pq 23505", &pq.Error{Code: "23505"}, true},
		{"wrapped pgx", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"sqlite message", errors.New("constraint failed: UNIQUE constraint failed: questions.dedupe_hash (2067)"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	if err := translate(gorm.ErrRecordNotFound); !errors.Is(err, ErrNotFound) {
		t.Errorf("translate(ErrRecordNotFound) = %v, want ErrNotFound", err)
	}
	if err := translate(gorm.ErrDuplicatedKey); !errors.Is(err, ErrDuplicate) {
		t.Errorf("translate(ErrDuplicatedKey) = %v, want ErrDuplicate", err)
	}
	boom := errors.New("boom")
	if err := translate(boom); err != boom {
		t.Errorf("translate(boom) = %v, want boom unchanged", err)
	}
}
