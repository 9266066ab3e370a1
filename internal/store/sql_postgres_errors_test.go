package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"plain error", errors.New("boom"), NonRetryable},
		{"bad conn", driver.ErrBadConn, Retryable},
		{"wrapped connection failure", fmt.Errorf("query: %w", pgError(pgerrcode.ConnectionFailure)), Retryable},
		{"unable to connect", pgError(pgerrcode.SQLClientUnableToEstablishSQLConnection), Retryable},
		{"serialization failure", pgError(pgerrcode.SerializationFailure), Retryable},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable},
		{"cannot connect now", pgError(pgerrcode.CannotConnectNow), Retryable},
		{"admin shutdown", pgError(pgerrcode.AdminShutdown), Retryable},
		{"unique violation", pgError(pgerrcode.UniqueViolation), NonRetryable},
		{"syntax error", pgError(pgerrcode.SyntaxError), NonRetryable},
		{"unknown code", pgError("XX999"), NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestDB_wrapError(t *testing.T) {
	db := &DB{errorClassificator: NewPostgresErrorClassifier()}

	assert.ErrorIs(t, db.wrapError(pgError(pgerrcode.DeadlockDetected)), ErrStoreUnavailable)

	err := db.wrapError(pgError(pgerrcode.CheckViolation))
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "unexpected DB error")
}
