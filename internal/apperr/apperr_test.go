package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "bad conn", err: driver.ErrBadConn, want: KindStorageUnavailable},
		{name: "wrapped deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: KindStorageUnavailable},
		{name: "constraint", err: errors.New("UNIQUE constraint failed"), want: KindInternal},
		{name: "already typed", err: NotFound("user 7 not found"), want: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Storage("failed to load", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}

	assert.NoError(t, Storage("noop", nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(KindStorageUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestPublicMessageHidesInternalCause(t *testing.T) {
	err := Storage("failed to scan user", errors.New("sql: column index out of range"))
	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Contains(t, err.Error(), "column index")

	assert.Equal(t, "user 3 not found", PublicMessage(NotFound("user %d not found", 3)))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("boom")))
}

func TestKindOfUntyped(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindValidation, KindOf(fmt.Errorf("wrap: %w", Validation("bad", nil))))
}
