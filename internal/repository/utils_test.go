package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pointsbazaar/market-engine/internal/domain"
)

type stubTx struct {
	rollbackErr   error
	rollbackCalls int
}

func (s *stubTx) Commit(ctx context.Context) error { return nil }

func (s *stubTx) Rollback(ctx context.Context) error {
	s.rollbackCalls++
	return s.rollbackErr
}

func TestSafeRollback(t *testing.T) {
	tests := []struct {
		name        string
		rollbackErr error
	}{
		{name: "clean rollback"},
		{name: "already committed", rollbackErr: errors.New(domain.ErrMsgTxClosed)},
		{name: "rollback failure is swallowed", rollbackErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &stubTx{rollbackErr: tt.rollbackErr}

			SafeRollback(context.Background(), tx)

			assert.Equal(t, 1, tx.rollbackCalls)
		})
	}
}
