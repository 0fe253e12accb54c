package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonyspizza/infras/otel/mocks"
)

type result struct {
	affected int64
	err      error
}

func (r result) LastInsertId() (int64, error) { return 0, nil }

func (r result) RowsAffected() (int64, error) { return r.affected, r.err }

func TestRepository_RowsAffected(t *testing.T) {
	repo := &Repository[struct{}]{entity: "booking"}

	t.Run("reports the count", func(t *testing.T) {
		affected, err := repo.rowsAffected(mocks.NewScope(), "update data", result{affected: 1})

		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
	})

	t.Run("unknown count is an error", func(t *testing.T) {
		driverErr := errors.New("rows affected not supported")

		affected, err := repo.rowsAffected(mocks.NewScope(), "delete data", result{affected: -1, err: driverErr})

		require.ErrorIs(t, err, driverErr)
		assert.Zero(t, affected)
		assert.Contains(t, err.Error(), "failed to delete data (booking)")
	})
}
