package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"coinnecta/internal/config"
	"coinnecta/internal/database"
	"coinnecta/internal/logger"
	"coinnecta/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewConnection(database.Options{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}, logger.Discard())
	require.NoError(t, err)
	return db
}

func TestStateRepository_GetMissing(t *testing.T) {
	repo := NewStateRepository(newTestDB(t))

	_, err := repo.Get(context.Background(), "coinnecta_data_v5")
	assert.True(t, errors.Is(err, ErrStateNotFound))
}

func TestStateRepository_PutOverwrites(t *testing.T) {
	repo := NewStateRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte(`{"v":1}`)))
	require.NoError(t, repo.Put(ctx, "k", []byte(`{"v":2}`)))
	require.NoError(t, repo.Put(ctx, "other", []byte(`{}`)))

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestAuditRepository_LogAndList(t *testing.T) {
	repo := NewAuditRepository(newTestDB(t))
	ctx := context.Background()

	for _, action := range []string{model.ActionCreateProduct, model.ActionCreateImport, model.ActionDeleteProduct} {
		require.NoError(t, repo.Log(ctx, &model.AuditLog{Action: action, EntityID: "x"}))
	}

	logs, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.NotEmpty(t, logs[0].ID)
}

func TestTransactionManager_RollsBack(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactionManager(db)
	states := NewStateRepository(db)
	audits := NewAuditRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := states.Put(txCtx, "k", []byte(`{}`)); err != nil {
			return err
		}
		if err := audits.Log(txCtx, &model.AuditLog{Action: model.ActionCreateImport}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = states.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrStateNotFound))
	_, total, err := audits.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestTransactionManager_Commits(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactionManager(db)
	states := NewStateRepository(db)
	ctx := context.Background()

	require.NoError(t, tx.RunInTx(ctx, func(txCtx context.Context) error {
		return tx.RunInTx(txCtx, func(inner context.Context) error {
			return states.Put(inner, "k", []byte(`{"ok":true}`))
		})
	}))

	got, err := states.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got))
}
