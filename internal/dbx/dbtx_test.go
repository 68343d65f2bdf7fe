package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openState(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func keys(t *testing.T, db DBTX) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), `SELECT key FROM metadata ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		out = append(out, k)
	}
	require.NoError(t, rows.Err())
	return out
}

func put(ctx context.Context, db DBTX, key string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES (?, ?)`, key, []byte("{}"))
	return err
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "nope", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open nope")
}

func TestWithTx_Commit(t *testing.T) {
	db := openState(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := put(ctx, tx, "timer-storage"); err != nil {
			return err
		}
		return put(ctx, tx, "tkn_gzap")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"timer-storage", "tkn_gzap"}, keys(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := openState(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, put(ctx, tx, "timer-storage"))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, keys(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openState(t)

	require.Panics(t, func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, put(ctx, tx, "timer-storage"))
			panic("interrupted")
		})
	})
	assert.Empty(t, keys(t, db))
}

func TestWithTx_ClosedDB(t *testing.T) {
	db := openState(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
}
