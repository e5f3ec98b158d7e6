package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-go/internal/game"
)

func sym(s string) []game.Symbol {
	out := make([]game.Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, game.Symbol(r))
	}
	return out
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves.db")
	store, err := Open(context.Background(), DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestStoreUpsertAndList(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	alice := game.Snapshot{Joueur: "alice", Mode: "Facile", Points: 2, LevelPoints: 2, Tables: sym("A**A"), Solution: sym("ABBA")}
	bob := game.Snapshot{Joueur: "bob", Level: 1, Mode: "Difficile", Points: 9, Tables: sym("****************")}

	require.NoError(t, store.Upsert(ctx, alice))
	require.NoError(t, store.Upsert(ctx, bob))

	saves, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, alice, saves[0])
	assert.Equal(t, "bob", saves[1].Joueur)
	assert.Nil(t, saves[1].Solution)

	// Saving again under the same name overwrites in place.
	alice.Points = 5
	alice.Tables = sym("ABBA")
	require.NoError(t, store.Upsert(ctx, alice))

	saves, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "alice", saves[0].Joueur)
	assert.Equal(t, 5, saves[0].Points)
	assert.Equal(t, sym("ABBA"), saves[0].Tables)
}

func TestStoreGetByIndex(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.Upsert(ctx, game.Snapshot{Joueur: name, Mode: "Facile", Tables: sym("****")}))
	}

	tests := []struct {
		name    string
		index   int
		want    string
		wantErr error
	}{
		{"First", 0, "a", nil},
		{"Last", 2, "c", nil},
		{"Past the end", 3, "", game.ErrSaveNotFound},
		{"Negative", -1, "", game.ErrSaveNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := store.GetByIndex(ctx, tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.Joueur)
		})
	}
}

func TestStoreEmpty(t *testing.T) {
	store, _ := openTestStore(t)

	saves, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saves)

	_, err = store.GetByIndex(context.Background(), 0)
	assert.ErrorIs(t, err, game.ErrSaveNotFound)
}

func TestStoreReopen(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, game.Snapshot{Joueur: "zed", Mode: "Facile", Tables: sym("****")}))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer reopened.Close()

	saves, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "zed", saves[0].Joueur)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "root@/memo")
	assert.Error(t, err)
}
