package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
)

var drivers = []string{"memory", "sqlite"}

func newTestStorage(t *testing.T, driver string) *Storage {
	t.Helper()
	cfg := &model.Config{
		DatabaseType: driver,
		DatabaseDir:  t.TempDir(),
		DatabaseFile: "test.db",
		KeyPrefix:    "ironpulse",
	}
	s, err := NewStorage(cfg, log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func forEachDriver(t *testing.T, fn func(t *testing.T, s *Storage)) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			fn(t, newTestStorage(t, driver))
		})
	}
}

func account(username, password string) model.StoredAccount {
	return model.StoredAccount{
		Profile: model.UserProfile{
			Username:      username,
			Email:         username + "@example.com",
			Goal:          model.GoalFitness,
			ActivityLevel: model.ActivityModerate,
			JoinedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Password: password,
	}
}

func hydration(id string, ts time.Time, ml int) model.HydrationEntry {
	return model.HydrationEntry{EntryBase: model.EntryBase{ID: id, Timestamp: ts, Type: model.EntryHydration}, AmountMl: ml}
}

func TestKeys(t *testing.T) {
	k := Keys{Prefix: "ironpulse"}
	assert.Equal(t, "ironpulse_auth", k.Auth())
	assert.Equal(t, "ironpulse_users", k.Users())
	assert.Equal(t, "ironpulse_entries_alice", k.Entries("alice"))
}

func TestUserAddRejectsDuplicate(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		require.NoError(t, s.UserAdd(account("alice", "pw")))
		err := s.UserAdd(account("alice", "pw2"))
		assert.ErrorIs(t, err, ErrUserExists)

		got, err := s.UserGet("alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "pw", got.Password)

		missing, err := s.UserGet("bob")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestUserUpdateMissingIsNoop(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		found, err := s.UserUpdate(model.UserProfile{Username: "ghost", Weight: 80})
		require.NoError(t, err)
		assert.False(t, found)

		users, err := s.UsersGet()
		require.NoError(t, err)
		assert.Empty(t, users)

		found, err = s.ProfileSave(model.UserProfile{Username: "ghost", Weight: 80})
		require.NoError(t, err)
		assert.False(t, found)

		auth, err := s.AuthGet()
		require.NoError(t, err)
		assert.False(t, auth.IsAuthenticated)
	})
}

func TestProfileSaveWritesRegistryAndAuth(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		require.NoError(t, s.AccountCreate(account("alice", "pw"), true))

		profile := account("alice", "").Profile
		profile.Weight = 72.5
		profile.OnboardingCompleted = true
		found, err := s.ProfileSave(profile)
		require.NoError(t, err)
		assert.True(t, found)

		stored, err := s.UserGet("alice")
		require.NoError(t, err)
		assert.Equal(t, profile, stored.Profile)
		assert.Equal(t, "pw", stored.Password)

		auth, err := s.AuthGet()
		require.NoError(t, err)
		assert.True(t, auth.IsAuthenticated)
		require.NotNil(t, auth.User)
		assert.Equal(t, profile, *auth.User)
	})
}

func TestAccountCreateRollsBackOnDuplicate(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		require.NoError(t, s.AccountCreate(account("alice", "pw"), false))
		assert.ErrorIs(t, s.AccountCreate(account("alice", "other"), true), ErrUserExists)

		auth, err := s.AuthGet()
		require.NoError(t, err)
		assert.False(t, auth.IsAuthenticated)
	})
}

func TestAuthClear(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		p := account("alice", "pw").Profile
		require.NoError(t, s.AuthSet(&p))
		require.NoError(t, s.AuthClear())

		auth, err := s.AuthGet()
		require.NoError(t, err)
		assert.False(t, auth.IsAuthenticated)
		assert.Nil(t, auth.User)
	})
}

func TestEntryAppendOrdersNewestFirst(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		ts := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		empty, err := s.EntriesGet("alice")
		require.NoError(t, err)
		assert.Empty(t, empty)

		for i, id := range []string{"e1", "e2", "e3"} {
			_, err := s.EntryAppend("alice", hydration(id, ts.Add(time.Duration(i)*time.Minute), 250))
			require.NoError(t, err)
		}

		list, err := s.EntriesGet("alice")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "e3", list[0].EntryID())
		assert.Equal(t, "e2", list[1].EntryID())
		assert.Equal(t, "e1", list[2].EntryID())

		other, err := s.EntriesGet("bob")
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestEntryDelete(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		shared := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		later := shared.Add(time.Hour)
		for _, e := range []model.Entry{hydration("a", shared, 100), hydration("b", shared, 200), hydration("c", later, 300)} {
			_, err := s.EntryAppend("alice", e)
			require.NoError(t, err)
		}

		// by id removes only that entry even when its timestamp is shared
		list, ok, err := s.EntryDelete("alice", "b")
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, list, 2)

		_, ok, err = s.EntryDelete("alice", "zzz")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = s.EntryAppend("alice", hydration("d", shared, 400))
		require.NoError(t, err)

		// by timestamp removes every entry with that timestamp
		list, n, err := s.EntryDeleteByTimestamp("alice", shared)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, list, 1)
		assert.Equal(t, "c", list[0].EntryID())

		stored, err := s.EntriesGet("alice")
		require.NoError(t, err)
		assert.Equal(t, list, stored)
	})
}

func TestEntriesMergeAndClear(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		t1 := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
		_, err := s.EntryAppend("alice", hydration("a", t1.Add(time.Hour), 100))
		require.NoError(t, err)

		added, err := s.EntriesMerge("alice", model.EntryList{
			hydration("a", t1.Add(time.Hour), 100),
			hydration("b", t1.Add(2*time.Hour), 200),
			hydration("c", t1, 300),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		list, err := s.EntriesGet("alice")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].EntryID(), list[1].EntryID(), list[2].EntryID()})

		require.NoError(t, s.EntryClear("alice"))
		list, err = s.EntriesGet("alice")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestCorruptRecordsReadAsAbsent(t *testing.T) {
	forEachDriver(t, func(t *testing.T, s *Storage) {
		db := s.GetDatabase()
		require.NoError(t, db.Put(s.Keys().Users(), []byte("{not json")))
		require.NoError(t, db.Put(s.Keys().Auth(), []byte("[]")))
		require.NoError(t, db.Put(s.Keys().Entries("alice"), []byte(`[{"type":"teleport"}]`)))

		users, err := s.UsersGet()
		require.NoError(t, err)
		assert.Empty(t, users)

		auth, err := s.AuthGet()
		require.NoError(t, err)
		assert.False(t, auth.IsAuthenticated)

		list, err := s.EntriesGet("alice")
		require.NoError(t, err)
		assert.Empty(t, list)

		// a fresh write replaces the corrupt record
		require.NoError(t, s.UserAdd(account("alice", "pw")))
		got, err := s.UserGet("alice")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.Config{DatabaseType: "sqlite", DatabaseDir: dir, DatabaseFile: "ironpulse.db", KeyPrefix: "ironpulse"}

	s, err := NewStorage(cfg, log.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.UserAdd(account("alice", "pw")))
	_, err = s.EntryAppend("alice", hydration("a", time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC), 250))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.FileExists(t, filepath.Join(dir, "ironpulse.db"))

	s, err = NewStorage(cfg, log.NewNop())
	require.NoError(t, err)
	defer s.Close()

	got, err := s.UserGet("alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	list, err := s.EntriesGet("alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNewStorageRejectsUnknownDriver(t *testing.T) {
	_, err := NewStorage(&model.Config{DatabaseType: "postgres"}, log.NewNop())
	assert.Error(t, err)
}

func TestMemoryRollback(t *testing.T) {
	db := NewMemoryDatabase(log.NewNop())
	require.NoError(t, db.Put("k", []byte("v1")))
	require.NoError(t, db.Begin())
	require.NoError(t, db.Put("k", []byte("v2")))
	require.NoError(t, db.Put("n", []byte("new")))
	require.NoError(t, db.Rollback())

	v, ok, err := db.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), v)
	_, ok, _ = db.Get("n")
	assert.False(t, ok)

	assert.ErrorIs(t, db.Commit(), ErrNoTransaction)
}
