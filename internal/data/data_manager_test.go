package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/onboarding"
	"ironpulse/local-app/internal/storage"
	"ironpulse/local-app/internal/units"
)

func testConfig() *model.Config {
	return &model.Config{
		DatabaseType:      "memory",
		KeyPrefix:         "ironpulse",
		DefaultWeightKg:   75,
		QuickHydrationMl:  250,
		HydrationTargetMl: 2500,
	}
}

func newTestDataManager(t *testing.T) (*DataManager, *storage.Storage) {
	t.Helper()
	cfg := testConfig()
	s, err := storage.NewStorage(cfg, log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	m, err := NewDataManagerFromStorage(s, cfg, log.NewNop())
	require.NoError(t, err)
	return m, s
}

// fixedClock makes every new entry share one timestamp
func fixedClock(m *DataManager, ts time.Time) {
	m.EntryManager.now = func() time.Time { return ts }
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	m, _ := newTestDataManager(t)

	p, err := m.AccountManager.Register("alice", "alice@example.com", "pw")
	require.NoError(t, err)
	assert.True(t, Registered(err))
	assert.Equal(t, model.ActivityModerate, p.ActivityLevel)
	assert.Equal(t, model.GoalFitness, p.Goal)
	assert.False(t, p.OnboardingCompleted)
	assert.False(t, p.JoinedAt.IsZero())

	_, err = m.AccountManager.Register("alice", "other@example.com", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.False(t, Registered(err))

	_, err = m.AccountManager.Login("alice", "pw2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	got, err := m.AccountManager.Login("alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestRegisterRequiresFields(t *testing.T) {
	m, _ := newTestDataManager(t)
	_, err := m.AccountManager.Register("  ", "x@example.com", "pw")
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	_, err = m.AccountManager.Register("bob", "x@example.com", "")
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	m, _ := newTestDataManager(t)
	_, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)
	require.NoError(t, m.AccountManager.Logout("alice"))

	p, err := m.AccountManager.Login("alice", "wrong")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	p, err = m.AccountManager.Login("nobody", "pw")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	current, err := m.AccountManager.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestRegisterLogsIn(t *testing.T) {
	m, _ := newTestDataManager(t)
	_, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)

	current, err := m.AccountManager.CurrentUser()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "alice", current.Username)

	require.NoError(t, m.AccountManager.Logout("alice"))
	current, err = m.AccountManager.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestUpdateUnknownUserIsNoop(t *testing.T) {
	m, s := newTestDataManager(t)
	found, err := m.AccountManager.Update(model.UserProfile{Username: "ghost", Weight: 80})
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := m.AccountManager.Exists("ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	auth, err := s.AuthGet()
	require.NoError(t, err)
	assert.False(t, auth.IsAuthenticated)
}

func TestProfileUpdateUnknownUserLogsNothing(t *testing.T) {
	m, s := newTestDataManager(t)

	ghost := model.UserProfile{Username: "ghost", Height: 180}
	heavier := ghost
	heavier.Weight = 80
	err := m.ProfileUpdate(ghost, heavier)
	assert.ErrorIs(t, err, ErrNotFound)

	err = m.OnboardingComplete(model.UserProfile{Username: "ghost2", Height: 170, Weight: 70})
	assert.ErrorIs(t, err, ErrNotFound)

	for _, name := range []string{"ghost", "ghost2"} {
		entries, err := s.EntriesGet(name)
		require.NoError(t, err)
		assert.Empty(t, entries, name)

		exists, err := m.AccountManager.Exists(name)
		require.NoError(t, err)
		assert.False(t, exists, name)
	}
}

func TestProfileUpdateKeepsRegistryAndSessionInStep(t *testing.T) {
	m, s := newTestDataManager(t)
	p, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)

	updated := *p
	updated.Email = "new@example.com"
	updated.Height = 180
	updated.Weight = 80
	require.NoError(t, m.ProfileUpdate(*p, updated))

	stored, err := s.UserGet("alice")
	require.NoError(t, err)
	current, err := m.AccountManager.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, updated, stored.Profile)
	assert.Equal(t, updated, *current)
	assert.Equal(t, "pw", stored.Password)
}

func TestProfileUpdateLogsWeightChanges(t *testing.T) {
	m, _ := newTestDataManager(t)
	p, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)

	v1 := *p
	v1.Height = 180
	v1.Weight = 80
	require.NoError(t, m.ProfileUpdate(*p, v1))

	// same weight again, e.g. only the email changed
	v2 := v1
	v2.Email = "a@example.com"
	require.NoError(t, m.ProfileUpdate(v1, v2))

	v3 := v2
	v3.Weight = 78.5
	require.NoError(t, m.ProfileUpdate(v2, v3))

	bio, err := m.EntryManager.EntryList("alice", model.EntryBiometrics)
	require.NoError(t, err)
	require.Len(t, bio, 2)
	assert.Equal(t, 78.5, bio[0].(model.BiometricEntry).Weight)
	assert.Equal(t, "24.2", bio[0].(model.BiometricEntry).BMI)
	assert.Equal(t, 80.0, bio[1].(model.BiometricEntry).Weight)
}

func TestProfileUpdateComparesWithLatestWeighIn(t *testing.T) {
	m, _ := newTestDataManager(t)
	p, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)

	// the profile already says 80 but the log has no weigh-in yet
	prev := *p
	prev.Weight = 80
	found, err := m.AccountManager.Update(prev)
	require.NoError(t, err)
	require.True(t, found)

	next := prev
	next.Age = 31
	require.NoError(t, m.ProfileUpdate(prev, next))

	bio, err := m.EntryManager.EntryList("alice", model.EntryBiometrics)
	require.NoError(t, err)
	assert.Len(t, bio, 1)
}

func TestProfileUpdateRejectsRename(t *testing.T) {
	m, _ := newTestDataManager(t)
	p, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)

	renamed := *p
	renamed.Username = "alicia"
	assert.ErrorIs(t, m.ProfileUpdate(*p, renamed), ErrUsernameImmutable)
}

func TestOnboardingCompleteSeedsWeighIn(t *testing.T) {
	m, s := newTestDataManager(t)
	p, err := m.AccountManager.Register("alice", "", "pw")
	require.NoError(t, err)

	flow := onboarding.NewFlow()
	require.NoError(t, flow.SetBasics(30, model.GenderFemale))
	require.NoError(t, flow.Next())
	require.NoError(t, flow.SetHeightFeetInches(5, 6))
	require.NoError(t, flow.SetWeight(150, units.Lbs))
	require.NoError(t, flow.Next())
	require.NoError(t, flow.SetGoals(model.ActivityLight, model.GoalLoss, 140))
	final, err := flow.Finish(*p)
	require.NoError(t, err)

	require.NoError(t, m.OnboardingComplete(final))

	stored, err := s.UserGet("alice")
	require.NoError(t, err)
	assert.True(t, stored.Profile.OnboardingCompleted)
	assert.Equal(t, 168.0, stored.Profile.Height)
	assert.Equal(t, 68.0, stored.Profile.Weight)
	assert.Equal(t, 63.5, stored.Profile.GoalWeight)

	entries, err := m.EntryManager.EntryList("alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	b := entries[0].(model.BiometricEntry)
	assert.Equal(t, 68.0, b.Weight)
	assert.Equal(t, "24.1", b.BMI)
}

func TestEntryOrderingAndFiltering(t *testing.T) {
	m, _ := newTestDataManager(t)
	user := &model.UserProfile{Username: "alice", Weight: 80}

	e1, err := m.EntryManager.HydrationAdd("alice", 0)
	require.NoError(t, err)
	assert.Equal(t, 250, e1.AmountMl)
	e2, err := m.EntryManager.WorkoutAdd(user, "Running", 30)
	require.NoError(t, err)
	assert.Equal(t, 392, e2.CaloriesBurned)
	assert.Equal(t, "running", e2.ExerciseType)
	e3, err := m.EntryManager.SleepAdd("alice", "22:00", "06:00")
	require.NoError(t, err)
	assert.Equal(t, 8.0, e3.DurationHours)
	assert.Equal(t, 5, e3.Cycles)

	list, err := m.EntryManager.EntryList("alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{e3.ID, e2.ID, e1.ID}, []string{list[0].EntryID(), list[1].EntryID(), list[2].EntryID()})

	water, err := m.EntryManager.EntryList("alice", model.EntryHydration)
	require.NoError(t, err)
	assert.Len(t, water, 1)
}

func TestWorkoutDefaultWeight(t *testing.T) {
	m, _ := newTestDataManager(t)
	w, err := m.EntryManager.WorkoutAdd(&model.UserProfile{Username: "alice"}, "running", 30)
	require.NoError(t, err)
	assert.Equal(t, 368, w.CaloriesBurned)

	_, err = m.EntryManager.WorkoutAdd(nil, "running", 30)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = m.EntryManager.WorkoutAdd(&model.UserProfile{Username: "alice"}, "running", 0)
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestEntryValidationErrors(t *testing.T) {
	m, _ := newTestDataManager(t)

	_, err := m.EntryManager.SleepAdd("alice", "22:00", "22:00")
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = m.EntryManager.SleepAdd("alice", "bed", "06:00")
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = m.EntryManager.HydrationAdd("alice", -100)
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = m.EntryManager.JournalAdd("alice", "  ", "content", "")
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	_, err = m.EntryManager.HydrationAdd("", 250)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	list, err := m.EntryManager.EntryList("alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryDelete(t *testing.T) {
	m, _ := newTestDataManager(t)
	ts := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(m, ts)

	a, err := m.EntryManager.HydrationAdd("alice", 250)
	require.NoError(t, err)
	_, err = m.EntryManager.HydrationAdd("alice", 500)
	require.NoError(t, err)
	j, err := m.EntryManager.JournalAdd("alice", "Rest day", "Stretching only", "calm")
	require.NoError(t, err)

	require.NoError(t, m.EntryManager.EntryDelete("alice", a.ID))
	assert.ErrorIs(t, m.EntryManager.EntryDelete("alice", a.ID), ErrNotFound)

	// the two remaining entries share a timestamp and are removed together
	n, err := m.EntryManager.EntryDeleteByTimestamp("alice", j.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := m.EntryManager.EntryList("alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryExportImport(t *testing.T) {
	m, _ := newTestDataManager(t)
	_, err := m.EntryManager.HydrationAdd("alice", 300)
	require.NoError(t, err)
	_, err = m.EntryManager.JournalAdd("alice", "Week 1", "Felt strong", "")
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "alice.json")
	n, err := m.EntryExport("alice", filename)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// importing into the same log adds nothing
	added, err := m.EntryImport("alice", filename)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	require.NoError(t, m.EntryManager.EntryPurge("alice"))
	added, err = m.EntryImport("alice", filename)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = m.EntryImport("bob", filename)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
}
