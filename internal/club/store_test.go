package club_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	return store, db, dbTeardown
}

func TestUpsertUserByEmail(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	user, err := store.UpsertUserByEmail("serena@club.test", "Serena", "player")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 1200, user.Rating)
	assert.Equal(t, "beginner", user.Level)

	// A second login with the same email keeps the id and updates the role.
	again, err := store.UpsertUserByEmail("serena@club.test", "Serena W", "admin")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "admin", again.Role)
	assert.Equal(t, "Serena W", again.Name)
}

func TestUpsertUserByEmail_Validation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertUserByEmail("", "Nobody", "player")
	assert.ErrorIs(t, err, club.ErrInvalidInput)

	_, err = store.UpsertUserByEmail("x@club.test", "X", "superuser")
	assert.ErrorIs(t, err, club.ErrInvalidInput)
}

func TestCreateAndGetCourt(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	court, err := store.CreateCourt("Center Court", "clay", false)
	require.NoError(t, err)

	got, err := store.GetCourt(court.ID)
	require.NoError(t, err)
	assert.Equal(t, "Center Court", got.Name)
	assert.Equal(t, "clay", got.Surface)
	assert.True(t, got.IsActive)

	_, err = store.GetCourt("missing")
	assert.ErrorIs(t, err, club.ErrNotFound)

	_, err = store.CreateCourt("Court 2", "ice", false)
	assert.ErrorIs(t, err, club.ErrInvalidInput)
}

func TestListCourts(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreateCourt("Court B", "hard", true)
	require.NoError(t, err)
	_, err = store.CreateCourt("Court A", "grass", false)
	require.NoError(t, err)

	courts, err := store.ListCourts()
	require.NoError(t, err)
	require.Len(t, courts, 2)
	assert.Equal(t, "Court A", courts[0].Name, "courts should be ordered by name")
}

func TestEquipment(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	eq, err := store.CreateEquipment("Ball machine", "machine", 2, "book early")
	require.NoError(t, err)

	got, err := store.GetEquipment(eq.ID)
	require.NoError(t, err)
	assert.Equal(t, "machine", got.Category)
	assert.Equal(t, 2, got.Quantity)

	_, err = store.CreateEquipment("Mystery", "vehicle", 1, "")
	assert.ErrorIs(t, err, club.ErrInvalidInput)

	_, err = store.CreateEquipment("Broken", "balls", -1, "")
	assert.ErrorIs(t, err, club.ErrInvalidInput)
}

func TestSearchPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.UpsertUserByEmail("hannah@club.test", "Hannah Berg", "player")
	require.NoError(t, err)
	_, err = store.UpsertUserByEmail("carlos@club.test", "Carlos Ruiz", "player")
	require.NoError(t, err)
	_, err = store.UpsertUserByEmail("boss@club.test", "Hannah Admin", "admin")
	require.NoError(t, err)

	players, err := store.SearchPlayers("anna", "", 50)
	require.NoError(t, err)
	require.Len(t, players, 1, "fuzzy match should find players only")
	assert.Equal(t, "Hannah Berg", players[0].Name)

	all, err := store.SearchPlayers("", "", 50)
	require.NoError(t, err)
	assert.Len(t, all, 2, "admins are not part of the directory")
}

func TestLeaderboard(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	u1, err := store.UpsertUserByEmail("a@club.test", "Anders", "player")
	require.NoError(t, err)
	u2, err := store.UpsertUserByEmail("b@club.test", "Bea", "player")
	require.NoError(t, err)

	_, err = db.Exec("UPDATE users SET rating = 1500 WHERE id = ?", u2.ID)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE users SET rating = 1300 WHERE id = ?", u1.ID)
	require.NoError(t, err)

	board, err := store.Leaderboard("", 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Bea", board[0].Name, "highest rating first")
	assert.Equal(t, 1500, board[0].Rating)
}

func TestMatchResults(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p1, err := store.UpsertUserByEmail("p1@club.test", "P1", "player")
	require.NoError(t, err)
	p2, err := store.UpsertUserByEmail("p2@club.test", "P2", "player")
	require.NoError(t, err)

	_, err = store.CreateMatchResult(p1.ID, p2.ID, "someone-else", "6-4 6-4", "", time.Now())
	assert.ErrorIs(t, err, club.ErrInvalidInput)

	result, err := store.CreateMatchResult(p1.ID, p2.ID, p1.ID, "6-4 6-4", "", time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)

	results, err := store.ListMatchResults("")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestTournaments(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	start := time.Now()
	_, err := store.CreateTournament("Spring Open", "intermediate", start, start.AddDate(0, 0, 2), "annual")
	require.NoError(t, err)

	_, err = store.CreateTournament("Backwards Cup", "", start, start.Add(-time.Hour), "")
	assert.ErrorIs(t, err, club.ErrInvalidInput)

	tournaments, err := store.ListTournaments()
	require.NoError(t, err)
	require.Len(t, tournaments, 1)
	assert.Equal(t, "Spring Open", tournaments[0].Title)
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreateCourt("Court 1", "hard", false)
	require.NoError(t, err)
	store.Clear()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM courts").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
