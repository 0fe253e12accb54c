package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonyspizza/infras/otel/mocks"
	"tonyspizza/infras/postgres"
	"tonyspizza/internal/domains/booking/model"
	"tonyspizza/internal/domains/booking/repository"
	userModel "tonyspizza/internal/domains/user/model"
	userRepo "tonyspizza/internal/domains/user/repository"
	"tonyspizza/shared"
	gDto "tonyspizza/shared/dto"
	gModel "tonyspizza/shared/model"
	gRepo "tonyspizza/shared/repository"
)

const (
	owner    = "8b7c8c4e-3f7a-4a55-9a53-8f0c3f0c0a01"
	intruder = "1d7e4d44-7a0b-4d8e-bb0c-7f4a1b2c3d4e"
	table3   = "00000000-0000-4000-8000-000000000003"
	table7   = "00000000-0000-4000-8000-000000000007"
)

// newConnection runs the postgres migrations against an in-memory sqlite database.
func newConnection(t *testing.T) *postgres.Connection {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join("..", "..", "..", "..", "migrations", "postgres", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	slices.Sort(files)

	for _, file := range files {
		script, err := os.ReadFile(file)
		require.NoError(t, err)

		_, err = db.Exec(string(script))
		require.NoError(t, err, file)
	}

	return &postgres.Connection{Read: db, Write: db}
}

func metadata(by string) gModel.Metadata {
	now := time.Now().UTC().Truncate(time.Second)

	return gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: by, ModifiedBy: by}
}

func seedUsers(t *testing.T, conn *postgres.Connection) {
	t.Helper()

	users := userRepo.New(conn, mocks.NewOtel())

	for id, username := range map[string]string{owner: "mario", intruder: "wario"} {
		err := users.Insert(context.Background(), userModel.User{
			ID:       id,
			Username: username,
			Password: "hash",
			Active:   true,
			Metadata: metadata("guest"),
		})
		require.NoError(t, err)
	}
}

func newBooking(id, userID, tableID, date, slot string) model.Booking {
	day, _ := time.Parse(time.DateOnly, date)

	return model.Booking{
		ID:        id,
		UserID:    userID,
		TableID:   tableID,
		Date:      day,
		Time:      slot,
		NumGuests: 2,
		Metadata:  metadata(userID),
	}
}

func setup(t *testing.T) (*postgres.Connection, repository.Booking) {
	t.Helper()

	conn := newConnection(t)
	seedUsers(t, conn)

	repo := repository.New(conn, mocks.NewOtel())
	ctx := context.Background()

	for _, booking := range []model.Booking{
		newBooking("b0000000-0000-4000-8000-000000000002", owner, table7, "2026-11-05", "8:00 PM"),
		newBooking("b0000000-0000-4000-8000-000000000001", owner, table3, "2026-11-03", "7:00 PM"),
		newBooking("b0000000-0000-4000-8000-000000000003", intruder, table3, "2026-11-01", "9:00 AM"),
	} {
		require.NoError(t, repo.Insert(ctx, booking))
	}

	return conn, repo
}

func ownerFilter(userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: userID, Table: model.TableName},
		},
	}
}

func TestBookingRepository_GetAllScopedToOwner(t *testing.T) {
	_, repo := setup(t)

	params := gDto.QueryParams{SortBy: model.FieldBookingDate, SortDir: gDto.SortDirAsc}

	bookings, err := repo.GetAll(context.Background(), params, ownerFilter(owner))
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, "2026-11-03", bookings[0].Date.Format(time.DateOnly))
	assert.Equal(t, 3, bookings[0].TableNumber)
	assert.Equal(t, "2026-11-05", bookings[1].Date.Format(time.DateOnly))
	assert.Equal(t, 7, bookings[1].TableNumber)

	for _, booking := range bookings {
		assert.Equal(t, owner, booking.UserID)
	}

	count, err := repo.Count(context.Background(), ownerFilter(owner))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBookingRepository_UnknownSortColumn(t *testing.T) {
	_, repo := setup(t)

	_, err := repo.GetAll(context.Background(), gDto.QueryParams{SortBy: "password", SortDir: gDto.SortDirAsc}, ownerFilter(owner))

	assert.ErrorIs(t, err, gRepo.ErrUnknownColumn)
}

func TestBookingRepository_OwnerScopedWrites(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()
	id := "b0000000-0000-4000-8000-000000000001"

	got, err := repo.Get(ctx, shared.FilterByOwner(id, intruder, model.TableName))
	require.NoError(t, err)
	assert.Empty(t, got.ID)

	changes := map[string]any{model.FieldNumGuests: 6}

	affected, err := repo.Update(ctx, changes, shared.FilterByOwner(id, intruder, model.TableName))
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, shared.FilterByOwner(id, intruder, model.TableName))
	require.NoError(t, err)
	assert.Zero(t, affected)

	got, err = repo.Get(ctx, shared.FilterByOwner(id, owner, model.TableName))
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumGuests)

	affected, err = repo.Update(ctx, changes, shared.FilterByOwner(id, owner, model.TableName))
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err = repo.Get(ctx, shared.FilterByOwner(id, owner, model.TableName))
	require.NoError(t, err)
	assert.Equal(t, 6, got.NumGuests)
	assert.Equal(t, owner, got.CreatedBy)

	affected, err = repo.Delete(ctx, shared.FilterByOwner(id, owner, model.TableName))
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	gone, err := repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	require.NoError(t, err)
	assert.Empty(t, gone.ID)
}

func TestBookingRepository_CascadeDelete(t *testing.T) {
	conn, repo := setup(t)
	ctx := context.Background()

	_, err := conn.Write.Exec("DELETE FROM dining_tables WHERE id = ?", table3)
	require.NoError(t, err)

	remaining, err := repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, table7, remaining[0].TableID)

	_, err = conn.Write.Exec("DELETE FROM users WHERE id = ?", owner)
	require.NoError(t, err)

	remaining, err = repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestBookingRepository_RejectsInvalidRows(t *testing.T) {
	_, repo := setup(t)
	ctx := context.Background()

	unknownTable := newBooking("b0000000-0000-4000-8000-000000000009", owner, "00000000-0000-4000-8000-000000000099", "2026-11-03", "7:00 PM")
	assert.Error(t, repo.Insert(ctx, unknownTable))

	noGuests := newBooking("b0000000-0000-4000-8000-000000000010", owner, table3, "2026-11-03", "7:00 PM")
	noGuests.NumGuests = 0
	assert.Error(t, repo.Insert(ctx, noGuests))
}
