package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutmevents/internal/config"
	"cutmevents/internal/database"
	"cutmevents/internal/models"
)

func newTestDatabase(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() || os.Getenv("INTEGRATION") == "" {
		t.Skip("skipping mongo integration test; set INTEGRATION=1 to run")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	db := database.New(config.MongoConfig{URI: uri, Database: "cutm_events_test"})
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.EnsureIndexes(ctx))
	return db
}

func TestMongoRepositories(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	items := NewItemRepository(db)
	registrations := NewRegistrationRepository(db)
	applications := NewApplicationRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("items sorted by date and filtered", func(t *testing.T) {
		later := &models.Item{Type: models.ItemTypeWorkshop, Title: "Go 101", Description: "d", Location: "Hall A", Date: now.Add(48 * time.Hour), IsPublished: true, CreatedAt: now, UpdatedAt: now}
		sooner := &models.Item{Type: models.ItemTypeHackathon, Title: "HackCUTM", Description: "d", Location: "Lab", Date: now.Add(24 * time.Hour), IsPublished: false, CreatedAt: now, UpdatedAt: now}
		_, err := items.Create(ctx, later)
		require.NoError(t, err)
		_, err = items.Create(ctx, sooner)
		require.NoError(t, err)

		all, err := items.Find(ctx, models.ItemFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "HackCUTM", all[0].Title)

		workshops, err := items.Find(ctx, models.ItemFilter{Type: models.ItemTypeWorkshop})
		require.NoError(t, err)
		require.Len(t, workshops, 1)

		updated, err := items.Update(ctx, sooner.ID, bson.M{"title": "HackCUTM 2026"})
		require.NoError(t, err)
		assert.Equal(t, "HackCUTM 2026", updated.Title)

		_, err = items.Update(ctx, primitive.NewObjectID(), bson.M{"title": "x"})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, items.Delete(ctx, primitive.NewObjectID()), ErrNotFound)
	})

	t.Run("registrations joined with items", func(t *testing.T) {
		item := &models.Item{Type: models.ItemTypeEvent, Title: "Orientation", Description: "d", Location: "Auditorium", Date: now, IsPublished: true, CreatedAt: now, UpdatedAt: now}
		_, err := items.Create(ctx, item)
		require.NoError(t, err)

		reg := &models.Registration{
			ItemID:       item.ID,
			ItemType:     item.Type,
			Participants: []models.Participant{{Name: "A", Email: "a@x"}, {Name: "B", Email: "b@x"}},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		_, err = registrations.Create(ctx, reg)
		require.NoError(t, err)

		_, err = registrations.Create(ctx, &models.Registration{ItemID: item.ID, ItemType: item.Type})
		assert.ErrorIs(t, err, models.ErrParticipantCount)

		found, err := registrations.FindWithItems(ctx, &item.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.NotNil(t, found[0].Item)
		assert.Equal(t, "Orientation", found[0].Item.Title)
		assert.Len(t, found[0].Participants, 2)
	})

	t.Run("application status update", func(t *testing.T) {
		app := &models.Application{Type: models.ApplicationTypeMember, Name: "N", Email: "n@x", Status: models.StatusPending, CreatedAt: now, UpdatedAt: now}
		_, err := applications.Create(ctx, app)
		require.NoError(t, err)

		updated, err := applications.UpdateStatus(ctx, app.ID, models.StatusAccepted, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)

		accepted, err := applications.Find(ctx, models.ApplicationFilter{Status: models.StatusAccepted})
		require.NoError(t, err)
		assert.Len(t, accepted, 1)

		_, err = applications.UpdateStatus(ctx, primitive.NewObjectID(), models.StatusRejected, now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
