package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

const testNS = "videocrew.test"

func newMockMongo(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func portfolioDoc(id, title string, order int, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "category", Value: "Commercial"},
		{Key: "thumbnail_url", Value: "https://cdn.example/" + title + ".jpg"},
		{Key: "video_url", Value: "https://cdn.example/" + title + ".mp4"},
		{Key: "display_order", Value: order},
		{Key: "metadata", Value: bson.D{{Key: "tags", Value: bson.A{"ad", "4k"}}}},
		{Key: "createdAt", Value: createdAt},
		{Key: "updatedAt", Value: createdAt},
	}
}

func TestPortfolioRepository_ListSortsByOrderThenNewest(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("sort", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		a, b := models.NewID(), models.NewID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
			portfolioDoc(a, "a", 0, created.Add(time.Hour)),
			portfolioDoc(b, "b", 0, created),
		))

		items, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, a, items[0].ID)
		require.NotNil(mt, items[0].Metadata)
		assert.Equal(mt, []string{"ad", "4k"}, items[0].Metadata.Tags)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		sort, ok := started.Command.Lookup("sort").DocumentOK()
		require.True(mt, ok, "find must carry a sort document")
		elems, err := sort.Elements()
		require.NoError(mt, err)
		require.Len(mt, elems, 2)
		assert.Equal(mt, "display_order", elems[0].Key())
		assert.Equal(mt, int64(1), elems[0].Value().AsInt64())
		assert.Equal(mt, "createdAt", elems[1].Key())
		assert.Equal(mt, int64(-1), elems[1].Value().AsInt64())
	})
}

func TestPortfolioRepository_ReorderIsOneOrderedBulkWrite(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("bulk", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		first, second := models.NewID(), models.NewID()
		ids := []string{second, first, second}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 3},
			bson.E{Key: "nModified", Value: 3},
		))

		require.NoError(mt, repo.Reorder(context.Background(), ids))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		assert.True(mt, started.Command.Lookup("ordered").Boolean())

		updates, err := started.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, updates, len(ids))
		for position, raw := range updates {
			doc := raw.Document()
			assert.Equal(mt, ids[position], doc.Lookup("q", "_id").StringValue())
			assert.Equal(mt, int64(position), doc.Lookup("u", "$set", "display_order").AsInt64())
		}
		assert.Nil(mt, mt.GetStartedEvent(), "reorder must be a single round trip")
	})

	mt.Run("empty order sends nothing", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		require.NoError(mt, repo.Reorder(context.Background(), nil))
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestPortfolioRepository_NotFound(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("get", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), models.NewID())
		assert.ErrorIs(mt, err, repository.ErrPortfolioItemNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		title := "new"
		_, err := repo.Update(context.Background(), models.NewID(), models.PortfolioPatch{Title: &title})
		assert.ErrorIs(mt, err, repository.ErrPortfolioItemNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), models.NewID())
		assert.ErrorIs(mt, err, repository.ErrPortfolioItemNotFound)
	})
}

func TestPortfolioRepository_UpdateSetsOnlySuppliedFields(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("partial", func(mt *mtest.T) {
		repo := NewPortfolioRepository(mt.DB)
		id := models.NewID()
		created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: portfolioDoc(id, "renamed", 2, created)},
		))

		title := "renamed"
		item, err := repo.Update(context.Background(), id, models.PortfolioPatch{Title: &title})
		require.NoError(mt, err)
		assert.Equal(mt, "renamed", item.Title)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		set, err := started.Command.Lookup("update", "$set").Document().Elements()
		require.NoError(mt, err)
		keys := make([]string, 0, len(set))
		for _, e := range set {
			keys = append(keys, e.Key())
		}
		assert.ElementsMatch(mt, []string{"title", "updatedAt"}, keys)
	})
}

func TestAdminUserRepository_CreateDuplicateEmail(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("duplicate", func(mt *mtest.T) {
		repo := NewAdminUserRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse())

		err := repo.Create(context.Background(), &models.AdminUser{Email: "admin@videocrew.io", PasswordHash: "hash"})
		assert.ErrorIs(mt, err, repository.ErrAdminUserExists)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewAdminUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		_, err := repo.GetByEmail(context.Background(), "nobody@videocrew.io")
		assert.ErrorIs(mt, err, repository.ErrAdminUserNotFound)
	})
}

func TestMediaRepository(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("duplicate filename", func(mt *mtest.T) {
		repo := NewMediaRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse())

		err := repo.Create(context.Background(), &models.MediaFile{Filename: "1700000000000-abc.png"})
		assert.ErrorIs(mt, err, repository.ErrMediaFilenameExists)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMediaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		media := &models.MediaFile{Filename: "1700000000000-abc.png"}
		require.NoError(mt, repo.Create(context.Background(), media))
		assert.True(mt, models.IsValidID(media.ID))
		assert.False(mt, media.CreatedAt.IsZero())
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMediaRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), models.NewID())
		assert.ErrorIs(mt, err, repository.ErrMediaFileNotFound)
	})
}

func TestContactRepository(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("list newest first", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		inquiries, err := repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, inquiries)
		assert.Empty(mt, inquiries)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, int64(-1), started.Command.Lookup("sort", "createdAt").AsInt64())
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewContactRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		status := models.ContactStatusCompleted
		_, err := repo.Update(context.Background(), models.NewID(), models.ContactPatch{Status: &status})
		assert.ErrorIs(mt, err, repository.ErrContactInquiryNotFound)
	})
}
