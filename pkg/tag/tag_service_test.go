package tag_test

import (
	"context"
	"testing"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/testutil"
	"recipe-catalog/pkg/tag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecipe(t *testing.T, db *gorm.DB, userID uint, tags ...entities.Tag) entities.Recipe {
	t.Helper()

	recipe := entities.Recipe{UserID: userID, Title: "Sample", TimeMinutes: 5}
	require.NoError(t, db.Omit("Tags", "Ingredients").Create(&recipe).Error)
	if len(tags) > 0 {
		require.NoError(t, db.Model(&recipe).Association("Tags").Append(tags))
	}
	return recipe
}

func TestGetTags(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	service := tag.NewTagService(tag.NewTagRepository(db))
	ctx := context.Background()

	breakfast := entities.Tag{UserID: alice.ID, Name: "Breakfast"}
	lunch := entities.Tag{UserID: alice.ID, Name: "Lunch"}
	dinner := entities.Tag{UserID: alice.ID, Name: "Dinner"}
	require.NoError(t, db.Create(&[]*entities.Tag{&breakfast, &lunch, &dinner}).Error)
	require.NoError(t, db.Create(&entities.Tag{UserID: bob.ID, Name: "Fruity"}).Error)

	seedRecipe(t, db, alice.ID, breakfast)
	seedRecipe(t, db, alice.ID, breakfast, lunch)

	t.Run("all tags of the caller by name descending", func(t *testing.T) {
		tags, err := service.GetTags(ctx, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, []domain.TagResponse{
			{ID: lunch.ID, Name: "Lunch"},
			{ID: dinner.ID, Name: "Dinner"},
			{ID: breakfast.ID, Name: "Breakfast"},
		}, tags)
	})

	t.Run("assigned only is unique", func(t *testing.T) {
		tags, err := service.GetTags(ctx, alice.ID, true)
		require.NoError(t, err)
		assert.Equal(t, []domain.TagResponse{
			{ID: lunch.ID, Name: "Lunch"},
			{ID: breakfast.ID, Name: "Breakfast"},
		}, tags)
	})

	t.Run("empty catalogue is an empty list", func(t *testing.T) {
		carol := testutil.CreateUser(t, db, "carol@example.com")
		tags, err := service.GetTags(ctx, carol.ID, false)
		require.NoError(t, err)
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})
}

func TestTagLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	service := tag.NewTagService(tag.NewTagRepository(db))
	ctx := context.Background()

	created, isNew, err := service.CreateTag(ctx, alice.ID, domain.TagRequest{Name: " Dessert "})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "Dessert", created.Name)

	again, isNew, err := service.CreateTag(ctx, alice.ID, domain.TagRequest{Name: "Dessert"})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, again.ID)

	_, _, err = service.CreateTag(ctx, alice.ID, domain.TagRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	t.Run("other users cannot see or change it", func(t *testing.T) {
		_, err := service.GetTagByID(ctx, bob.ID, created.ID)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
		_, err = service.UpdateTag(ctx, bob.ID, created.ID, domain.TagRequest{Name: "Mine"})
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
		assert.ErrorIs(t, service.DeleteTag(ctx, bob.ID, created.ID), domain.ErrTagNotFound)
	})

	t.Run("rename", func(t *testing.T) {
		updated, err := service.UpdateTag(ctx, alice.ID, created.ID, domain.TagRequest{Name: "Sweets"})
		require.NoError(t, err)
		assert.Equal(t, "Sweets", updated.Name)

		got, err := service.GetTagByID(ctx, alice.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sweets", got.Name)
	})

	t.Run("rename onto an existing name", func(t *testing.T) {
		_, _, err := service.CreateTag(ctx, alice.ID, domain.TagRequest{Name: "Vegan"})
		require.NoError(t, err)

		_, err = service.UpdateTag(ctx, alice.ID, created.ID, domain.TagRequest{Name: "Vegan"})
		assert.ErrorIs(t, err, domain.ErrTagAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("delete detaches it from recipes", func(t *testing.T) {
		recipe := seedRecipe(t, db, alice.ID, entities.Tag{ID: created.ID, UserID: alice.ID, Name: "Sweets"})

		require.NoError(t, service.DeleteTag(ctx, alice.ID, created.ID))

		_, err := service.GetTagByID(ctx, alice.ID, created.ID)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)

		var joins int64
		require.NoError(t, db.Table("recipe_tags").Where("recipe_id = ?", recipe.ID).Count(&joins).Error)
		assert.Zero(t, joins)

		var recipes int64
		require.NoError(t, db.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Count(&recipes).Error)
		assert.EqualValues(t, 1, recipes)
	})
}
