package recipe_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/testutil"
	"recipe-catalog/internal/utils/storage"
	"recipe-catalog/pkg/recipe"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	media   string
	service recipe.RecipeService
	alice   entities.User
	bob     entities.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	media := t.TempDir()
	local, err := storage.NewLocalStorage(media, "/media")
	require.NoError(t, err)

	return &fixture{
		db:      db,
		media:   media,
		service: recipe.NewRecipeService(recipe.NewRecipeRepository(db), local),
		alice:   testutil.CreateUser(t, db, "alice@example.com"),
		bob:     testutil.CreateUser(t, db, "bob@example.com"),
	}
}

func price(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func names(items ...string) *[]domain.NamedItemRequest {
	out := make([]domain.NamedItemRequest, 0, len(items))
	for _, name := range items {
		out = append(out, domain.NamedItemRequest{Name: name})
	}
	return &out
}

func tagNames(r domain.Recipe) []string {
	out := make([]string, 0, len(r.Tags))
	for _, tag := range r.Tags {
		out = append(out, tag.Name)
	}
	return out
}

func ingredientNames(r domain.Recipe) []string {
	out := make([]string, 0, len(r.Ingredients))
	for _, ingredient := range r.Ingredients {
		out = append(out, ingredient.Name)
	}
	return out
}

func (f *fixture) create(t *testing.T, userID uint, req domain.RecipeRequest) domain.RecipeDetail {
	t.Helper()
	if req.Price == nil {
		req.Price = price(t, "5.00")
	}
	if req.TimeMinutes == 0 {
		req.TimeMinutes = 10
	}
	detail, err := f.service.CreateRecipe(context.Background(), userID, req)
	require.NoError(t, err)
	return detail
}

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("keeps price precision and assigns the caller", func(t *testing.T) {
		other := f.bob.ID
		detail, err := f.service.CreateRecipe(ctx, f.alice.ID, domain.RecipeRequest{
			Title:       "Sample recipe",
			TimeMinutes: 22,
			Price:       price(t, "5.99"),
			User:        &other,
		})
		require.NoError(t, err)

		assert.Equal(t, "5.99", detail.Price)
		assert.Equal(t, f.alice.ID, detail.User)
		assert.Equal(t, "", detail.Description)
		assert.Nil(t, detail.Image)
		assert.Empty(t, detail.Tags)
	})

	t.Run("creates tags and ingredients once per owner", func(t *testing.T) {
		detail := f.create(t, f.alice.ID, domain.RecipeRequest{
			Title:       "Thai Prawn Curry",
			Tags:        names("Thai", "Dinner"),
			Ingredients: names("Prawns", " Prawns ", "Coconut"),
		})
		assert.ElementsMatch(t, []string{"Thai", "Dinner"}, tagNames(detail.Recipe))
		assert.ElementsMatch(t, []string{"Prawns", "Coconut"}, ingredientNames(detail.Recipe))

		f.create(t, f.alice.ID, domain.RecipeRequest{Title: "Pad Thai", Tags: names("Thai")})

		var count int64
		require.NoError(t, f.db.Model(&entities.Tag{}).Where("user_id = ? AND name = ?", f.alice.ID, "Thai").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("reuses the caller's tag but not another user's", func(t *testing.T) {
		bobTag := entities.Tag{UserID: f.bob.ID, Name: "Breakfast"}
		require.NoError(t, f.db.Create(&bobTag).Error)

		detail := f.create(t, f.alice.ID, domain.RecipeRequest{Title: "Eggs", Tags: names("Breakfast")})
		require.Len(t, detail.Tags, 1)
		assert.NotEqual(t, bobTag.ID, detail.Tags[0].ID)
	})

	t.Run("rejects invalid price", func(t *testing.T) {
		for _, p := range []string{"-1", "1000", "1.234"} {
			_, err := f.service.CreateRecipe(ctx, f.alice.ID, domain.RecipeRequest{
				Title: "Bad", TimeMinutes: 5, Price: price(t, p),
			})
			assert.ErrorIs(t, err, domain.ErrInvalidPrice, p)
			assert.ErrorIs(t, err, domain.ErrValidation, p)
		}
	})

	t.Run("rejects blank tag names", func(t *testing.T) {
		_, err := f.service.CreateRecipe(ctx, f.alice.ID, domain.RecipeRequest{
			Title: "Blank", TimeMinutes: 5, Price: price(t, "1"), Tags: names("  "),
		})
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})
}

func TestGetRecipesIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.create(t, f.alice.ID, domain.RecipeRequest{Title: "Mine"})
	theirs := f.create(t, f.bob.ID, domain.RecipeRequest{Title: "Theirs"})

	list, err := f.service.GetRecipes(ctx, f.alice.ID, domain.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = f.service.GetRecipeDetail(ctx, f.alice.ID, theirs.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = f.service.PatchRecipe(ctx, f.alice.ID, theirs.ID, domain.PatchRecipeRequest{})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, f.alice.ID, theirs.ID), domain.ErrRecipeNotFound)
}

func TestGetRecipesNewestFirst(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, f.alice.ID, domain.RecipeRequest{Title: "First"})
	second := f.create(t, f.alice.ID, domain.RecipeRequest{Title: "Second"})

	list, err := f.service.GetRecipes(context.Background(), f.alice.ID, domain.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGetRecipesFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	curry := f.create(t, f.alice.ID, domain.RecipeRequest{
		Title: "Curry", Tags: names("Vegan", "Dinner"), Ingredients: names("Feta", "Chicken"),
	})
	salad := f.create(t, f.alice.ID, domain.RecipeRequest{
		Title: "Salad", Tags: names("Dinner"), Ingredients: names("Feta"),
	})
	f.create(t, f.alice.ID, domain.RecipeRequest{Title: "Plain"})

	vegan, dinner := curry.Tags[0].ID, curry.Tags[1].ID
	feta, chicken := curry.Ingredients[0].ID, curry.Ingredients[1].ID

	titles := func(list []domain.Recipe) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.Title)
		}
		return out
	}

	t.Run("any listed tag matches once", func(t *testing.T) {
		list, err := f.service.GetRecipes(ctx, f.alice.ID, domain.RecipeFilter{TagIDs: []uint{vegan, dinner}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Salad", "Curry"}, titles(list))
	})

	t.Run("tag and ingredient filters combine", func(t *testing.T) {
		list, err := f.service.GetRecipes(ctx, f.alice.ID, domain.RecipeFilter{
			TagIDs: []uint{dinner}, IngredientIDs: []uint{chicken},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Curry"}, titles(list))
	})

	t.Run("ingredient filter", func(t *testing.T) {
		list, err := f.service.GetRecipes(ctx, f.alice.ID, domain.RecipeFilter{IngredientIDs: []uint{feta, chicken}})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, salad.ID, list[0].ID)
		assert.Len(t, list[1].Tags, 2, "preloads are not narrowed by the filter")
	})

	t.Run("unknown ids match nothing", func(t *testing.T) {
		list, err := f.service.GetRecipes(ctx, f.alice.ID, domain.RecipeFilter{TagIDs: []uint{9999}})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestPatchRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.alice.ID, domain.RecipeRequest{
		Title:       "Sample",
		Description: "keep me",
		Link:        "https://example.com/r.pdf",
		Tags:        names("Lunch"),
		Ingredients: names("Salt"),
	})

	t.Run("absent fields are untouched", func(t *testing.T) {
		title := "New title"
		detail, err := f.service.PatchRecipe(ctx, f.alice.ID, created.ID, domain.PatchRecipeRequest{Title: &title})
		require.NoError(t, err)

		assert.Equal(t, "New title", detail.Title)
		assert.Equal(t, "keep me", detail.Description)
		assert.Equal(t, "https://example.com/r.pdf", detail.Link)
		assert.Equal(t, []string{"Lunch"}, tagNames(detail.Recipe))
		assert.Equal(t, []string{"Salt"}, ingredientNames(detail.Recipe))
	})

	t.Run("user field is ignored", func(t *testing.T) {
		other := f.bob.ID
		detail, err := f.service.PatchRecipe(ctx, f.alice.ID, created.ID, domain.PatchRecipeRequest{User: &other})
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, detail.User)
	})

	t.Run("duplicate names collapse", func(t *testing.T) {
		detail, err := f.service.PatchRecipe(ctx, f.alice.ID, created.ID, domain.PatchRecipeRequest{
			Tags: names("Lunch", "Lunch"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lunch"}, tagNames(detail.Recipe))
	})

	t.Run("replaces tags with an existing one", func(t *testing.T) {
		existing := entities.Tag{UserID: f.alice.ID, Name: "Breakfast"}
		require.NoError(t, f.db.Create(&existing).Error)

		detail, err := f.service.PatchRecipe(ctx, f.alice.ID, created.ID, domain.PatchRecipeRequest{
			Tags: names("Breakfast"),
		})
		require.NoError(t, err)
		require.Len(t, detail.Tags, 1)
		assert.Equal(t, existing.ID, detail.Tags[0].ID)

		var lunch int64
		require.NoError(t, f.db.Model(&entities.Tag{}).Where("name = ?", "Lunch").Count(&lunch).Error)
		assert.EqualValues(t, 1, lunch, "detached tags stay in the catalog")
	})

	t.Run("empty list clears only that association", func(t *testing.T) {
		detail, err := f.service.PatchRecipe(ctx, f.alice.ID, created.ID, domain.PatchRecipeRequest{
			Tags: names(),
		})
		require.NoError(t, err)
		assert.Empty(t, detail.Tags)
		assert.Equal(t, []string{"Salt"}, ingredientNames(detail.Recipe))
	})

	t.Run("invalid price leaves the recipe unchanged", func(t *testing.T) {
		_, err := f.service.PatchRecipe(ctx, f.alice.ID, created.ID, domain.PatchRecipeRequest{
			Price: price(t, "1000.00"),
			Tags:  names("Should not land"),
		})
		require.ErrorIs(t, err, domain.ErrInvalidPrice)

		detail, err := f.service.GetRecipeDetail(ctx, f.alice.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "5.00", detail.Price)
		assert.Empty(t, detail.Tags)
	})
}

func TestUpdateRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.alice.ID, domain.RecipeRequest{
		Title:       "Sample",
		Description: "old",
		Link:        "https://example.com",
		Tags:        names("Dinner"),
	})

	detail, err := f.service.UpdateRecipe(ctx, f.alice.ID, created.ID, domain.RecipeRequest{
		Title:       "Spaghetti",
		TimeMinutes: 25,
		Price:       price(t, "7.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Spaghetti", detail.Title)
	assert.Equal(t, 25, detail.TimeMinutes)
	assert.Equal(t, "7.50", detail.Price)
	assert.Equal(t, "", detail.Description)
	assert.Equal(t, "", detail.Link)
	assert.Equal(t, []string{"Dinner"}, tagNames(detail.Recipe), "omitted tags are left alone")

	_, err = f.service.UpdateRecipe(ctx, f.bob.ID, created.ID, domain.RecipeRequest{
		Title: "Hijack", TimeMinutes: 1, Price: price(t, "1"),
	})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.alice.ID, domain.RecipeRequest{
		Title: "Soon gone", Tags: names("Dinner"), Ingredients: names("Salt"),
	})
	_, err := f.service.UploadImage(ctx, f.alice.ID, created.ID, testutil.JPEG(t, 10, 10))
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteRecipe(ctx, f.alice.ID, created.ID))

	_, err = f.service.GetRecipeDetail(ctx, f.alice.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	var joins int64
	require.NoError(t, f.db.Table("recipe_tags").Where("recipe_id = ?", created.ID).Count(&joins).Error)
	assert.Zero(t, joins)
	require.NoError(t, f.db.Table("recipe_ingredients").Where("recipe_id = ?", created.ID).Count(&joins).Error)
	assert.Zero(t, joins)

	var tags int64
	require.NoError(t, f.db.Model(&entities.Tag{}).Count(&tags).Error)
	assert.EqualValues(t, 1, tags)

	assert.Empty(t, storedFiles(t, f.media))
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, f.alice.ID, domain.RecipeRequest{Title: "Pictured"})

	t.Run("stores the image and exposes its url", func(t *testing.T) {
		res, err := f.service.UploadImage(ctx, f.alice.ID, created.ID, testutil.JPEG(t, 10, 10))
		require.NoError(t, err)
		require.NotNil(t, res.Image)
		assert.True(t, strings.HasPrefix(*res.Image, "/media/uploads/recipe/"))
		assert.True(t, strings.HasSuffix(*res.Image, ".jpg"))
		assert.NotEmpty(t, res.ImageBlurHash)

		detail, err := f.service.GetRecipeDetail(ctx, f.alice.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, res.Image, detail.Image)

		key := strings.TrimPrefix(*res.Image, "/media/")
		_, err = os.Stat(filepath.Join(f.media, filepath.FromSlash(key)))
		assert.NoError(t, err)
	})

	t.Run("replacing releases the previous file", func(t *testing.T) {
		_, err := f.service.UploadImage(ctx, f.alice.ID, created.ID, testutil.PNG(t, 80, 40))
		require.NoError(t, err)

		files := storedFiles(t, f.media)
		require.Len(t, files, 1)
		assert.Equal(t, ".png", filepath.Ext(files[0]))
	})

	t.Run("rejects data that is not an image", func(t *testing.T) {
		_, err := f.service.UploadImage(ctx, f.alice.ID, created.ID, []byte("notimage"))
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Len(t, storedFiles(t, f.media), 1)
	})

	t.Run("rejects a truncated image", func(t *testing.T) {
		data := testutil.PNG(t, 20, 20)
		_, err := f.service.UploadImage(ctx, f.alice.ID, created.ID, data[:len(data)/2])
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
	})

	t.Run("other users get not found", func(t *testing.T) {
		_, err := f.service.UploadImage(ctx, f.bob.ID, created.ID, testutil.JPEG(t, 10, 10))
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("delete image clears the reference", func(t *testing.T) {
		require.NoError(t, f.service.DeleteImage(ctx, f.alice.ID, created.ID))

		detail, err := f.service.GetRecipeDetail(ctx, f.alice.ID, created.ID)
		require.NoError(t, err)
		assert.Nil(t, detail.Image)
		assert.Empty(t, detail.ImageBlurHash)
		assert.Empty(t, storedFiles(t, f.media))

		assert.ErrorIs(t, f.service.DeleteImage(ctx, f.alice.ID, created.ID), domain.ErrRecipeHasNoImage)
	})
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestCreateRecipeTagInsertedConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Another writer commits "Thai" between the lookup and the insert.
	var fired bool
	err := f.db.Callback().Create().Before("gorm:create").Register("test:concurrent_tag", func(tx *gorm.DB) {
		tag, ok := tx.Statement.Dest.(*entities.Tag)
		if fired || !ok {
			return
		}
		fired = true
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO tags (user_id, name) VALUES (?, ?)", tag.UserID, tag.Name)
	})
	require.NoError(t, err)

	detail, err := f.service.CreateRecipe(ctx, f.alice.ID, domain.RecipeRequest{
		Title: "Green curry", TimeMinutes: 20, Price: price(t, "4.50"), Tags: names("Thai"),
	})
	require.NoError(t, err)
	assert.True(t, fired)

	var tags []entities.Tag
	require.NoError(t, f.db.Where("user_id = ? AND name = ?", f.alice.ID, "Thai").Find(&tags).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, []domain.TagResponse{{ID: tags[0].ID, Name: "Thai"}}, detail.Tags)
}

var errReplaceIngredients = errors.New("replace ingredients failed")

// brokenIngredients fails every ingredient replacement, inside transactions too.
type brokenIngredients struct {
	recipe.RecipeRepository
}

func (b brokenIngredients) Transaction(ctx context.Context, fn func(tx recipe.RecipeRepository) error) error {
	return b.RecipeRepository.Transaction(ctx, func(tx recipe.RecipeRepository) error {
		return fn(brokenIngredients{tx})
	})
}

func (b brokenIngredients) ReplaceIngredients(context.Context, *entities.Recipe, []entities.Ingredient) error {
	return errReplaceIngredients
}

func TestWriteFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	original := f.create(t, f.alice.ID, domain.RecipeRequest{Title: "orig", Tags: names("A")})

	local, err := storage.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)
	broken := recipe.NewRecipeService(brokenIngredients{recipe.NewRecipeRepository(f.db)}, local)

	countTags := func(name string) int64 {
		var n int64
		require.NoError(t, f.db.Model(&entities.Tag{}).Where("name = ?", name).Count(&n).Error)
		return n
	}

	t.Run("patch", func(t *testing.T) {
		title := "changed"
		_, err := broken.PatchRecipe(ctx, f.alice.ID, original.ID, domain.PatchRecipeRequest{
			Title:       &title,
			Tags:        names("B"),
			Ingredients: names("Salt"),
		})
		require.ErrorIs(t, err, errReplaceIngredients)

		detail, err := f.service.GetRecipeDetail(ctx, f.alice.ID, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "orig", detail.Title)
		assert.Equal(t, []string{"A"}, tagNames(detail.Recipe))
		assert.Zero(t, countTags("B"))

		var ingredients int64
		require.NoError(t, f.db.Model(&entities.Ingredient{}).Count(&ingredients).Error)
		assert.Zero(t, ingredients)
	})

	t.Run("create", func(t *testing.T) {
		_, err := broken.CreateRecipe(ctx, f.alice.ID, domain.RecipeRequest{
			Title: "never", TimeMinutes: 5, Price: price(t, "1.00"),
			Tags: names("C"), Ingredients: names("Salt"),
		})
		require.ErrorIs(t, err, errReplaceIngredients)

		var recipes int64
		require.NoError(t, f.db.Model(&entities.Recipe{}).Where("title = ?", "never").Count(&recipes).Error)
		assert.Zero(t, recipes)
		assert.Zero(t, countTags("C"))
	})
}
