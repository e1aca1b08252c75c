package tag

import (
	"context"
	"strings"

	"recipe-catalog/entities"
	"recipe-catalog/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	TagRepository interface {
		GetTags(ctx context.Context, userID uint, assignedOnly bool) ([]*entities.Tag, error)
		GetTagByID(ctx context.Context, userID, id uint) (*entities.Tag, error)
		GetOrCreateTag(ctx context.Context, userID uint, name string) (*entities.Tag, bool, error)
		UpdateTag(ctx context.Context, tag *entities.Tag) error
		DeleteTag(ctx context.Context, tag *entities.Tag) error
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetTags(ctx context.Context, userID uint, assignedOnly bool) ([]*entities.Tag, error) {
	var tags []*entities.Tag

	query := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Select("tags.*").
		Where("tags.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	if err := query.Order("tags.name desc").Order("tags.id desc").Find(&tags).Error; err != nil {
		return nil, err
	}

	// A tag used by several recipes comes back once per recipe.
	return utils.UniqueBy(tags, func(t *entities.Tag) uint { return t.ID }), nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, userID, id uint) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreateTag reports whether the row was inserted by this call.
func (r *tagRepository) GetOrCreateTag(ctx context.Context, userID uint, name string) (*entities.Tag, bool, error) {
	tag := &entities.Tag{UserID: userID, Name: name}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(tag)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return tag, true, nil
	}

	var existing entities.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Take(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Model(tag).Update("name", strings.TrimSpace(tag.Name)).Error
}

func (r *tagRepository) DeleteTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
