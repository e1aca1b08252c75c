package tag

import (
	"context"
	"errors"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"

	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context, userID uint, assignedOnly bool) ([]domain.TagResponse, error)
		GetTagByID(ctx context.Context, userID, tagID uint) (domain.TagResponse, error)
		CreateTag(ctx context.Context, userID uint, req domain.TagRequest) (domain.TagResponse, bool, error)
		UpdateTag(ctx context.Context, userID, tagID uint, req domain.TagRequest) (domain.TagResponse, error)
		DeleteTag(ctx context.Context, userID, tagID uint) error
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context, userID uint, assignedOnly bool) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, toTagResponse(tag))
	}
	return res, nil
}

func (s *tagService) GetTagByID(ctx context.Context, userID, tagID uint) (domain.TagResponse, error) {
	tag, err := s.getOwnedTag(ctx, userID, tagID)
	if err != nil {
		return domain.TagResponse{}, err
	}
	return toTagResponse(tag), nil
}

// CreateTag returns the existing tag when the owner already has one with
// that name; the bool reports whether a row was created.
func (s *tagService) CreateTag(ctx context.Context, userID uint, req domain.TagRequest) (domain.TagResponse, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.TagResponse{}, false, domain.ErrEmptyName
	}

	tag, created, err := s.tagRepository.GetOrCreateTag(ctx, userID, name)
	if err != nil {
		return domain.TagResponse{}, false, err
	}
	return toTagResponse(tag), created, nil
}

func (s *tagService) UpdateTag(ctx context.Context, userID, tagID uint, req domain.TagRequest) (domain.TagResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.TagResponse{}, domain.ErrEmptyName
	}

	tag, err := s.getOwnedTag(ctx, userID, tagID)
	if err != nil {
		return domain.TagResponse{}, err
	}

	tag.Name = name
	if err := s.tagRepository.UpdateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.TagResponse{}, domain.ErrTagAlreadyExists
		}
		return domain.TagResponse{}, err
	}
	return toTagResponse(tag), nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID, tagID uint) error {
	tag, err := s.getOwnedTag(ctx, userID, tagID)
	if err != nil {
		return err
	}
	return s.tagRepository.DeleteTag(ctx, tag)
}

func (s *tagService) getOwnedTag(ctx context.Context, userID, tagID uint) (*entities.Tag, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, userID, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func toTagResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{ID: tag.ID, Name: tag.Name}
}
