// ABOUTME: Tag store methods
// ABOUTME: Tags are process-wide labels shared by all boards

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateTag inserts a new tag. Generates ID if not set.
func (s *GormStore) CreateTag(ctx context.Context, tag *Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}

	if err := s.withCtx(ctx).Create(tag).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrTagExists
		}
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

// GetTag retrieves a tag by ID.
func (s *GormStore) GetTag(ctx context.Context, id string) (*Tag, error) {
	var tag Tag
	if err := s.withCtx(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &tag, nil
}

// ListTags returns all tags ordered by name.
func (s *GormStore) ListTags(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	if err := s.withCtx(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}
