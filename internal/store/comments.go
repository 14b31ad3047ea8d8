// ABOUTME: Comment and activity note store methods
// ABOUTME: Both kinds share the comments table, separated by the kind column

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxActivityEntries caps how many activity notes a single listing returns.
const maxActivityEntries = 50

// CreateComment inserts a comment or activity note. Generates ID and
// defaults Kind to comment if not set.
func (s *GormStore) CreateComment(ctx context.Context, comment *Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.Kind == "" {
		comment.Kind = CommentKindComment
	}
	now := time.Now().UTC()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
		comment.UpdatedAt = now
	}

	if err := s.withCtx(ctx).Omit("User").Create(comment).Error; err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}

	s.logger.Debug("created comment", "id", comment.ID, "task", comment.TaskID, "kind", comment.Kind)
	return nil
}

// GetComment retrieves a comment by ID with its author loaded.
func (s *GormStore) GetComment(ctx context.Context, id string) (*Comment, error) {
	var comment Comment
	if err := s.withCtx(ctx).Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &comment, nil
}

// ListComments returns the genuine comments on a task, newest first,
// with author display fields loaded. Activity notes are excluded.
func (s *GormStore) ListComments(ctx context.Context, taskID string) ([]*Comment, error) {
	var comments []*Comment
	err := s.withCtx(ctx).
		Preload("User").
		Where("task_id = ? AND kind = ?", taskID, CommentKindComment).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a single comment.
func (s *GormStore) DeleteComment(ctx context.Context, id string) error {
	res := s.withCtx(ctx).Delete(&Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActivity returns the newest activity notes for a task, capped at
// limit (default and maximum 50), with actor display fields loaded.
func (s *GormStore) ListActivity(ctx context.Context, taskID string, limit int) ([]*Comment, error) {
	if limit <= 0 || limit > maxActivityEntries {
		limit = maxActivityEntries
	}

	var notes []*Comment
	err := s.withCtx(ctx).
		Preload("User").
		Where("task_id = ? AND kind = ?", taskID, CommentKindActivity).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return notes, nil
}

// CreateAttachment inserts an attachment record. Generates ID and
// CreatedAt if not set.
func (s *GormStore) CreateAttachment(ctx context.Context, att *Attachment) error {
	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	if att.CreatedAt.IsZero() {
		att.CreatedAt = time.Now().UTC()
	}

	if err := s.withCtx(ctx).Create(att).Error; err != nil {
		return fmt.Errorf("inserting attachment: %w", err)
	}
	return nil
}
