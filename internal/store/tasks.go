// ABOUTME: Task store methods including the transactional collection replace
// ABOUTME: Tags, assignees, and subtasks are swapped wholesale, never diffed

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// preloadTaskRelations attaches every relation a task response carries.
// Subtasks come back in order-index sequence, comments newest first.
func preloadTaskRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Tags").
		Preload("Assignees").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.order_index ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("kind = ?", CommentKindComment).Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		Preload("Attachments")
}

// CreateTask inserts a task together with its tag links, assignee links,
// and subtasks in a single transaction. Subtask order follows input
// position. Generates the task ID if not set.
func (s *GormStore) CreateTask(ctx context.Context, task *Task, tagIDs, assigneeIDs []string, subtasks []SubtaskInput) (*Task, error) {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}

	err := s.withCtx(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Assignees", "Subtasks", "Comments", "Attachments", "Owner").Create(task).Error; err != nil {
			return fmt.Errorf("inserting task: %w", err)
		}
		return createTaskRelations(tx, task.ID, tagIDs, assigneeIDs, subtasks)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created task", "id", task.ID, "owner", task.OwnerID)
	return s.GetTaskFull(ctx, task.ID)
}

// createTaskRelations inserts tag links, assignee links, and subtasks for
// a task. Must run inside a transaction.
func createTaskRelations(tx *gorm.DB, taskID string, tagIDs, assigneeIDs []string, subtasks []SubtaskInput) error {
	for _, tagID := range tagIDs {
		if err := tx.Create(&TaskTag{TaskID: taskID, TagID: tagID}).Error; err != nil {
			return fmt.Errorf("linking tag %s: %w", tagID, err)
		}
	}
	for _, userID := range assigneeIDs {
		if err := tx.Create(&TaskAssignee{TaskID: taskID, UserID: userID}).Error; err != nil {
			return fmt.Errorf("linking assignee %s: %w", userID, err)
		}
	}
	for i, sub := range subtasks {
		row := &Subtask{
			ID:         uuid.New().String(),
			TaskID:     taskID,
			Title:      sub.Title,
			Completed:  sub.Completed,
			OrderIndex: i,
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("inserting subtask %d: %w", i, err)
		}
	}
	return nil
}

// GetTask retrieves a task with its assignees loaded, enough for policy
// decisions without the full relation fan-out.
func (s *GormStore) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := s.withCtx(ctx).Preload("Assignees").First(&task, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &task, nil
}

// GetTaskFull retrieves a task with every relation populated.
func (s *GormStore) GetTaskFull(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := preloadTaskRelations(s.withCtx(ctx)).First(&task, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &task, nil
}

// ListTasksForUser returns every task the user owns or is assigned to,
// newest first, fully populated.
func (s *GormStore) ListTasksForUser(ctx context.Context, userID string) ([]*Task, error) {
	var tasks []*Task
	err := preloadTaskRelations(s.withCtx(ctx)).
		Distinct("tasks.*").
		Joins("LEFT JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("tasks.owner_id = ? OR task_assignees.user_id = ?", userID, userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update. Supplied collections are replaced
// wholesale: existing links and subtasks are deleted and the new set
// recreated with order assigned by input position. The whole operation is
// one transaction so readers never observe a half-cleared task.
func (s *GormStore) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error) {
	err := s.withCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var task Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return translateErr(err)
		}

		fields := map[string]any{
			"due_date":   upd.DueDate,
			"updated_at": time.Now().UTC(),
		}
		if upd.Title != nil {
			fields["title"] = *upd.Title
		}
		if upd.Description != nil {
			fields["description"] = *upd.Description
		}
		if upd.Priority != nil {
			fields["priority"] = *upd.Priority
		}
		if upd.Status != nil {
			fields["status"] = *upd.Status
		}
		if err := tx.Model(&Task{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return fmt.Errorf("updating task: %w", err)
		}

		if upd.TagIDs != nil {
			if err := tx.Where("task_id = ?", id).Delete(&TaskTag{}).Error; err != nil {
				return fmt.Errorf("clearing tag links: %w", err)
			}
		}
		if upd.AssigneeIDs != nil {
			if err := tx.Where("task_id = ?", id).Delete(&TaskAssignee{}).Error; err != nil {
				return fmt.Errorf("clearing assignee links: %w", err)
			}
		}
		if upd.Subtasks != nil {
			if err := tx.Where("task_id = ?", id).Delete(&Subtask{}).Error; err != nil {
				return fmt.Errorf("clearing subtasks: %w", err)
			}
		}

		var tagIDs, assigneeIDs []string
		var subtasks []SubtaskInput
		if upd.TagIDs != nil {
			tagIDs = *upd.TagIDs
		}
		if upd.AssigneeIDs != nil {
			assigneeIDs = *upd.AssigneeIDs
		}
		if upd.Subtasks != nil {
			subtasks = *upd.Subtasks
		}
		return createTaskRelations(tx, id, tagIDs, assigneeIDs, subtasks)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("updated task", "id", id)
	return s.GetTaskFull(ctx, id)
}

// DeleteTask removes a task and everything hanging off it: tag links,
// assignee links, subtasks, comments (activity notes included), and
// attachments. Nothing referencing the task survives.
func (s *GormStore) DeleteTask(ctx context.Context, id string) error {
	err := s.withCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var task Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return translateErr(err)
		}

		for _, step := range []struct {
			name  string
			model any
		}{
			{"tag links", &TaskTag{}},
			{"assignee links", &TaskAssignee{}},
			{"subtasks", &Subtask{}},
			{"comments", &Comment{}},
			{"attachments", &Attachment{}},
		} {
			if err := tx.Where("task_id = ?", id).Delete(step.model).Error; err != nil {
				return fmt.Errorf("deleting %s: %w", step.name, err)
			}
		}

		if err := tx.Delete(&Task{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("deleted task", "id", id)
	return nil
}
