// Copyright 2026 The AgentWire Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package taskstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agentwire/a2a-go/a2a"
)

// taskRecord is the database row schema. The full task is stored as a JSON
// document; the columns exist for keyed lookup and session filtering.
type taskRecord struct {
	ID        string `gorm:"primaryKey"`
	SessionID string `gorm:"index"`
	State     string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Database is a [Store] backed by a relational database through GORM.
// The caller supplies an opened *gorm.DB with the dialector of their choice.
type Database struct {
	db        *gorm.DB
	tableName string
}

// DatabaseConfig holds configuration for a [Database] store.
type DatabaseConfig struct {
	// DB is the GORM database handle. Required.
	DB *gorm.DB
	// TableName overrides the table name. Defaults to "tasks".
	TableName string
	// CreateTable runs an automatic migration for the task table.
	CreateTable bool
}

// NewDatabase creates a [Database] store from the provided configuration.
func NewDatabase(config DatabaseConfig) (*Database, error) {
	if config.DB == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	tableName := config.TableName
	if tableName == "" {
		tableName = "tasks"
	}

	s := &Database{db: config.DB, tableName: tableName}

	if config.CreateTable {
		if err := s.table(context.Background()).AutoMigrate(&taskRecord{}); err != nil {
			return nil, fmt.Errorf("failed to migrate task table: %w", err)
		}
	}

	return s, nil
}

var _ Store = (*Database)(nil)

func (s *Database) table(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.tableName)
}

func (s *Database) Create(ctx context.Context, task *a2a.Task) (*a2a.Task, error) {
	if task.ID == "" {
		return nil, fmt.Errorf("task ID is empty: %w", a2a.ErrInvalidParams)
	}

	record, err := newTaskRecord(task)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(s.tableName).Where("id = ?", record.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("task %q: %w", task.ID, ErrTaskAlreadyExists)
		}
		return tx.Table(s.tableName).Create(record).Error
	})
	if err != nil {
		return nil, err
	}

	return record.toTask()
}

func (s *Database) Get(ctx context.Context, id a2a.TaskID) (*a2a.Task, error) {
	var record taskRecord
	if err := s.table(ctx).Where("id = ?", string(id)).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %q: %w", id, a2a.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("failed to load task %q: %w", id, err)
	}
	return record.toTask()
}

func (s *Database) Update(ctx context.Context, task *a2a.Task) (*a2a.Task, error) {
	record, err := newTaskRecord(task)
	if err != nil {
		return nil, err
	}

	result := s.table(ctx).Where("id = ?", record.ID).Updates(map[string]any{
		"session_id": record.SessionID,
		"state":      record.State,
		"data":       record.Data,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update task %q: %w", task.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("task %q: %w", task.ID, a2a.ErrTaskNotFound)
	}

	return record.toTask()
}

func (s *Database) Delete(ctx context.Context, id a2a.TaskID) (bool, error) {
	result := s.table(ctx).Where("id = ?", string(id)).Delete(&taskRecord{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task %q: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *Database) List(ctx context.Context, sessionID string) ([]*a2a.Task, error) {
	query := s.table(ctx).Order("created_at, id")
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}

	var records []taskRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*a2a.Task, 0, len(records))
	for _, record := range records {
		task, err := record.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *Database) Exists(ctx context.Context, id a2a.TaskID) (bool, error) {
	var count int64
	if err := s.table(ctx).Where("id = ?", string(id)).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task %q: %w", id, err)
	}
	return count > 0, nil
}

func newTaskRecord(task *a2a.Task) (*taskRecord, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task %q: %w", task.ID, err)
	}
	return &taskRecord{
		ID:        string(task.ID),
		SessionID: task.SessionID,
		State:     string(task.Status.State),
		Data:      data,
	}, nil
}

func (r *taskRecord) toTask() (*a2a.Task, error) {
	var task a2a.Task
	if err := json.Unmarshal(r.Data, &task); err != nil {
		return nil, fmt.Errorf("failed to decode task %q: %w", r.ID, err)
	}
	return &task, nil
}
