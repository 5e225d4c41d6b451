package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "housekeeping_tasks"
	EntityName = "housekeeping_task"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldRoomID      = "room_id"
	FieldTaskType    = "task_type"
	FieldPriority    = "priority"
	FieldStatus      = "status"
	FieldAssignedTo  = "assigned_to"
	FieldScheduledAt = "scheduled_at"
	FieldCompletedAt = "completed_at"
)

type TaskType string

const (
	TaskTypeCleaning     TaskType = "cleaning"
	TaskTypeDeepCleaning TaskType = "deep_cleaning"
	TaskTypeInspection   TaskType = "inspection"
	TaskTypeMaintenance  TaskType = "maintenance"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeCleaning, TaskTypeDeepCleaning, TaskTypeInspection, TaskTypeMaintenance:
		return true
	}

	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}

	return false
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}

	return false
}

type HousekeepingTask struct {
	ID          string       `db:"id"`
	HotelID     string       `db:"hotel_id"`
	RoomID      string       `db:"room_id"`
	TaskType    TaskType     `db:"task_type"`
	Priority    TaskPriority `db:"priority"`
	Status      TaskStatus   `db:"status"`
	AssignedTo  string       `db:"assigned_to"`
	ScheduledAt time.Time    `db:"scheduled_at"`
	CompletedAt *time.Time   `db:"completed_at"`
	Notes       string       `db:"notes"`
	model.Metadata
}
