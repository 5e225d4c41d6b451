package dto

import (
	"lodge/internal/domains/housekeeping/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
)

type UpdateTaskStatusRequest struct {
	Status     string `json:"status"      validate:"required,oneof=pending in_progress completed cancelled"`
	AssignedTo string `json:"assigned_to" validate:"omitempty,max=100"`
	Notes      string `json:"notes"       validate:"omitempty,max=500"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotel_id"`
	RoomID      string `json:"room_id"`
	TaskType    string `json:"task_type"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	ScheduledAt string `json:"scheduled_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Notes       string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *TaskResponse) FromModel(mod model.HousekeepingTask) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RoomID = mod.RoomID
	r.TaskType = string(mod.TaskType)
	r.Priority = string(mod.Priority)
	r.Status = string(mod.Status)
	r.AssignedTo = mod.AssignedTo
	r.ScheduledAt = mod.ScheduledAt.Format(constant.DateFormat)
	r.Notes = mod.Notes

	if mod.CompletedAt != nil {
		r.CompletedAt = mod.CompletedAt.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTasksResponse) FromModels(models []model.HousekeepingTask, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tasks = make([]TaskResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod)
	}
}
