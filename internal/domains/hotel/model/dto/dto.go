package dto

import (
	"lodge/internal/domains/hotel/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateHotelRequest struct {
	Name       string `json:"name"        validate:"required,max=150"`
	Address    string `json:"address"     validate:"required,max=250"`
	City       string `json:"city"        validate:"required,max=100"`
	Country    string `json:"country"     validate:"required,max=100"`
	Phone      string `json:"phone"       validate:"omitempty,max=20"`
	Email      string `json:"email"       validate:"omitempty,email,max=100"`
	StarRating int    `json:"star_rating" validate:"omitempty,gte=1,lte=5"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	return model.Hotel{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		Country:    c.Country,
		Phone:      c.Phone,
		Email:      c.Email,
		StarRating: c.StarRating,
		RoomCount:  0,
		Status:     model.HotelStatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name       string `db:"name"        json:"name"        validate:"omitempty,max=150"`
	Address    string `db:"address"     json:"address"     validate:"omitempty,max=250"`
	City       string `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Country    string `db:"country"     json:"country"     validate:"omitempty,max=100"`
	Phone      string `db:"phone"       json:"phone"       validate:"omitempty,max=20"`
	Email      string `db:"email"       json:"email"       validate:"omitempty,email,max=100"`
	StarRating int    `db:"star_rating" json:"star_rating" validate:"omitempty,gte=1,lte=5"`
	Status     string `db:"status"      json:"status"      validate:"omitempty,oneof=active inactive"`
}

type HotelResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	StarRating int    `json:"star_rating"`
	RoomCount  int    `json:"room_count"`
	Status     string `json:"status"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(mod model.Hotel) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Address = mod.Address
	r.City = mod.City
	r.Country = mod.Country
	r.Phone = mod.Phone
	r.Email = mod.Email
	r.StarRating = mod.StarRating
	r.RoomCount = mod.RoomCount
	r.Status = string(mod.Status)
	r.Metadata.FromModel(mod.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}
