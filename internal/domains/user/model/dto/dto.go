package dto

import (
	"lodge/internal/domains/user/model"
	gDto "lodge/shared/dto"
)

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	HotelID  string `json:"hotel_id,omitempty"`
	Active   bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Email = mod.Email
	r.FullName = mod.FullName
	r.Role = mod.Role
	r.Phone = mod.Phone
	r.Active = mod.Active

	if mod.HotelID != nil {
		r.HotelID = *mod.HotelID
	}

	r.Metadata.FromModel(mod.Metadata)
}
