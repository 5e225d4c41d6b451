package dto

import (
	"mime/multipart"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	HotelID       string   `json:"hotel_id"        validate:"required"`
	RoomNumber    string   `json:"room_number"     validate:"required,max=10"`
	Floor         int      `json:"floor"           validate:"omitempty,gte=0"`
	RoomType      string   `json:"room_type"       validate:"required,oneof=standard deluxe suite executive presidential"`
	BedType       string   `json:"bed_type"        validate:"omitempty,oneof=single double queen king twin"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	MaxOccupancy  int      `json:"max_occupancy"   validate:"required,gte=1"`
	Amenities     []string `json:"amenities"       validate:"omitempty"`
	Description   string   `json:"description"     validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	bedType := model.BedTypeDouble
	if c.BedType != "" {
		bedType = model.BedType(c.BedType)
	}

	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       c.HotelID,
		RoomNumber:    c.RoomNumber,
		Floor:         c.Floor,
		RoomType:      model.RoomType(c.RoomType),
		BedType:       bedType,
		Status:        model.RoomStatusAvailable,
		PricePerNight: c.PricePerNight,
		MaxOccupancy:  c.MaxOccupancy,
		Amenities:     pq.StringArray(c.Amenities),
		Description:   c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string   `db:"room_number"     json:"room_number"     validate:"omitempty,max=10"`
	Floor         int      `db:"floor"           json:"floor"           validate:"omitempty,gte=0"`
	RoomType      string   `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=standard deluxe suite executive presidential"`
	BedType       string   `db:"bed_type"        json:"bed_type"        validate:"omitempty,oneof=single double queen king twin"`
	PricePerNight float64  `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	MaxOccupancy  int      `db:"max_occupancy"   json:"max_occupancy"   validate:"omitempty,gte=1"`
	Description   string   `db:"description"     json:"description"     validate:"omitempty,max=500"`
	Amenities     []string `json:"amenities"     validate:"omitempty"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied cleaning maintenance blocked out_of_order"`
}

type UploadRoomImageRequest struct {
	RoomID    string
	Image     *multipart.FileHeader `validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	ImageFile multipart.File
}

type UploadRoomImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type CheckAvailabilityRequest struct {
	HotelID  string `json:"hotel_id"  validate:"required"`
	RoomID   string `json:"room_id"   validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
}

type CheckAvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	HotelID       string   `json:"hotel_id"`
	RoomNumber    string   `json:"room_number"`
	Floor         int      `json:"floor"`
	RoomType      string   `json:"room_type"`
	BedType       string   `json:"bed_type"`
	Status        string   `json:"status"`
	PricePerNight float64  `json:"price_per_night"`
	MaxOccupancy  int      `json:"max_occupancy"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"image_url"`
	Description   string   `json:"description"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.RoomNumber = mod.RoomNumber
	r.Floor = mod.Floor
	r.RoomType = string(mod.RoomType)
	r.BedType = string(mod.BedType)
	r.Status = string(mod.Status)
	r.PricePerNight = mod.PricePerNight
	r.MaxOccupancy = mod.MaxOccupancy
	r.Amenities = mod.Amenities
	r.ImageURL = mod.ImageURL
	r.Description = mod.Description
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
