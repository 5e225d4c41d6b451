package model

import (
	"lodge/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldRoomNumber    = "room_number"
	FieldFloor         = "floor"
	FieldRoomType      = "room_type"
	FieldStatus        = "status"
	FieldPricePerNight = "price_per_night"
	FieldMaxOccupancy  = "max_occupancy"
	FieldImageURL      = "image_url"
)

// RoomStatus is the operational state of a physical room. Bookings only
// go onto rooms that are available; the booking lifecycle moves rooms
// between occupied, cleaning and available.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusBlocked     RoomStatus = "blocked"
	RoomStatusOutOfOrder  RoomStatus = "out_of_order"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusCleaning,
		RoomStatusMaintenance, RoomStatusBlocked, RoomStatusOutOfOrder:
		return true
	}

	return false
}

type RoomType string

const (
	RoomTypeStandard     RoomType = "standard"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypeSuite        RoomType = "suite"
	RoomTypeExecutive    RoomType = "executive"
	RoomTypePresidential RoomType = "presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeExecutive, RoomTypePresidential:
		return true
	}

	return false
}

type BedType string

const (
	BedTypeSingle BedType = "single"
	BedTypeDouble BedType = "double"
	BedTypeQueen  BedType = "queen"
	BedTypeKing   BedType = "king"
	BedTypeTwin   BedType = "twin"
)

func (t BedType) Valid() bool {
	switch t {
	case BedTypeSingle, BedTypeDouble, BedTypeQueen, BedTypeKing, BedTypeTwin:
		return true
	}

	return false
}

type Room struct {
	ID            string         `db:"id"`
	HotelID       string         `db:"hotel_id"`
	RoomNumber    string         `db:"room_number"`
	Floor         int            `db:"floor"`
	RoomType      RoomType       `db:"room_type"`
	BedType       BedType        `db:"bed_type"`
	Status        RoomStatus     `db:"status"`
	PricePerNight float64        `db:"price_per_night"`
	MaxOccupancy  int            `db:"max_occupancy"`
	Amenities     pq.StringArray `db:"amenities"`
	ImageURL      string         `db:"image_url"`
	Description   string         `db:"description"`
	model.Metadata
}
