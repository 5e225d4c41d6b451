package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID         = "id"
	FieldName       = "name"
	FieldCity       = "city"
	FieldCountry    = "country"
	FieldStarRating = "star_rating"
	FieldStatus     = "status"
	FieldRoomCount  = "room_count"
)

type HotelStatus string

const (
	HotelStatusActive   HotelStatus = "active"
	HotelStatusInactive HotelStatus = "inactive"
)

func (s HotelStatus) Valid() bool {
	switch s {
	case HotelStatusActive, HotelStatusInactive:
		return true
	}

	return false
}

type Hotel struct {
	ID         string      `db:"id"`
	Name       string      `db:"name"`
	Address    string      `db:"address"`
	City       string      `db:"city"`
	Country    string      `db:"country"`
	Phone      string      `db:"phone"`
	Email      string      `db:"email"`
	StarRating int         `db:"star_rating"`
	RoomCount  int         `db:"room_count"`
	Status     HotelStatus `db:"status"`
	model.Metadata
}
