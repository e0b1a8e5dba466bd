package model

import (
	"github.com/lib/pq"

	"inn/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldName          = "name"
	FieldType          = "type"
	FieldFloor         = "floor"
	FieldCapacity      = "capacity"
	FieldPricePerNight = "price_per_night"
	FieldAmenities     = "amenities"
)

type Room struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Type          string         `db:"type"`
	Floor         int            `db:"floor"`
	Capacity      int            `db:"capacity"`
	PricePerNight float64        `db:"price_per_night"`
	Amenities     pq.StringArray `db:"amenities"`
	model.Metadata
}
