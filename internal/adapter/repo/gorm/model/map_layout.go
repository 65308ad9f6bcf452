package model

import "time"

const TableNameMapLayout = "map_layouts"

type MapLayout struct {
	Seats     int32     `gorm:"column:seats;primaryKey" json:"seats"`
	Seed      int64     `gorm:"column:seed;primaryKey" json:"seed"`
	Tiles     []byte    `gorm:"column:tiles;type:jsonb;not null" json:"tiles"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*MapLayout) TableName() string {
	return TableNameMapLayout
}
