package model

import "time"

const (
	TableNameGameResult = "game_results"
	TableNameSeatResult = "seat_results"
)

type GameResult struct {
	SessionID  string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Rounds     int32     `gorm:"column:rounds;not null" json:"rounds"`
	FinishedAt time.Time `gorm:"column:finished_at;not null" json:"finished_at"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*GameResult) TableName() string {
	return TableNameGameResult
}

type SeatResult struct {
	SessionID string `gorm:"column:session_id;primaryKey" json:"session_id"`
	SeatID    string `gorm:"column:seat_id;primaryKey" json:"seat_id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Kind      string `gorm:"column:kind;not null" json:"kind"`
	Faction   string `gorm:"column:faction;not null" json:"faction"`
	Score     int32  `gorm:"column:score;not null" json:"score"`
	Rank      int32  `gorm:"column:rank;not null" json:"rank"`
	Breakdown []byte `gorm:"column:breakdown;type:jsonb;not null" json:"breakdown"`
}

func (*SeatResult) TableName() string {
	return TableNameSeatResult
}
