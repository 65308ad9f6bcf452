package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/adapter/repo/gorm/model"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/domain/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultArchive struct {
	db *gorm.DB
}

func NewResultArchive(db *gorm.DB) ResultArchive {
	return ResultArchive{db: db}
}

// Save replaces any earlier result stored for the session.
func (r ResultArchive) Save(ctx context.Context, result ports.GameResult) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	row := model.GameResult{
		SessionID:  result.SessionID,
		Name:       result.Name,
		Rounds:     int32(result.Rounds),
		FinishedAt: result.FinishedAt,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "rounds", "finished_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}
	if err := db.Where("session_id = ?", result.SessionID).Delete(&model.SeatResult{}).Error; err != nil {
		return err
	}
	if len(result.Seats) == 0 {
		return nil
	}
	seats := make([]model.SeatResult, 0, len(result.Seats))
	for _, s := range result.Seats {
		breakdown, err := json.Marshal(s.Breakdown)
		if err != nil {
			return err
		}
		seats = append(seats, model.SeatResult{
			SessionID: result.SessionID,
			SeatID:    s.SeatID,
			Name:      s.Name,
			Kind:      string(s.Kind),
			Faction:   string(s.Faction),
			Score:     int32(s.Score),
			Rank:      int32(s.Rank),
			Breakdown: breakdown,
		})
	}
	return db.Create(&seats).Error
}

func (r ResultArchive) Get(ctx context.Context, sessionID string) (ports.GameResult, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	var row model.GameResult
	if err := db.Where("session_id = ?", sessionID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.GameResult{}, ports.ErrNotFound
		}
		return ports.GameResult{}, err
	}
	seats, err := r.seatsFor(db, []string{sessionID})
	if err != nil {
		return ports.GameResult{}, err
	}
	return toResult(row, seats[sessionID]), nil
}

func (r ResultArchive) List(ctx context.Context, limit int) ([]ports.GameResult, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	rows := []model.GameResult{}
	query := db.Clauses(clause.OrderBy{
		Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "finished_at"}, Desc: true},
			{Column: clause.Column{Name: "session_id"}},
		},
	})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SessionID)
	}
	seats, err := r.seatsFor(db, ids)
	if err != nil {
		return nil, err
	}
	out := make([]ports.GameResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, toResult(row, seats[row.SessionID]))
	}
	return out, nil
}

func (r ResultArchive) seatsFor(db *gorm.DB, sessionIDs []string) (map[string][]model.SeatResult, error) {
	out := map[string][]model.SeatResult{}
	if len(sessionIDs) == 0 {
		return out, nil
	}
	rows := []model.SeatResult{}
	err := db.Where("session_id IN ?", sessionIDs).Order("rank ASC, seat_id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.SessionID] = append(out[row.SessionID], row)
	}
	return out, nil
}

func toResult(row model.GameResult, seats []model.SeatResult) ports.GameResult {
	out := ports.GameResult{
		SessionID:  row.SessionID,
		Name:       row.Name,
		Rounds:     int(row.Rounds),
		FinishedAt: row.FinishedAt,
		Seats:      make([]ports.SeatResult, 0, len(seats)),
	}
	for _, s := range seats {
		breakdown := map[game.ScoreCategory]int{}
		if len(s.Breakdown) > 0 {
			_ = json.Unmarshal(s.Breakdown, &breakdown)
		}
		out.Seats = append(out.Seats, ports.SeatResult{
			SeatID:    s.SeatID,
			Name:      s.Name,
			Kind:      game.SeatKind(s.Kind),
			Faction:   game.FactionID(s.Faction),
			Score:     int(s.Score),
			Rank:      int(s.Rank),
			Breakdown: breakdown,
		})
	}
	return out
}
