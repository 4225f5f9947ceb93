package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const gameOrder = "games.game_date ASC, games.start_time ASC, games.id ASC"

// GameFilter is a parsed game listing query. Zero values mean "no filter".
type GameFilter struct {
	SportsCenterID uint
	StatusID       uint
	DateFrom       *models.Date
	DateTo         *models.Date
	Page           int
}

// ParseGameFilter validates the raw listing query.
func ParseGameFilter(q *dto.GameListQuery) (GameFilter, error) {
	if err := validation.Struct(q); err != nil {
		return GameFilter{}, err
	}

	f := GameFilter{Page: q.Page}
	if q.SportsCenterID != "" {
		id, err := strconv.ParseUint(q.SportsCenterID, 10, 64)
		if err != nil {
			return GameFilter{}, validation.Single("sports_center_id", "O campo sports center id deve ser um número inteiro.")
		}
		f.SportsCenterID = uint(id)
	}
	if q.StatusID != "" {
		id, err := strconv.ParseUint(q.StatusID, 10, 64)
		if err != nil {
			return GameFilter{}, validation.Single("status_id", "O campo status id deve ser um número inteiro.")
		}
		f.StatusID = uint(id)
	}
	if q.DateFrom != "" {
		d, _ := models.ParseDate(q.DateFrom)
		f.DateFrom = &d
	}
	if q.DateTo != "" {
		d, _ := models.ParseDate(q.DateTo)
		f.DateTo = &d
	}
	return f, nil
}

// scope applies the status and date filters. The sports center filter is
// part of the ownership scope.
func (f GameFilter) scope(db *gorm.DB) *gorm.DB {
	if f.StatusID != 0 {
		db = db.Where("games.status_id = ?", f.StatusID)
	}
	if f.DateFrom != nil {
		db = db.Where("games.game_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		db = db.Where("games.game_date <= ?", *f.DateTo)
	}
	return db
}

type GameService struct {
	db    *gorm.DB
	gate  *policy.Gate
	clock clockwork.Clock
	loc   *time.Location
}

func NewGameService(db *gorm.DB, gate *policy.Gate, clock clockwork.Clock, loc *time.Location) *GameService {
	return &GameService{db: db, gate: gate, clock: clock, loc: loc}
}

// List returns the games played on fields of the caller's sports centers.
func (s *GameService) List(ctx context.Context, ownerID uint, f GameFilter) (*dto.Page[models.Game], error) {
	return paginate[models.Game](ctx, s.db, f.Page, func(q *gorm.DB) *gorm.DB {
		return q.Scopes(tenant.ForOwnedGames(ownerID, f.SportsCenterID), f.scope)
	}, gameOrder, "Status", "Field.SportsCenter")
}

// ListBySportsCenter lists the games of one owned center. f.SportsCenterID is ignored.
func (s *GameService) ListBySportsCenter(ctx context.Context, ownerID, sportsCenterID uint, f GameFilter) (*dto.Page[models.Game], error) {
	sc, err := s.gate.SportsCenter(ctx, ownerID, sportsCenterID)
	if err != nil {
		return nil, err
	}
	return paginate[models.Game](ctx, s.db, f.Page, func(q *gorm.DB) *gorm.DB {
		return q.Scopes(tenant.ForOwnedGames(ownerID, sc.ID), f.scope)
	}, gameOrder, "Status", "Field")
}

// UpdateStatus sets any known status on an owned game. Transitions are not
// constrained.
func (s *GameService) UpdateStatus(ctx context.Context, ownerID, gameID uint, req *dto.UpdateGameStatusRequest) (*models.Game, error) {
	game, err := s.gate.Game(ctx, ownerID, gameID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var known int64
	if err := s.db.WithContext(ctx).Model(&models.GameStatus{}).Where("id = ?", *req.StatusID).Count(&known).Error; err != nil {
		return nil, err
	}
	if known == 0 {
		return nil, validation.Single("status_id", "O campo status id selecionado é inválido.")
	}

	if err := s.db.WithContext(ctx).Model(game).Update("status_id", *req.StatusID).Error; err != nil {
		return nil, err
	}
	return s.load(s.db.WithContext(ctx), game.ID)
}

func (s *GameService) Statuses(ctx context.Context) ([]models.GameStatus, error) {
	var statuses []models.GameStatus
	err := s.db.WithContext(ctx).Order("id").Find(&statuses).Error
	return statuses, err
}

// Create schedules a game organized by playerID, who also takes the first spot.
func (s *GameService) Create(ctx context.Context, playerID uint, req *dto.CreateGameRequest) (*models.Game, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	date, _ := models.ParseDate(req.GameDate)
	start, end := ParseHHMM(req.StartTime), ParseHHMM(req.EndTime)

	verr := &validation.Errors{}
	if date.Before(s.today()) {
		verr.Add("game_date", "A data do jogo não pode ser anterior a hoje.")
	}
	if end <= start {
		verr.Add("end_time", "O horário de término deve ser maior que o de início.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var created *models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var field models.Field
		if err := tx.First(&field, *req.FieldID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validation.Single("field_id", "O campo field id selecionado é inválido.")
			}
			return err
		}
		if err := tx.Select("id").First(&models.SportsCenter{}, field.SportsCenterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validation.Single("field_id", "O campo field id selecionado é inválido.")
			}
			return err
		}

		var hours models.OperatingHour
		err := tx.Where("sports_center_id = ? AND day_of_week = ?", field.SportsCenterID, date.Weekday()).First(&hours).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validation.Single("game_date", "O centro esportivo não funciona neste dia.")
		}
		if err != nil {
			return err
		}
		if !hours.Covers(start, end) {
			return validation.Single("start_time", "O jogo deve acontecer dentro do horário de funcionamento.")
		}

		var clashes int64
		err = tx.Model(&models.Game{}).
			Where("field_id = ? AND game_date = ? AND status_id <> ?", field.ID, date, models.GameStatusCanceled).
			Where("start_time < ? AND end_time > ?", end, start).
			Count(&clashes).Error
		if err != nil {
			return err
		}
		if clashes > 0 {
			return validation.Single("start_time", "Já existe um jogo neste campo para o horário informado.")
		}

		game := models.Game{
			GameDate:    date,
			StartTime:   start,
			EndTime:     end,
			MaxPlayers:  *req.MaxPlayers,
			StatusID:    models.GameStatusOpen,
			FieldID:     field.ID,
			OrganizerID: playerID,
		}
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		join := models.GamePlayer{GameID: game.ID, PlayerID: playerID, JoinedAt: s.clock.Now()}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}

		created, err = s.load(tx, game.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// OpenGames lists games still accepting players, from today on.
func (s *GameService) OpenGames(ctx context.Context, page int) (*dto.Page[models.Game], error) {
	today := s.today()
	return paginate[models.Game](ctx, s.db, page, func(q *gorm.DB) *gorm.DB {
		return q.Scopes(tenant.ForLiveGames).
			Where("games.status_id = ? AND games.game_date >= ?", models.GameStatusOpen, today)
	}, gameOrder, "Status", "Field.SportsCenter")
}

// MyGames lists the games playerID takes part in.
func (s *GameService) MyGames(ctx context.Context, playerID uint, page int) (*dto.Page[models.Game], error) {
	return paginate[models.Game](ctx, s.db, page, func(q *gorm.DB) *gorm.DB {
		joined := q.Session(&gorm.Session{NewDB: true}).Model(&models.GamePlayer{}).
			Select("game_id").Where("player_id = ?", playerID)
		return q.Where("games.id IN (?)", joined)
	}, gameOrder, "Status", "Field.SportsCenter")
}

// Join adds playerID to an open game. The join that takes the last spot
// marks the game full.
func (s *GameService) Join(ctx context.Context, playerID, gameID uint) (*models.Game, error) {
	var joined *models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := s.lock(tx, gameID)
		if err != nil {
			return err
		}
		if game.StatusID != models.GameStatusOpen {
			return validation.Single("game", "Este jogo não está aberto para novos jogadores.")
		}

		var live int64
		if err := tx.Model(&models.Game{}).Scopes(tenant.ForLiveGames).Where("games.id = ?", game.ID).Count(&live).Error; err != nil {
			return err
		}
		if live == 0 {
			return validation.Single("game", "O local deste jogo não está mais disponível.")
		}

		var already int64
		if err := tx.Model(&models.GamePlayer{}).Where("game_id = ? AND player_id = ?", game.ID, playerID).Count(&already).Error; err != nil {
			return err
		}
		if already > 0 {
			return validation.Single("game", "Você já está participando deste jogo.")
		}

		players, err := s.playerCount(tx, game.ID)
		if err != nil {
			return err
		}
		if players >= int64(game.MaxPlayers) {
			return validation.Single("game", "Este jogo está lotado.")
		}

		join := models.GamePlayer{GameID: game.ID, PlayerID: playerID, JoinedAt: s.clock.Now()}
		if err := tx.Create(&join).Error; err != nil {
			return err
		}
		if players+1 >= int64(game.MaxPlayers) {
			if err := tx.Model(game).Update("status_id", models.GameStatusFull).Error; err != nil {
				return err
			}
		}

		joined, err = s.load(tx, game.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// Leave removes playerID from the game. A full game reopens. The organizer
// cannot leave.
func (s *GameService) Leave(ctx context.Context, playerID, gameID uint) (*models.Game, error) {
	var left *models.Game
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := s.lock(tx, gameID)
		if err != nil {
			return err
		}
		if game.OrganizerID == playerID {
			return validation.Single("game", "O organizador não pode sair do jogo.")
		}

		res := tx.Where("game_id = ? AND player_id = ?", game.ID, playerID).Delete(&models.GamePlayer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return validation.Single("game", "Você não está participando deste jogo.")
		}

		if game.StatusID == models.GameStatusFull {
			if err := tx.Model(game).Update("status_id", models.GameStatusOpen).Error; err != nil {
				return err
			}
		}

		left, err = s.load(tx, game.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return left, nil
}

func (s *GameService) lock(tx *gorm.DB, gameID uint) (*models.Game, error) {
	var game models.Game
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

func (s *GameService) playerCount(tx *gorm.DB, gameID uint) (int64, error) {
	var n int64
	err := tx.Model(&models.GamePlayer{}).Where("game_id = ?", gameID).Count(&n).Error
	return n, err
}

func (s *GameService) load(db *gorm.DB, id uint) (*models.Game, error) {
	var game models.Game
	if err := db.Preload("Status").Preload("Field.SportsCenter").First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *GameService) today() models.Date {
	return models.NewDate(s.clock.Now().In(s.loc))
}

// Authorize checks ownerID owns the game's field chain.
func (s *GameService) Authorize(ctx context.Context, ownerID, gameID uint) error {
	_, err := s.gate.Game(ctx, ownerID, gameID)
	return err
}
