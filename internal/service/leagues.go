package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"basketball-manager/internal/core/validate"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/pkg/utils"
)

const participantsTable = "league_participants"

type LeagueService struct {
	db      *gorm.DB
	leagues *repo.DeletableRepository[domain.League, *domain.League]
	matches *repo.DeletableRepository[domain.Match, *domain.Match]
	v       *validate.Validator
}

func NewLeagueService(db *gorm.DB, v *validate.Validator) *LeagueService {
	return &LeagueService{
		db:      db,
		leagues: repo.NewDeletableRepository[domain.League, *domain.League](db),
		matches: repo.NewDeletableRepository[domain.Match, *domain.Match](db),
		v:       v,
	}
}

type CreateLeagueInput struct {
	Name string `json:"name" validate:"required,max=64"`
}

// Create opens a league; the creator is its first participant.
func (s *LeagueService) Create(ctx context.Context, creatorID string, in CreateLeagueInput) (*domain.League, error) {
	if err := s.v.Struct(in); err != nil {
		return nil, invalid(err)
	}
	l := &domain.League{ID: utils.NewID(), Name: in.Name, CreatorID: &creatorID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireManager(tx, creatorID); err != nil {
			return err
		}
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		return addParticipant(tx, l.ID, creatorID)
	})
	if err != nil {
		return nil, mapTxError(err, "create league")
	}
	return l, nil
}

// Join adds a manager to a league. Joining twice is a conflict.
func (s *LeagueService) Join(ctx context.Context, leagueID, managerID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := visibleLeague(tx, leagueID); err != nil {
			return err
		}
		if err := requireManager(tx, managerID); err != nil {
			return err
		}
		joined, err := isParticipant(tx, leagueID, managerID)
		if err != nil {
			return err
		}
		if joined {
			return errors.Wrapf(ErrConflict, "manager %s already in league %s", managerID, leagueID)
		}
		return addParticipant(tx, leagueID, managerID)
	})
	return mapTxError(err, "join league")
}

// Get loads a league with its visible participants and matches.
func (s *LeagueService) Get(ctx context.Context, id string) (*domain.League, error) {
	var l domain.League
	err := s.leagues.Query(ctx).
		Preload("Participants").
		Preload("Matches", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
		Where("id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type ScheduleMatchInput struct {
	HomeID string    `json:"homeId" validate:"required"`
	AwayID string    `json:"awayId" validate:"required,nefield=HomeID"`
	Date   time.Time `json:"date" validate:"required"`
}

// ScheduleMatch adds a match between two participants of a visible league.
// The caller must be the league creator or one of its participants.
func (s *LeagueService) ScheduleMatch(ctx context.Context, callerID, leagueID string, in ScheduleMatchInput) (*domain.Match, error) {
	if err := s.v.Struct(in); err != nil {
		return nil, invalid(err)
	}
	m := &domain.Match{
		ID:            utils.NewID(),
		Date:          in.Date.UTC(),
		LeagueID:      &leagueID,
		ManagerHomeID: in.HomeID,
		ManagerAwayID: in.AwayID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := visibleLeague(tx, leagueID)
		if err != nil {
			return err
		}
		member, err := isParticipant(tx, leagueID, callerID)
		if err != nil {
			return err
		}
		if !member && !isCreator(l, callerID) {
			return errors.Wrapf(ErrForbidden, "manager %s is not part of league %s", callerID, leagueID)
		}
		for _, id := range []string{m.ManagerHomeID, m.ManagerAwayID} {
			if err := requireManager(tx, id); err != nil {
				return err
			}
			ok, err := isParticipant(tx, leagueID, id)
			if err != nil {
				return err
			}
			if !ok {
				return errors.Wrap(ErrInvalidInput, "both managers must take part in the league")
			}
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, mapTxError(err, "schedule match")
	}
	return m, nil
}

// RecordScore stores the final score of a match. Only the two managers of
// the match and the creator of its league may record it.
func (s *LeagueService) RecordScore(ctx context.Context, callerID, matchID string, team1, team2 int) (*domain.Match, error) {
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	if callerID != m.ManagerHomeID && callerID != m.ManagerAwayID {
		allowed := false
		if m.LeagueID != nil {
			l, err := s.leagues.GetByID(ctx, *m.LeagueID)
			if err != nil {
				return nil, err
			}
			allowed = l != nil && isCreator(l, callerID)
		}
		if !allowed {
			return nil, errors.Wrapf(ErrForbidden, "manager %s may not score match %s", callerID, matchID)
		}
	}
	if team1 < 0 || team2 < 0 {
		return nil, errors.Wrap(ErrInvalidInput, "scores must not be negative")
	}
	m.Team1Score, m.Team2Score = team1, team2
	if err := s.matches.Update(ctx, m); err != nil {
		return nil, translate(err, "record score")
	}
	return m, nil
}

// visibleLeague goes through the soft-delete filter.
func visibleLeague(tx *gorm.DB, id string) (*domain.League, error) {
	var l domain.League
	err := tx.Where("id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "league %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func isCreator(l *domain.League, managerID string) bool {
	return l.CreatorID != nil && *l.CreatorID == managerID
}

func isParticipant(tx *gorm.DB, leagueID, managerID string) (bool, error) {
	var n int64
	err := tx.Table(participantsTable).
		Where("league_id = ? AND manager_id = ?", leagueID, managerID).
		Count(&n).Error
	return n > 0, err
}

func requireManager(tx *gorm.DB, id string) error {
	var n int64
	if err := tx.Model(&domain.Manager{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "manager %s", id)
	}
	return nil
}

func addParticipant(tx *gorm.DB, leagueID, managerID string) error {
	return tx.Table(participantsTable).Create(map[string]interface{}{
		"league_id":  leagueID,
		"manager_id": managerID,
	}).Error
}

func mapTxError(err error, op string) error {
	if err == nil || errors.IsAny(err, ErrNotFound, ErrConflict, ErrInvalidInput, ErrForbidden) {
		return err
	}
	return translate(err, op)
}
