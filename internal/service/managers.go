package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"basketball-manager/internal/core/validate"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/pkg/utils"
)

// Starting balance of a new manager.
const (
	StartingCash           = 10000
	StartingTrainingPoints = 100
)

type ManagerService struct {
	db       *gorm.DB
	managers *repo.DeletableRepository[domain.Manager, *domain.Manager]
	v        *validate.Validator
	log      *zap.Logger
}

func NewManagerService(db *gorm.DB, v *validate.Validator, log *zap.Logger) *ManagerService {
	return &ManagerService{
		db:       db,
		managers: repo.NewDeletableRepository[domain.Manager, *domain.Manager](db),
		v:        v,
		log:      log,
	}
}

type CreateManagerInput struct {
	FirstName  string `json:"firstName" validate:"required,max=15"`
	LastName   string `json:"lastName" validate:"required,max=15"`
	TeamName   string `json:"teamName" validate:"required,max=20"`
	TeamColour int    `json:"teamColour" validate:"gte=0,lte=16777215"`
	IconURL    string `json:"iconUrl" validate:"omitempty,url"`
}

// Create makes the user's manager together with its team.
func (s *ManagerService) Create(ctx context.Context, userID string, in CreateManagerInput) (*domain.Manager, error) {
	if err := s.v.Struct(in); err != nil {
		return nil, invalid(err)
	}
	m := &domain.Manager{
		ID:             utils.NewID(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Cash:           StartingCash,
		TrainingPoints: StartingTrainingPoints,
		UserID:         userID,
	}
	m.Team = &domain.Team{
		ID:         utils.NewID(),
		Name:       in.TeamName,
		IconURL:    in.IconURL,
		TeamColour: in.TeamColour,
		ManagerID:  m.ID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrapf(ErrNotFound, "user %s", userID)
		}
		// the unique key on user_id also covers deleted managers
		if err := tx.Unscoped().Model(&domain.Manager{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errors.Wrapf(ErrConflict, "user %s already has a manager", userID)
		}
		return tx.Create(m).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, translate(err, "create manager")
	}
	s.log.Info("manager created", zap.String("manager_id", m.ID), zap.String("user_id", userID))
	return m, nil
}

// ByUser returns the visible manager of a user with its team, or ErrNotFound.
func (s *ManagerService) ByUser(ctx context.Context, userID string) (*domain.Manager, error) {
	var m domain.Manager
	err := s.managers.Query(ctx).Preload("Team").Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ManagerService) Get(ctx context.Context, id string) (*domain.Manager, error) {
	m, err := s.managers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

// Delete flags the manager deleted. Its team is hidden with it.
func (s *ManagerService) Delete(ctx context.Context, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.managers.Delete(ctx, m)
}

// Purge removes the manager row. The database removes the team with it and
// refuses while matches, leagues or participations still reference it.
func (s *ManagerService) Purge(ctx context.Context, id string) error {
	m, err := s.managers.GetByIDWithDeleted(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrNotFound
	}
	if err := s.managers.HardDelete(ctx, m); err != nil {
		return translate(err, "purge manager")
	}
	s.log.Info("manager purged", zap.String("manager_id", id))
	return nil
}
