package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"basketball-manager/internal/core/cache"
	"basketball-manager/internal/core/validate"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
)

const settingsCacheKey = "settings:all"

type SettingsService struct {
	settings *repo.DeletableRepository[domain.Setting, *domain.Setting]
	cache    *cache.Cache
	ttl      time.Duration
	v        *validate.Validator
	log      *zap.Logger
}

// NewSettingsService works without a cache when c is nil.
func NewSettingsService(db *gorm.DB, c *cache.Cache, ttl time.Duration, v *validate.Validator, log *zap.Logger) *SettingsService {
	return &SettingsService{
		settings: repo.NewDeletableRepository[domain.Setting, *domain.Setting](db),
		cache:    c,
		ttl:      ttl,
		v:        v,
		log:      log,
	}
}

func (s *SettingsService) GetCount(ctx context.Context) (int64, error) {
	return s.settings.Count(ctx)
}

func (s *SettingsService) All(ctx context.Context) ([]domain.Setting, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	return cache.GetOrLoadJSON(ctx, s.cache, settingsCacheKey, s.ttl, s.load)
}

func (s *SettingsService) load(ctx context.Context) ([]domain.Setting, error) {
	var items []domain.Setting
	err := s.settings.Query(ctx).Order("name").Find(&items).Error
	return items, err
}

type SetSettingInput struct {
	Name  string `json:"name" validate:"required,max=128"`
	Value string `json:"value"`
}

// Set creates or updates the named setting.
func (s *SettingsService) Set(ctx context.Context, in SetSettingInput) (*domain.Setting, error) {
	if err := s.v.Struct(in); err != nil {
		return nil, invalid(err)
	}
	var st domain.Setting
	err := s.settings.Query(ctx).Where("name = ?", in.Name).First(&st).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		st = domain.Setting{Name: in.Name, Value: in.Value}
		err = s.settings.Add(ctx, &st)
	case err == nil:
		st.Value = in.Value
		err = s.settings.Update(ctx, &st)
	}
	if err != nil {
		return nil, translate(err, "save setting")
	}
	s.invalidate(ctx)
	return &st, nil
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		s.log.Warn("settings cache invalidation failed", zap.Error(err))
	}
}
