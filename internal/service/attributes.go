package service

import (
	"context"

	"gorm.io/gorm"

	"basketball-manager/internal/core/validate"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
)

type AttributesService struct {
	attributes *repo.DeletableRepository[domain.Attributes, *domain.Attributes]
	v          *validate.Validator
}

func NewAttributesService(db *gorm.DB, v *validate.Validator) *AttributesService {
	return &AttributesService{
		attributes: repo.NewDeletableRepository[domain.Attributes, *domain.Attributes](db),
		v:          v,
	}
}

type AddAttributesInput struct {
	Position string `json:"position" validate:"required,max=32"`
	Level    int    `json:"level"`
}

// AddAttributes stores a new attributes record for a player of the given
// position and level. Every skill starts at the level; any integer level is
// accepted.
func (s *AttributesService) AddAttributes(ctx context.Context, position string, level int) (*domain.Attributes, error) {
	in := AddAttributesInput{Position: position, Level: level}
	if err := s.v.Struct(in); err != nil {
		return nil, invalid(err)
	}
	a := &domain.Attributes{
		Level:      level,
		Position:   position,
		Shooting:   level,
		Rebounding: level,
		Assisting:  level,
		Stealing:   level,
		Blocking:   level,
	}
	if err := s.attributes.Add(ctx, a); err != nil {
		return nil, translate(err, "add attributes")
	}
	return a, nil
}

// Get returns ErrNotFound for missing or deleted records.
func (s *AttributesService) Get(ctx context.Context, id uint) (*domain.Attributes, error) {
	a, err := s.attributes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}
