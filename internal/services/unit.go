package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
)

type UnitInput struct {
	GradeID     uint   `json:"gradeId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type UnitService interface {
	Create(ctx context.Context, input UnitInput) (*types.Unit, error)
	List(ctx context.Context) ([]taxonomy.EnrichedUnit, error)
	ListByGrade(ctx context.Context, gradeID uint) ([]types.Unit, error)
	GetByID(ctx context.Context, id uint) (*types.Unit, error)
	Update(ctx context.Context, id uint, input UnitInput) (*types.Unit, error)
	Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error
	Delete(ctx context.Context, id uint) error
}

type unitService struct {
	db        *gorm.DB
	log       *logger.Logger
	unitRepo  repos.UnitRepo
	gradeRepo repos.GradeRepo
	store     *taxonomy.Store
}

func NewUnitService(db *gorm.DB, log *logger.Logger, unitRepo repos.UnitRepo, gradeRepo repos.GradeRepo, store *taxonomy.Store) UnitService {
	serviceLog := log.With("service", "UnitService")
	return &unitService{db: db, log: serviceLog, unitRepo: unitRepo, gradeRepo: gradeRepo, store: store}
}

func (us *unitService) Create(ctx context.Context, input UnitInput) (*types.Unit, error) {
	if _, err := us.gradeRepo.GetByID(ctx, nil, input.GradeID); err != nil {
		return nil, fmt.Errorf("grade not found: %d", input.GradeID)
	}

	unit := &types.Unit{
		GradeID:     input.GradeID,
		Name:        strings.TrimSpace(input.Name),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	}
	if unit.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := us.unitRepo.Create(ctx, nil, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}

	us.invalidate(ctx)
	return unit, nil
}

func (us *unitService) List(ctx context.Context) ([]taxonomy.EnrichedUnit, error) {
	units, err := us.unitRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	sn := us.store.Snapshot()
	out := make([]taxonomy.EnrichedUnit, 0, len(units))
	for _, u := range units {
		out = append(out, sn.EnrichUnit(u))
	}
	return out, nil
}

func (us *unitService) ListByGrade(ctx context.Context, gradeID uint) ([]types.Unit, error) {
	if gradeID == 0 {
		return []types.Unit{}, nil
	}
	return us.unitRepo.GetByGradeID(ctx, nil, gradeID)
}

func (us *unitService) GetByID(ctx context.Context, id uint) (*types.Unit, error) {
	return us.unitRepo.GetByID(ctx, nil, id)
}

func (us *unitService) Update(ctx context.Context, id uint, input UnitInput) (*types.Unit, error) {
	unit, err := us.unitRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("unit not found")
	}
	if input.GradeID != 0 && input.GradeID != unit.GradeID {
		if _, err := us.gradeRepo.GetByID(ctx, nil, input.GradeID); err != nil {
			return nil, fmt.Errorf("grade not found: %d", input.GradeID)
		}
		unit.GradeID = input.GradeID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	unit.Name = name
	unit.DisplayName = strings.TrimSpace(input.DisplayName)
	unit.Description = input.Description
	unit.OrderIndex = input.OrderIndex
	if _, err := us.unitRepo.Update(ctx, nil, unit); err != nil {
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}

	us.invalidate(ctx)
	return unit, nil
}

func (us *unitService) Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error {
	unit, err := us.unitRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("unit not found")
	}

	siblings := us.store.Snapshot().ChildrenOf(unit.GradeID, taxonomy.RankUnit)
	current, neighbor, ok := taxonomy.PlanReorder(siblings, id, dir)
	if !ok {
		return nil
	}

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := us.unitRepo.GetByID(ctx, tx, current.ID)
		if err != nil {
			return err
		}
		b, err := us.unitRepo.GetByID(ctx, tx, neighbor.ID)
		if err != nil {
			return err
		}
		a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex
		if _, err := us.unitRepo.Update(ctx, tx, a); err != nil {
			return err
		}
		_, err = us.unitRepo.Update(ctx, tx, b)
		return err
	}); err != nil {
		return fmt.Errorf("failed to reorder unit: %w", err)
	}

	us.invalidate(ctx)
	return nil
}

func (us *unitService) Delete(ctx context.Context, id uint) error {
	if err := us.unitRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	us.invalidate(ctx)
	return nil
}

func (us *unitService) invalidate(ctx context.Context) {
	if _, err := us.store.Invalidate(ctx); err != nil {
		us.log.Warn("Snapshot reload failed after unit mutation", "error", err)
	}
}
