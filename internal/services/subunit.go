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

type SubUnitInput struct {
	UnitID      uint   `json:"unitId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type SubUnitService interface {
	Create(ctx context.Context, input SubUnitInput) (*types.SubUnit, error)
	List(ctx context.Context) ([]taxonomy.EnrichedSubUnit, error)
	ListByUnit(ctx context.Context, unitID uint) ([]types.SubUnit, error)
	GetByID(ctx context.Context, id uint) (*types.SubUnit, error)
	Update(ctx context.Context, id uint, input SubUnitInput) (*types.SubUnit, error)
	Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error
	Delete(ctx context.Context, id uint) error
}

type subUnitService struct {
	db          *gorm.DB
	log         *logger.Logger
	subUnitRepo repos.SubUnitRepo
	unitRepo    repos.UnitRepo
	store       *taxonomy.Store
}

func NewSubUnitService(db *gorm.DB, log *logger.Logger, subUnitRepo repos.SubUnitRepo, unitRepo repos.UnitRepo, store *taxonomy.Store) SubUnitService {
	serviceLog := log.With("service", "SubUnitService")
	return &subUnitService{db: db, log: serviceLog, subUnitRepo: subUnitRepo, unitRepo: unitRepo, store: store}
}

func (ss *subUnitService) Create(ctx context.Context, input SubUnitInput) (*types.SubUnit, error) {
	if _, err := ss.unitRepo.GetByID(ctx, nil, input.UnitID); err != nil {
		return nil, fmt.Errorf("unit not found: %d", input.UnitID)
	}

	subUnit := &types.SubUnit{
		UnitID:      input.UnitID,
		Name:        strings.TrimSpace(input.Name),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	}
	if subUnit.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := ss.subUnitRepo.Create(ctx, nil, subUnit); err != nil {
		return nil, fmt.Errorf("failed to create sub-unit: %w", err)
	}

	ss.invalidate(ctx)
	return subUnit, nil
}

func (ss *subUnitService) List(ctx context.Context) ([]taxonomy.EnrichedSubUnit, error) {
	subUnits, err := ss.subUnitRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	sn := ss.store.Snapshot()
	out := make([]taxonomy.EnrichedSubUnit, 0, len(subUnits))
	for _, su := range subUnits {
		out = append(out, sn.EnrichSubUnit(su))
	}
	return out, nil
}

func (ss *subUnitService) ListByUnit(ctx context.Context, unitID uint) ([]types.SubUnit, error) {
	if unitID == 0 {
		return []types.SubUnit{}, nil
	}
	return ss.subUnitRepo.GetByUnitID(ctx, nil, unitID)
}

func (ss *subUnitService) GetByID(ctx context.Context, id uint) (*types.SubUnit, error) {
	return ss.subUnitRepo.GetByID(ctx, nil, id)
}

func (ss *subUnitService) Update(ctx context.Context, id uint, input SubUnitInput) (*types.SubUnit, error) {
	subUnit, err := ss.subUnitRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("sub-unit not found")
	}
	if input.UnitID != 0 && input.UnitID != subUnit.UnitID {
		if _, err := ss.unitRepo.GetByID(ctx, nil, input.UnitID); err != nil {
			return nil, fmt.Errorf("unit not found: %d", input.UnitID)
		}
		subUnit.UnitID = input.UnitID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	subUnit.Name = name
	subUnit.DisplayName = strings.TrimSpace(input.DisplayName)
	subUnit.Description = input.Description
	subUnit.OrderIndex = input.OrderIndex
	if _, err := ss.subUnitRepo.Update(ctx, nil, subUnit); err != nil {
		return nil, fmt.Errorf("failed to update sub-unit: %w", err)
	}

	ss.invalidate(ctx)
	return subUnit, nil
}

func (ss *subUnitService) Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error {
	subUnit, err := ss.subUnitRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("sub-unit not found")
	}

	siblings := ss.store.Snapshot().ChildrenOf(subUnit.UnitID, taxonomy.RankSubUnit)
	current, neighbor, ok := taxonomy.PlanReorder(siblings, id, dir)
	if !ok {
		return nil
	}

	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := ss.subUnitRepo.GetByID(ctx, tx, current.ID)
		if err != nil {
			return err
		}
		b, err := ss.subUnitRepo.GetByID(ctx, tx, neighbor.ID)
		if err != nil {
			return err
		}
		a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex
		if _, err := ss.subUnitRepo.Update(ctx, tx, a); err != nil {
			return err
		}
		_, err = ss.subUnitRepo.Update(ctx, tx, b)
		return err
	}); err != nil {
		return fmt.Errorf("failed to reorder sub-unit: %w", err)
	}

	ss.invalidate(ctx)
	return nil
}

func (ss *subUnitService) Delete(ctx context.Context, id uint) error {
	if err := ss.subUnitRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete sub-unit: %w", err)
	}
	ss.invalidate(ctx)
	return nil
}

func (ss *subUnitService) invalidate(ctx context.Context) {
	if _, err := ss.store.Invalidate(ctx); err != nil {
		ss.log.Warn("Snapshot reload failed after sub-unit mutation", "error", err)
	}
}
