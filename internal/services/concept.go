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

type ConceptInput struct {
	SubUnitID   *uint  `json:"subUnitId"`
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type ConceptService interface {
	Create(ctx context.Context, input ConceptInput) (*types.Concept, error)
	List(ctx context.Context) ([]taxonomy.EnrichedConcept, error)
	ListBySubUnit(ctx context.Context, subUnitID uint) ([]types.Concept, error)
	GetByID(ctx context.Context, id uint) (*types.Concept, error)
	Update(ctx context.Context, id uint, input ConceptInput) (*types.Concept, error)
	Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error
	Delete(ctx context.Context, id uint) error
}

type conceptService struct {
	db          *gorm.DB
	log         *logger.Logger
	conceptRepo repos.ConceptRepo
	subUnitRepo repos.SubUnitRepo
	store       *taxonomy.Store
}

func NewConceptService(db *gorm.DB, log *logger.Logger, conceptRepo repos.ConceptRepo, subUnitRepo repos.SubUnitRepo, store *taxonomy.Store) ConceptService {
	serviceLog := log.With("service", "ConceptService")
	return &conceptService{db: db, log: serviceLog, conceptRepo: conceptRepo, subUnitRepo: subUnitRepo, store: store}
}

// Create rejects duplicate concept names globally; concepts are looked up by
// name when questions are tagged, so names must stay unique.
func (cs *conceptService) Create(ctx context.Context, input ConceptInput) (*types.Concept, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	exists, err := cs.conceptRepo.NameExists(ctx, nil, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check concept name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("concept name already exists: %s", name)
	}

	subUnitID := normalizeRef(input.SubUnitID)
	if subUnitID != nil {
		if _, err := cs.subUnitRepo.GetByID(ctx, nil, *subUnitID); err != nil {
			return nil, fmt.Errorf("sub-unit not found: %d", *subUnitID)
		}
	}

	concept := &types.Concept{
		SubUnitID:   subUnitID,
		Name:        name,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	}
	if _, err := cs.conceptRepo.Create(ctx, nil, concept); err != nil {
		return nil, fmt.Errorf("failed to create concept: %w", err)
	}

	cs.invalidate(ctx)
	return concept, nil
}

func (cs *conceptService) List(ctx context.Context) ([]taxonomy.EnrichedConcept, error) {
	concepts, err := cs.conceptRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	sn := cs.store.Snapshot()
	out := make([]taxonomy.EnrichedConcept, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, sn.EnrichConcept(c))
	}
	return out, nil
}

func (cs *conceptService) ListBySubUnit(ctx context.Context, subUnitID uint) ([]types.Concept, error) {
	if subUnitID == 0 {
		return []types.Concept{}, nil
	}
	return cs.conceptRepo.GetBySubUnitID(ctx, nil, subUnitID)
}

func (cs *conceptService) GetByID(ctx context.Context, id uint) (*types.Concept, error) {
	return cs.conceptRepo.GetByID(ctx, nil, id)
}

func (cs *conceptService) Update(ctx context.Context, id uint, input ConceptInput) (*types.Concept, error) {
	concept, err := cs.conceptRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("concept not found")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	exists, err := cs.conceptRepo.NameExists(ctx, nil, name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check concept name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("concept name already exists: %s", name)
	}

	subUnitID := normalizeRef(input.SubUnitID)
	if subUnitID != nil {
		if _, err := cs.subUnitRepo.GetByID(ctx, nil, *subUnitID); err != nil {
			return nil, fmt.Errorf("sub-unit not found: %d", *subUnitID)
		}
	}

	concept.SubUnitID = subUnitID
	concept.Name = name
	concept.DisplayName = strings.TrimSpace(input.DisplayName)
	concept.Description = input.Description
	concept.OrderIndex = input.OrderIndex
	if _, err := cs.conceptRepo.Update(ctx, nil, concept); err != nil {
		return nil, fmt.Errorf("failed to update concept: %w", err)
	}

	cs.invalidate(ctx)
	return concept, nil
}

func (cs *conceptService) Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error {
	concept, err := cs.conceptRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("concept not found")
	}
	if concept.SubUnitID == nil {
		// unfiled concepts have no sibling order to change
		return nil
	}

	siblings := cs.store.Snapshot().ChildrenOf(*concept.SubUnitID, taxonomy.RankConcept)
	current, neighbor, ok := taxonomy.PlanReorder(siblings, id, dir)
	if !ok {
		return nil
	}

	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := cs.conceptRepo.GetByID(ctx, tx, current.ID)
		if err != nil {
			return err
		}
		b, err := cs.conceptRepo.GetByID(ctx, tx, neighbor.ID)
		if err != nil {
			return err
		}
		a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex
		if _, err := cs.conceptRepo.Update(ctx, tx, a); err != nil {
			return err
		}
		_, err = cs.conceptRepo.Update(ctx, tx, b)
		return err
	}); err != nil {
		return fmt.Errorf("failed to reorder concept: %w", err)
	}

	cs.invalidate(ctx)
	return nil
}

func (cs *conceptService) Delete(ctx context.Context, id uint) error {
	if err := cs.conceptRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete concept: %w", err)
	}
	cs.invalidate(ctx)
	return nil
}

func (cs *conceptService) invalidate(ctx context.Context) {
	if _, err := cs.store.Invalidate(ctx); err != nil {
		cs.log.Warn("Snapshot reload failed after concept mutation", "error", err)
	}
}
