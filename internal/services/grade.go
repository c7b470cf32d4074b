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

type GradeInput struct {
	LevelID     uint   `json:"levelId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type GradeService interface {
	Create(ctx context.Context, input GradeInput) (*types.Grade, error)
	List(ctx context.Context) ([]taxonomy.EnrichedGrade, error)
	ListByLevel(ctx context.Context, levelID uint) ([]types.Grade, error)
	GetByID(ctx context.Context, id uint) (*types.Grade, error)
	Update(ctx context.Context, id uint, input GradeInput) (*types.Grade, error)
	Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error
	Delete(ctx context.Context, id uint) error
}

type gradeService struct {
	db        *gorm.DB
	log       *logger.Logger
	gradeRepo repos.GradeRepo
	levelRepo repos.LevelRepo
	store     *taxonomy.Store
}

func NewGradeService(db *gorm.DB, log *logger.Logger, gradeRepo repos.GradeRepo, levelRepo repos.LevelRepo, store *taxonomy.Store) GradeService {
	serviceLog := log.With("service", "GradeService")
	return &gradeService{db: db, log: serviceLog, gradeRepo: gradeRepo, levelRepo: levelRepo, store: store}
}

func (gs *gradeService) Create(ctx context.Context, input GradeInput) (*types.Grade, error) {
	if _, err := gs.levelRepo.GetByID(ctx, nil, input.LevelID); err != nil {
		return nil, fmt.Errorf("level not found: %d", input.LevelID)
	}

	grade := &types.Grade{
		LevelID:     input.LevelID,
		Name:        strings.TrimSpace(input.Name),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	}
	if grade.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := gs.gradeRepo.Create(ctx, nil, grade); err != nil {
		return nil, fmt.Errorf("failed to create grade: %w", err)
	}

	gs.invalidate(ctx)
	return grade, nil
}

// List returns all grades with their parent level labels resolved.
func (gs *gradeService) List(ctx context.Context) ([]taxonomy.EnrichedGrade, error) {
	grades, err := gs.gradeRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	sn := gs.store.Snapshot()
	out := make([]taxonomy.EnrichedGrade, 0, len(grades))
	for _, g := range grades {
		out = append(out, sn.EnrichGrade(g))
	}
	return out, nil
}

func (gs *gradeService) ListByLevel(ctx context.Context, levelID uint) ([]types.Grade, error) {
	if levelID == 0 {
		return []types.Grade{}, nil
	}
	return gs.gradeRepo.GetByLevelID(ctx, nil, levelID)
}

func (gs *gradeService) GetByID(ctx context.Context, id uint) (*types.Grade, error) {
	return gs.gradeRepo.GetByID(ctx, nil, id)
}

func (gs *gradeService) Update(ctx context.Context, id uint, input GradeInput) (*types.Grade, error) {
	grade, err := gs.gradeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("grade not found")
	}
	if input.LevelID != 0 && input.LevelID != grade.LevelID {
		if _, err := gs.levelRepo.GetByID(ctx, nil, input.LevelID); err != nil {
			return nil, fmt.Errorf("level not found: %d", input.LevelID)
		}
		grade.LevelID = input.LevelID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	grade.Name = name
	grade.DisplayName = strings.TrimSpace(input.DisplayName)
	grade.Description = input.Description
	grade.OrderIndex = input.OrderIndex
	if _, err := gs.gradeRepo.Update(ctx, nil, grade); err != nil {
		return nil, fmt.Errorf("failed to update grade: %w", err)
	}

	gs.invalidate(ctx)
	return grade, nil
}

// Reorder swaps order with the adjacent sibling under the same level.
func (gs *gradeService) Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error {
	grade, err := gs.gradeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("grade not found")
	}

	siblings := gs.store.Snapshot().ChildrenOf(grade.LevelID, taxonomy.RankGrade)
	current, neighbor, ok := taxonomy.PlanReorder(siblings, id, dir)
	if !ok {
		return nil
	}

	if err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := gs.gradeRepo.GetByID(ctx, tx, current.ID)
		if err != nil {
			return err
		}
		b, err := gs.gradeRepo.GetByID(ctx, tx, neighbor.ID)
		if err != nil {
			return err
		}
		a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex
		if _, err := gs.gradeRepo.Update(ctx, tx, a); err != nil {
			return err
		}
		_, err = gs.gradeRepo.Update(ctx, tx, b)
		return err
	}); err != nil {
		return fmt.Errorf("failed to reorder grade: %w", err)
	}

	gs.invalidate(ctx)
	return nil
}

func (gs *gradeService) Delete(ctx context.Context, id uint) error {
	if err := gs.gradeRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete grade: %w", err)
	}
	gs.invalidate(ctx)
	return nil
}

func (gs *gradeService) invalidate(ctx context.Context) {
	if _, err := gs.store.Invalidate(ctx); err != nil {
		gs.log.Warn("Snapshot reload failed after grade mutation", "error", err)
	}
}
