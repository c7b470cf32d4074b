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

type LevelInput struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

type LevelService interface {
	Create(ctx context.Context, input LevelInput) (*types.Level, error)
	List(ctx context.Context) ([]types.Level, error)
	GetByID(ctx context.Context, id uint) (*types.Level, error)
	Update(ctx context.Context, id uint, input LevelInput) (*types.Level, error)
	Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error
	Delete(ctx context.Context, id uint) error
}

type levelService struct {
	db        *gorm.DB
	log       *logger.Logger
	levelRepo repos.LevelRepo
	store     *taxonomy.Store
}

func NewLevelService(db *gorm.DB, log *logger.Logger, levelRepo repos.LevelRepo, store *taxonomy.Store) LevelService {
	serviceLog := log.With("service", "LevelService")
	return &levelService{db: db, log: serviceLog, levelRepo: levelRepo, store: store}
}

func (ls *levelService) Create(ctx context.Context, input LevelInput) (*types.Level, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	exists, err := ls.levelRepo.NameExists(ctx, nil, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check level name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("level name already exists: %s", name)
	}

	level := &types.Level{
		Name:        name,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
	}
	if _, err := ls.levelRepo.Create(ctx, nil, level); err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}

	ls.invalidate(ctx)
	return level, nil
}

func (ls *levelService) List(ctx context.Context) ([]types.Level, error) {
	return ls.levelRepo.GetAll(ctx, nil)
}

func (ls *levelService) GetByID(ctx context.Context, id uint) (*types.Level, error) {
	return ls.levelRepo.GetByID(ctx, nil, id)
}

func (ls *levelService) Update(ctx context.Context, id uint, input LevelInput) (*types.Level, error) {
	level, err := ls.levelRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("level not found")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	exists, err := ls.levelRepo.NameExists(ctx, nil, name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check level name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("level name already exists: %s", name)
	}

	level.Name = name
	level.DisplayName = strings.TrimSpace(input.DisplayName)
	level.Description = input.Description
	level.OrderIndex = input.OrderIndex
	if _, err := ls.levelRepo.Update(ctx, nil, level); err != nil {
		return nil, fmt.Errorf("failed to update level: %w", err)
	}

	ls.invalidate(ctx)
	return level, nil
}

func (ls *levelService) Reorder(ctx context.Context, id uint, dir taxonomy.Direction) error {
	siblings := ls.store.Snapshot().ChildrenOf(0, taxonomy.RankLevel)
	current, neighbor, ok := taxonomy.PlanReorder(siblings, id, dir)
	if !ok {
		return nil
	}

	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := ls.levelRepo.GetByID(ctx, tx, current.ID)
		if err != nil {
			return err
		}
		b, err := ls.levelRepo.GetByID(ctx, tx, neighbor.ID)
		if err != nil {
			return err
		}
		a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex
		if _, err := ls.levelRepo.Update(ctx, tx, a); err != nil {
			return err
		}
		_, err = ls.levelRepo.Update(ctx, tx, b)
		return err
	}); err != nil {
		return fmt.Errorf("failed to reorder level: %w", err)
	}

	ls.invalidate(ctx)
	return nil
}

func (ls *levelService) Delete(ctx context.Context, id uint) error {
	if err := ls.levelRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete level: %w", err)
	}
	ls.invalidate(ctx)
	return nil
}

func (ls *levelService) invalidate(ctx context.Context) {
	if _, err := ls.store.Invalidate(ctx); err != nil {
		ls.log.Warn("Snapshot reload failed after level mutation", "error", err)
	}
}
