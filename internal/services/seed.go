package services

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/types"
)

// seedFile mirrors the curriculum hierarchy as nested YAML.
type seedFile struct {
	Levels []seedLevel `yaml:"levels"`
}

type seedLevel struct {
	Name        string      `yaml:"name"`
	DisplayName string      `yaml:"displayName"`
	Description string      `yaml:"description"`
	Grades      []seedGrade `yaml:"grades"`
}

type seedGrade struct {
	Name        string     `yaml:"name"`
	DisplayName string     `yaml:"displayName"`
	Units       []seedUnit `yaml:"units"`
}

type seedUnit struct {
	Name        string        `yaml:"name"`
	DisplayName string        `yaml:"displayName"`
	SubUnits    []seedSubUnit `yaml:"subUnits"`
}

type seedSubUnit struct {
	Name        string        `yaml:"name"`
	DisplayName string        `yaml:"displayName"`
	Concepts    []seedConcept `yaml:"concepts"`
}

type seedConcept struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"displayName"`
	Description string `yaml:"description"`
}

type SeedService interface {
	SeedIfEmpty(ctx context.Context, path string) error
}

type seedService struct {
	db        *gorm.DB
	log       *logger.Logger
	levelRepo repos.LevelRepo
}

func NewSeedService(db *gorm.DB, log *logger.Logger, levelRepo repos.LevelRepo) SeedService {
	serviceLog := log.With("service", "SeedService")
	return &seedService{db: db, log: serviceLog, levelRepo: levelRepo}
}

// SeedIfEmpty loads the curriculum seed file into an empty database. A
// database that already has levels is left alone.
func (ss *seedService) SeedIfEmpty(ctx context.Context, path string) error {
	existing, err := ss.levelRepo.GetAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to check existing levels: %w", err)
	}
	if len(existing) > 0 {
		ss.log.Debug("Curriculum already present, skipping seed", "levels", len(existing))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(seed.Levels) == 0 {
		return fmt.Errorf("seed file has no levels")
	}

	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for li, sl := range seed.Levels {
			level := types.Level{
				Name:        sl.Name,
				DisplayName: sl.DisplayName,
				Description: sl.Description,
				OrderIndex:  li + 1,
			}
			if err := tx.Create(&level).Error; err != nil {
				return fmt.Errorf("seed level %q: %w", sl.Name, err)
			}
			for gi, sg := range sl.Grades {
				grade := types.Grade{
					LevelID:     level.ID,
					Name:        sg.Name,
					DisplayName: sg.DisplayName,
					OrderIndex:  gi + 1,
				}
				if err := tx.Create(&grade).Error; err != nil {
					return fmt.Errorf("seed grade %q: %w", sg.Name, err)
				}
				for ui, su := range sg.Units {
					unit := types.Unit{
						GradeID:     grade.ID,
						Name:        su.Name,
						DisplayName: su.DisplayName,
						OrderIndex:  ui + 1,
					}
					if err := tx.Create(&unit).Error; err != nil {
						return fmt.Errorf("seed unit %q: %w", su.Name, err)
					}
					for si, ssu := range su.SubUnits {
						subUnit := types.SubUnit{
							UnitID:      unit.ID,
							Name:        ssu.Name,
							DisplayName: ssu.DisplayName,
							OrderIndex:  si + 1,
						}
						if err := tx.Create(&subUnit).Error; err != nil {
							return fmt.Errorf("seed sub-unit %q: %w", ssu.Name, err)
						}
						for ci, sc := range ssu.Concepts {
							concept := types.Concept{
								SubUnitID:   &subUnit.ID,
								Name:        sc.Name,
								DisplayName: sc.DisplayName,
								Description: sc.Description,
								OrderIndex:  ci + 1,
							}
							if err := tx.Create(&concept).Error; err != nil {
								return fmt.Errorf("seed concept %q: %w", sc.Name, err)
							}
						}
					}
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	ss.log.Info("Curriculum seeded", "levels", len(seed.Levels), "file", path)
	return nil
}
