package services

import (
	"fmt"

	"github.com/atlasops/planner-api/internal/allocation"
	"github.com/atlasops/planner-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationService gathers the live rows the pure calculator needs. No
// lock is held across the reads, so the summary is a point-in-time
// snapshot and IsOverAllocated is advisory.
type AllocationService struct {
	db *gorm.DB
}

func NewAllocationService(db *gorm.DB) *AllocationService {
	return &AllocationService{db: db}
}

// ForEmployee computes the employee's committed capacity across every
// formation they are an active member of. Soft-deleted formations, links,
// and initiatives are excluded by construction: gorm's soft-delete scope
// filters memberships and links, and the initiative join below keeps only
// live initiatives.
func (s *AllocationService) ForEmployee(employeeID uuid.UUID) (*allocation.Summary, error) {
	var exists int64
	s.db.Model(&models.Employee{}).Where("id = ?", employeeID).Count(&exists)
	if exists == 0 {
		return nil, fmt.Errorf("allocation for %s: %w", employeeID, ErrNotFound)
	}

	var memberships []models.FormationMember
	if err := s.db.Where("employee_id = ?", employeeID).Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("allocation for %s: %w", employeeID, err)
	}

	links := []allocation.Link{}
	for _, membership := range memberships {
		var formation models.Formation
		if err := s.db.First(&formation, "id = ?", membership.FormationID).Error; err != nil {
			// Formation was soft-deleted; its links no longer count.
			continue
		}

		var rows []models.FormationInitiative
		if err := s.db.
			Joins("JOIN initiatives ON initiatives.id = formation_initiatives.initiative_id AND initiatives.deleted_at IS NULL").
			Where("formation_initiatives.formation_id = ?", formation.ID).
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("allocation for %s: %w", employeeID, err)
		}

		for _, row := range rows {
			links = append(links, allocation.Link{
				FormationID:   formation.ID,
				FormationName: formation.Name,
				InitiativeID:  row.InitiativeID,
				Percentage:    row.AllocationPercentage,
			})
		}
	}

	summary := allocation.Compute(employeeID, links)
	return &summary, nil
}
