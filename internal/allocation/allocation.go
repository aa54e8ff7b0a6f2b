// Package allocation computes committed capacity for a single employee
// across every formation they belong to. It is pure: rows in, summary out,
// no store access. Capacity is additive across formations, so the
// over-allocation check runs on the overall total, never per formation.
package allocation

import "github.com/google/uuid"

// Link is one live formation-initiative allocation visible to the employee
// through a formation membership.
type Link struct {
	FormationID   uuid.UUID
	FormationName string
	InitiativeID  uuid.UUID
	Percentage    int
}

// FormationTotal is the summed allocation inside one formation.
type FormationTotal struct {
	FormationID   uuid.UUID `json:"formationId"`
	FormationName string    `json:"formationName"`
	Total         int       `json:"total"`
	LinkCount     int       `json:"linkCount"`
}

// Summary is the computed capacity picture for one employee. It is a
// point-in-time snapshot; callers treat IsOverAllocated as advisory.
type Summary struct {
	EmployeeID      uuid.UUID        `json:"employeeId"`
	Formations      []FormationTotal `json:"formations"`
	OverallTotal    int              `json:"overallTotal"`
	IsOverAllocated bool             `json:"isOverAllocated"`
}

// Compute folds the employee's visible allocation links into per-formation
// totals and an overall total. An empty link set yields a zero summary.
// Formation order follows first appearance in links.
func Compute(employeeID uuid.UUID, links []Link) Summary {
	summary := Summary{
		EmployeeID: employeeID,
		Formations: []FormationTotal{},
	}

	index := make(map[uuid.UUID]int)
	for _, link := range links {
		i, ok := index[link.FormationID]
		if !ok {
			i = len(summary.Formations)
			index[link.FormationID] = i
			summary.Formations = append(summary.Formations, FormationTotal{
				FormationID:   link.FormationID,
				FormationName: link.FormationName,
			})
		}
		summary.Formations[i].Total += link.Percentage
		summary.Formations[i].LinkCount++
		summary.OverallTotal += link.Percentage
	}

	summary.IsOverAllocated = summary.OverallTotal > 100
	return summary
}
