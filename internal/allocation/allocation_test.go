package allocation_test

import (
	"testing"

	"github.com/atlasops/planner-api/internal/allocation"
	"github.com/google/uuid"
)

func TestComputeEmpty(t *testing.T) {
	employee := uuid.New()
	summary := allocation.Compute(employee, nil)

	if summary.EmployeeID != employee {
		t.Errorf("employee = %s", summary.EmployeeID)
	}
	if summary.OverallTotal != 0 || summary.IsOverAllocated {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Formations == nil || len(summary.Formations) != 0 {
		t.Errorf("formations = %v, want empty slice", summary.Formations)
	}
}

func TestComputeGroupsByFormation(t *testing.T) {
	employee := uuid.New()
	alpha := uuid.New()
	beta := uuid.New()

	summary := allocation.Compute(employee, []allocation.Link{
		{FormationID: alpha, FormationName: "Alpha", InitiativeID: uuid.New(), Percentage: 30},
		{FormationID: beta, FormationName: "Beta", InitiativeID: uuid.New(), Percentage: 20},
		{FormationID: alpha, FormationName: "Alpha", InitiativeID: uuid.New(), Percentage: 25},
	})

	if len(summary.Formations) != 2 {
		t.Fatalf("formations = %d, want 2", len(summary.Formations))
	}
	if summary.Formations[0].FormationID != alpha || summary.Formations[0].Total != 55 || summary.Formations[0].LinkCount != 2 {
		t.Errorf("alpha = %+v", summary.Formations[0])
	}
	if summary.Formations[1].FormationID != beta || summary.Formations[1].Total != 20 {
		t.Errorf("beta = %+v", summary.Formations[1])
	}
	if summary.OverallTotal != 75 || summary.IsOverAllocated {
		t.Errorf("overall = %d over = %v", summary.OverallTotal, summary.IsOverAllocated)
	}
}

func TestOverallEqualsSumOfFormations(t *testing.T) {
	links := []allocation.Link{
		{FormationID: uuid.New(), Percentage: 10},
		{FormationID: uuid.New(), Percentage: 45},
		{FormationID: uuid.New(), Percentage: 33},
	}
	summary := allocation.Compute(uuid.New(), links)

	sum := 0
	for _, f := range summary.Formations {
		sum += f.Total
	}
	if sum != summary.OverallTotal {
		t.Errorf("sum of formations = %d, overall = %d", sum, summary.OverallTotal)
	}
}

func TestOverAllocationBoundary(t *testing.T) {
	formation := uuid.New()

	at100 := allocation.Compute(uuid.New(), []allocation.Link{
		{FormationID: formation, Percentage: 60},
		{FormationID: formation, Percentage: 40},
	})
	if at100.IsOverAllocated {
		t.Error("100 should not be over-allocated")
	}

	at101 := allocation.Compute(uuid.New(), []allocation.Link{
		{FormationID: formation, Percentage: 60},
		{FormationID: formation, Percentage: 41},
	})
	if !at101.IsOverAllocated {
		t.Error("101 should be over-allocated")
	}
}
