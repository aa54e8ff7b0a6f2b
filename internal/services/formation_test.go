package services_test

import (
	"errors"
	"testing"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
)

func TestAddMemberDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	formation := env.seedFormation(t, "Core Team")
	e1 := env.seedEmployee(t, "e1@example.com", "E1")

	if _, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{
		EmployeeID: e1.ID,
		Bandwidth:  models.BandwidthPartial,
	}, env.Actor.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}

	_, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{
		EmployeeID: e1.ID,
		Role:       models.RoleLead,
	}, env.Actor.ID)
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("duplicate member err = %v, want conflict", err)
	}

	// Role changes go through the explicit update path.
	member, err := env.Formations.UpdateMember(formation.ID, e1.ID, models.UpdateMemberRequest{
		Role: strPtr(models.RoleLead),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	if member.Role != models.RoleLead || member.Bandwidth != models.BandwidthPartial {
		t.Fatalf("member = %+v", member)
	}
}

func TestRemovedMemberCanRejoin(t *testing.T) {
	env := newTestEnv(t)
	formation := env.seedFormation(t, "Core Team")
	e1 := env.seedEmployee(t, "e1@example.com", "E1")

	if _, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{EmployeeID: e1.ID}, env.Actor.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := env.Formations.RemoveMember(formation.ID, e1.ID, env.Actor.ID); err != nil {
		t.Fatalf("remove member: %v", err)
	}

	member, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{
		EmployeeID: e1.ID,
		Role:       models.RoleLead,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("re-add member: %v", err)
	}
	if member.Role != models.RoleLead {
		t.Errorf("role = %q, want lead", member.Role)
	}
}

func TestCoreTeamOverAllocationScenario(t *testing.T) {
	env := newTestEnv(t)
	formation := env.seedFormation(t, "Core Team")
	e1 := env.seedEmployee(t, "e1@example.com", "E1")
	a := env.seedInitiative(t, "Initiative A")
	b := env.seedInitiative(t, "Initiative B")

	if _, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{
		EmployeeID: e1.ID,
		Bandwidth:  models.BandwidthPartial,
	}, env.Actor.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if _, err := env.Formations.LinkInitiative(formation.ID, models.LinkInitiativeRequest{
		InitiativeID: a.ID, AllocationPercentage: 60,
	}, env.Actor.ID); err != nil {
		t.Fatalf("link A: %v", err)
	}
	if _, err := env.Formations.LinkInitiative(formation.ID, models.LinkInitiativeRequest{
		InitiativeID: b.ID, AllocationPercentage: 50,
	}, env.Actor.ID); err != nil {
		t.Fatalf("link B: %v", err)
	}

	summary, err := env.Allocation.ForEmployee(e1.ID)
	if err != nil {
		t.Fatalf("allocation: %v", err)
	}
	if summary.OverallTotal != 110 {
		t.Errorf("overall = %d, want 110", summary.OverallTotal)
	}
	if !summary.IsOverAllocated {
		t.Error("expected over-allocation")
	}
	if len(summary.Formations) != 1 || summary.Formations[0].Total != 110 {
		t.Errorf("per-formation = %+v", summary.Formations)
	}
}

func TestAllocationAdditiveAcrossFormations(t *testing.T) {
	env := newTestEnv(t)
	alpha := env.seedFormation(t, "Alpha")
	beta := env.seedFormation(t, "Beta")
	e1 := env.seedEmployee(t, "e1@example.com", "E1")
	a := env.seedInitiative(t, "Initiative A")
	b := env.seedInitiative(t, "Initiative B")

	for _, formation := range []*models.Formation{alpha, beta} {
		if _, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{EmployeeID: e1.ID}, env.Actor.ID); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}
	if _, err := env.Formations.LinkInitiative(alpha.ID, models.LinkInitiativeRequest{InitiativeID: a.ID, AllocationPercentage: 40}, env.Actor.ID); err != nil {
		t.Fatalf("link alpha: %v", err)
	}
	if _, err := env.Formations.LinkInitiative(beta.ID, models.LinkInitiativeRequest{InitiativeID: b.ID, AllocationPercentage: 50}, env.Actor.ID); err != nil {
		t.Fatalf("link beta: %v", err)
	}

	summary, err := env.Allocation.ForEmployee(e1.ID)
	if err != nil {
		t.Fatalf("allocation: %v", err)
	}
	if summary.OverallTotal != 90 || summary.IsOverAllocated {
		t.Fatalf("summary = %+v", summary)
	}

	// Adding a 20% link pushes the total up by exactly 20 and over the line.
	c := env.seedInitiative(t, "Initiative C")
	if _, err := env.Formations.LinkInitiative(beta.ID, models.LinkInitiativeRequest{InitiativeID: c.ID, AllocationPercentage: 20}, env.Actor.ID); err != nil {
		t.Fatalf("link C: %v", err)
	}
	summary, err = env.Allocation.ForEmployee(e1.ID)
	if err != nil {
		t.Fatalf("allocation: %v", err)
	}
	if summary.OverallTotal != 110 || !summary.IsOverAllocated {
		t.Fatalf("after extra link: %+v", summary)
	}
	if len(summary.Formations) != 2 {
		t.Fatalf("formations = %+v", summary.Formations)
	}
}

func TestAllocationExcludesSoftDeleted(t *testing.T) {
	env := newTestEnv(t)
	formation := env.seedFormation(t, "Core Team")
	e1 := env.seedEmployee(t, "e1@example.com", "E1")
	a := env.seedInitiative(t, "Initiative A")
	b := env.seedInitiative(t, "Initiative B")

	if _, err := env.Formations.AddMember(formation.ID, models.AddMemberRequest{EmployeeID: e1.ID}, env.Actor.ID); err != nil {
		t.Fatalf("add member: %v", err)
	}
	for _, link := range []struct {
		id  *models.Initiative
		pct int
	}{{a, 60}, {b, 50}} {
		if _, err := env.Formations.LinkInitiative(formation.ID, models.LinkInitiativeRequest{
			InitiativeID: link.id.ID, AllocationPercentage: link.pct,
		}, env.Actor.ID); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	// Unlinking B removes its weight from the ledger.
	if err := env.Formations.UnlinkInitiative(formation.ID, b.ID, env.Actor.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	summary, err := env.Allocation.ForEmployee(e1.ID)
	if err != nil {
		t.Fatalf("allocation: %v", err)
	}
	if summary.OverallTotal != 60 || summary.IsOverAllocated {
		t.Fatalf("after unlink: %+v", summary)
	}

	// Soft-deleting initiative A removes the remaining weight too.
	if err := env.Initiatives.Delete(a.ID, env.Actor.ID); err != nil {
		t.Fatalf("delete initiative: %v", err)
	}
	summary, err = env.Allocation.ForEmployee(e1.ID)
	if err != nil {
		t.Fatalf("allocation: %v", err)
	}
	if summary.OverallTotal != 0 {
		t.Fatalf("after initiative delete: %+v", summary)
	}
}

func TestLinkValidation(t *testing.T) {
	env := newTestEnv(t)
	formation := env.seedFormation(t, "Core Team")
	a := env.seedInitiative(t, "Initiative A")

	_, err := env.Formations.LinkInitiative(formation.ID, models.LinkInitiativeRequest{
		InitiativeID: a.ID, AllocationPercentage: 150,
	}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("pct 150 err = %v, want validation", err)
	}

	if _, err := env.Formations.LinkInitiative(formation.ID, models.LinkInitiativeRequest{
		InitiativeID: a.ID, AllocationPercentage: 50,
	}, env.Actor.ID); err != nil {
		t.Fatalf("link: %v", err)
	}
	_, err = env.Formations.LinkInitiative(formation.ID, models.LinkInitiativeRequest{
		InitiativeID: a.ID, AllocationPercentage: 30,
	}, env.Actor.ID)
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("duplicate link err = %v, want conflict", err)
	}

	// Percentage changes go through UpdateLink.
	link, err := env.Formations.UpdateLink(formation.ID, a.ID, models.UpdateLinkRequest{AllocationPercentage: 30}, env.Actor.ID)
	if err != nil {
		t.Fatalf("update link: %v", err)
	}
	if link.AllocationPercentage != 30 {
		t.Fatalf("pct = %d, want 30", link.AllocationPercentage)
	}
}

func TestFormationEnergyStateUpdate(t *testing.T) {
	env := newTestEnv(t)
	formation := env.seedFormation(t, "Core Team")

	updated, err := env.Formations.Update(formation.ID, models.UpdateFormationRequest{
		EnergyState: strPtr(models.EnergyStrained),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EnergyState != models.EnergyStrained {
		t.Errorf("energy = %q, want strained", updated.EnergyState)
	}

	_, err = env.Formations.Update(formation.ID, models.UpdateFormationRequest{
		EnergyState: strPtr("exhausted"),
	}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("bad energy err = %v, want validation", err)
	}
}
