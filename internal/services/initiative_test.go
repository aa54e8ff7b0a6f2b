package services_test

import (
	"errors"
	"testing"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
)

func TestCreateInitiativeDefaults(t *testing.T) {
	env := newTestEnv(t)

	initiative, err := env.Initiatives.Create(models.CreateInitiativeRequest{Title: "Ship billing v2"}, env.Actor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if initiative.Stage != models.StageShaping {
		t.Errorf("stage = %q, want shaping", initiative.Stage)
	}
	if initiative.Status != models.StatusActive {
		t.Errorf("status = %q, want active", initiative.Status)
	}
	if initiative.State != models.StateOnTrack {
		t.Errorf("state = %q, want on_track", initiative.State)
	}
	if initiative.OwnerID != env.Actor.ID {
		t.Errorf("owner = %s, want actor", initiative.OwnerID)
	}
	if initiative.Owner == nil || initiative.Owner.Email != env.Actor.Email {
		t.Errorf("owner not resolved")
	}
}

func TestCreateInitiativeRequiresTitle(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Initiatives.Create(models.CreateInitiativeRequest{}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestChangeStatusReasonRetention(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Rework onboarding")

	paused, err := env.Initiatives.ChangeStatus(initiative.ID, models.TransitionRequest{
		NewValue: models.StatusPaused,
		Reason:   strPtr("waiting on legal review"),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.PausedReason == nil || *paused.PausedReason != "waiting on legal review" {
		t.Fatalf("paused reason not retained: %v", paused.PausedReason)
	}

	// Back to active clears the stale reason.
	active, err := env.Initiatives.ChangeStatus(initiative.ID, models.TransitionRequest{
		NewValue: models.StatusActive,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if active.PausedReason != nil {
		t.Errorf("paused reason survived reactivation: %q", *active.PausedReason)
	}

	abandoned, err := env.Initiatives.ChangeStatus(initiative.ID, models.TransitionRequest{
		NewValue: models.StatusAbandoned,
		Reason:   strPtr("superseded by platform team"),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if abandoned.AbandonedReason == nil || *abandoned.AbandonedReason != "superseded by platform team" {
		t.Fatalf("abandoned reason not retained")
	}
}

func TestChangeStatusShippedNotes(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Dark mode")

	shipped, err := env.Initiatives.ChangeStatus(initiative.ID, models.TransitionRequest{
		NewValue: models.StatusShipped,
		Notes:    strPtr("rolled out to 100% on Friday"),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if shipped.ShippedNotes == nil || *shipped.ShippedNotes != "rolled out to 100% on Friday" {
		t.Fatalf("shipped notes not persisted")
	}
}

func TestChangeStageAudited(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Search revamp")

	if _, err := env.Initiatives.ChangeStage(initiative.ID, models.TransitionRequest{NewValue: models.StageBuilding}, env.Actor.ID); err != nil {
		t.Fatalf("to building: %v", err)
	}
	// Backward moves are allowed.
	if _, err := env.Initiatives.ChangeStage(initiative.ID, models.TransitionRequest{NewValue: models.StageShaping}, env.Actor.ID); err != nil {
		t.Fatalf("back to shaping: %v", err)
	}

	transitions, err := env.Initiatives.Transitions(initiative.ID)
	if err != nil {
		t.Fatalf("transitions: %v", err)
	}
	if len(transitions) != 2 {
		t.Fatalf("transitions = %d, want 2", len(transitions))
	}
	// Newest first.
	if transitions[0].ToValue != models.StageShaping || transitions[0].Channel != models.ChannelStage {
		t.Errorf("latest transition = %+v", transitions[0])
	}
	if transitions[1].FromValue != models.StageShaping || transitions[1].ToValue != models.StageBuilding {
		t.Errorf("first transition = %+v", transitions[1])
	}
}

func TestChangeStateIndependentOfStatus(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Data migration")

	blocked, err := env.Initiatives.ChangeState(initiative.ID, models.TransitionRequest{
		NewValue: models.StateBlocked,
		Reason:   strPtr("vendor API down"),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	if blocked.State != models.StateBlocked {
		t.Errorf("state = %q, want blocked", blocked.State)
	}
	if blocked.Status != models.StatusActive {
		t.Errorf("status changed with state: %q", blocked.Status)
	}
}

func TestInvalidTransitionValues(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Anything")

	cases := []struct {
		name string
		err  error
	}{
		{"stage", func() error {
			_, err := env.Initiatives.ChangeStage(initiative.ID, models.TransitionRequest{NewValue: "launched"}, env.Actor.ID)
			return err
		}()},
		{"status", func() error {
			_, err := env.Initiatives.ChangeStatus(initiative.ID, models.TransitionRequest{NewValue: "cancelled"}, env.Actor.ID)
			return err
		}()},
		{"state", func() error {
			_, err := env.Initiatives.ChangeState(initiative.ID, models.TransitionRequest{NewValue: "stuck"}, env.Actor.ID)
			return err
		}()},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, services.ErrValidation) {
			t.Errorf("%s: err = %v, want validation error", tc.name, tc.err)
		}
	}
}

func TestDeleteInitiativeIdempotence(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Short lived")

	if err := env.Initiatives.Delete(initiative.ID, env.Actor.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	// Second delete is a not-found outcome, never a second success.
	if err := env.Initiatives.Delete(initiative.ID, env.Actor.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
	if _, err := env.Initiatives.GetByIDWithDetails(initiative.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want not found", err)
	}
}

func TestUpdateInitiativeNotFound(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Gone soon")
	if err := env.Initiatives.Delete(initiative.ID, env.Actor.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := env.Initiatives.Update(initiative.ID, models.UpdateInitiativeRequest{Title: strPtr("resurrected")}, env.Actor.ID)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("update deleted err = %v, want not found", err)
	}
}

func TestListInitiativesFilters(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedInitiative(t, "Alpha")
	env.seedInitiative(t, "Beta")

	if _, err := env.Initiatives.ChangeStatus(a.ID, models.TransitionRequest{NewValue: models.StatusPaused, Reason: strPtr("later")}, env.Actor.ID); err != nil {
		t.Fatalf("pause: %v", err)
	}

	paused, err := env.Initiatives.List(models.InitiativeFilter{Status: models.StatusPaused})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(paused) != 1 || paused[0].Title != "Alpha" {
		t.Fatalf("paused list = %+v", paused)
	}

	found, err := env.Initiatives.List(models.InitiativeFilter{Search: "Bet"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Beta" {
		t.Fatalf("search list = %+v", found)
	}
}
