package services_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/atlasops/planner-api/internal/models"
	"github.com/atlasops/planner-api/internal/services"
)

func TestCreateThreadValidation(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Payments")

	_, err := env.Threads.Create(models.CreateThreadRequest{Title: "no initiative", Shape: models.ShapeQuestion}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("missing initiative err = %v, want validation", err)
	}

	_, err = env.Threads.Create(models.CreateThreadRequest{InitiativeID: initiative.ID, Shape: models.ShapeQuestion}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("missing title err = %v, want validation", err)
	}

	_, err = env.Threads.Create(models.CreateThreadRequest{InitiativeID: initiative.ID, Title: "x", Shape: "rant"}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("bad shape err = %v, want validation", err)
	}

	thread, err := env.Threads.Create(models.CreateThreadRequest{
		InitiativeID: initiative.ID,
		Title:        "Which vendor?",
		Shape:        models.ShapeQuestion,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if thread.OwnerID != env.Actor.ID {
		t.Errorf("owner = %s, want actor", thread.OwnerID)
	}
	if thread.State != models.ThreadOpen {
		t.Errorf("state = %q, want open", thread.State)
	}
	if thread.Contributors == nil || len(thread.Contributors) != 0 {
		t.Errorf("contributors = %v, want empty set", thread.Contributors)
	}
}

func TestThreadResolveKeepsResolution(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Payments")
	thread, err := env.Threads.Create(models.CreateThreadRequest{
		InitiativeID: initiative.ID,
		Title:        "Which vendor?",
		Shape:        models.ShapeQuestion,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Resolving without a note is rejected.
	_, err = env.Threads.ChangeState(thread.ID, models.ThreadStateRequest{NewValue: models.ThreadResolved}, env.Actor.ID)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("resolve without note err = %v, want validation", err)
	}

	resolved, err := env.Threads.ChangeState(thread.ID, models.ThreadStateRequest{
		NewValue:   models.ThreadResolved,
		Resolution: strPtr("Confirmed via vendor call"),
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.State != models.ThreadResolved {
		t.Errorf("state = %q, want resolved", resolved.State)
	}
	if resolved.Resolution == nil || *resolved.Resolution != "Confirmed via vendor call" {
		t.Fatalf("resolution not persisted: %v", resolved.Resolution)
	}

	// Details read-back shows the terminal state and note.
	got, err := env.Threads.GetByIDWithDetails(thread.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != models.ThreadResolved || got.Resolution == nil || *got.Resolution != "Confirmed via vendor call" {
		t.Fatalf("read-back = state %q resolution %v", got.State, got.Resolution)
	}
}

func TestRepliesOrderAndLimit(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Payments")
	thread, err := env.Threads.Create(models.CreateThreadRequest{
		InitiativeID: initiative.ID,
		Title:        "Standup notes",
		Shape:        models.ShapeBuild,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if _, err := env.Threads.CreateReply(thread.ID, models.CreateReplyRequest{
			Content: fmt.Sprintf("reply %d", i),
		}, env.Actor.ID); err != nil {
			t.Fatalf("reply %d: %v", i, err)
		}
		time.Sleep(2 * time.Millisecond) // distinct creation timestamps
	}

	// Most recent 3, presented oldest-first.
	replies, err := env.Threads.GetReplies(thread.ID, 3)
	if err != nil {
		t.Fatalf("get replies: %v", err)
	}
	if len(replies) != 3 {
		t.Fatalf("len = %d, want 3", len(replies))
	}
	want := []string{"reply 3", "reply 4", "reply 5"}
	for i, reply := range replies {
		if reply.Content != want[i] {
			t.Errorf("replies[%d] = %q, want %q", i, reply.Content, want[i])
		}
	}

	// Default limit returns everything here, still oldest-first.
	all, err := env.Threads.GetReplies(thread.ID, 0)
	if err != nil {
		t.Fatalf("get all replies: %v", err)
	}
	if len(all) != 5 || all[0].Content != "reply 1" || all[4].Content != "reply 5" {
		t.Fatalf("all replies out of order: %+v", all)
	}
}

func TestReplyRequiresContentAndLiveThread(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Payments")
	thread, err := env.Threads.Create(models.CreateThreadRequest{
		InitiativeID: initiative.ID,
		Title:        "Doomed",
		Shape:        models.ShapeBlock,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	if _, err := env.Threads.CreateReply(thread.ID, models.CreateReplyRequest{}, env.Actor.ID); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("empty reply err = %v, want validation", err)
	}

	if err := env.Threads.Delete(thread.ID, env.Actor.ID); err != nil {
		t.Fatalf("delete thread: %v", err)
	}
	if _, err := env.Threads.CreateReply(thread.ID, models.CreateReplyRequest{Content: "too late"}, env.Actor.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("reply on deleted err = %v, want not found", err)
	}
}

func TestDeleteThreadIdempotence(t *testing.T) {
	env := newTestEnv(t)
	initiative := env.seedInitiative(t, "Payments")
	thread, err := env.Threads.Create(models.CreateThreadRequest{
		InitiativeID: initiative.ID,
		Title:        "Short lived",
		Shape:        models.ShapeDecision,
	}, env.Actor.ID)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	if err := env.Threads.Delete(thread.ID, env.Actor.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := env.Threads.Delete(thread.ID, env.Actor.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
}

func TestListThreadsByShapeAndInitiative(t *testing.T) {
	env := newTestEnv(t)
	a := env.seedInitiative(t, "A")
	b := env.seedInitiative(t, "B")

	mk := func(init *models.Initiative, title, shape string) {
		t.Helper()
		if _, err := env.Threads.Create(models.CreateThreadRequest{
			InitiativeID: init.ID, Title: title, Shape: shape,
		}, env.Actor.ID); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	mk(a, "q1", models.ShapeQuestion)
	mk(a, "d1", models.ShapeDecision)
	mk(b, "q2", models.ShapeQuestion)

	questions, err := env.Threads.List(models.ThreadFilter{Shape: models.ShapeQuestion})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(questions))
	}

	onA, err := env.Threads.List(models.ThreadFilter{InitiativeID: a.ID.String()})
	if err != nil {
		t.Fatalf("list on A: %v", err)
	}
	if len(onA) != 2 {
		t.Fatalf("threads on A = %d, want 2", len(onA))
	}
}
