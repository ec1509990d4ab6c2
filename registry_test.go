package ar

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("anchor-%d", n)
	}
}

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry(WithIDSource(seqIDs()))
	pose := NewPose(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent())

	a := reg.Create(pose)
	if a.ID() != "anchor-1" {
		t.Errorf("generated id = %q, want anchor-1", a.ID())
	}
	if a.State() != AnchorPending {
		t.Errorf("new anchor state = %v, want pending", a.State())
	}
	if !a.Pose().ApproxEqual(pose, poseEps) {
		t.Errorf("new anchor pose = %+v, want %+v", a.Pose(), pose)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestRegistryCreateExplicitID(t *testing.T) {
	reg := NewRegistry()
	a := reg.Create(IdentityPose(), "plane-7")
	if a.ID() != "plane-7" {
		t.Errorf("id = %q, want plane-7", a.ID())
	}

	// Creating again with the same id is find-or-create.
	b := reg.Create(NewPose(mgl64.Vec3{9, 9, 9}, mgl64.QuatIdent()), "plane-7")
	if b != a {
		t.Error("duplicate Create returned a different anchor")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
	if !b.Pose().ApproxEqual(IdentityPose(), poseEps) {
		t.Error("duplicate Create overwrote the existing pose")
	}
}

func TestRegistryGetRemove(t *testing.T) {
	reg := NewRegistry()
	a := reg.Create(IdentityPose(), "x")

	if got, ok := reg.Get("x"); !ok || got != a {
		t.Fatalf("Get(x) = %v, %v", got, ok)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) reported an anchor")
	}

	reg.Remove("x")
	if _, ok := reg.Get("x"); ok {
		t.Error("anchor still present after Remove")
	}
	if a.State() != AnchorRemoved {
		t.Errorf("removed anchor state = %v, want removed", a.State())
	}

	// Idempotent: removing again, or removing an id never created, is a no-op.
	reg.Remove("x")
	reg.Remove("never-existed")
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistryUpdatePoseUnknownID(t *testing.T) {
	reg := NewRegistry()
	reg.Create(IdentityPose(), "a")
	reg.Remove("a")

	// A backend update racing a local removal lands after the remove.
	// Silent no-op: size unchanged, nothing resurrected.
	reg.UpdatePose("a", NewPose(mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent()))
	if reg.Len() != 0 {
		t.Errorf("Len = %d after update of removed id, want 0", reg.Len())
	}
	if _, ok := reg.Get("a"); ok {
		t.Error("removed anchor resurrected by UpdatePose")
	}
}

func TestRegistryUpdatePoseConfirms(t *testing.T) {
	reg := NewRegistry()
	a := reg.Create(IdentityPose(), "a")

	update := NewPose(mgl64.Vec3{0, 2, 0}, mgl64.QuatRotate(0.2, mgl64.Vec3{0, 1, 0}))
	reg.UpdatePose("a", update)

	if a.State() != AnchorTracked {
		t.Errorf("state after first confirmation = %v, want tracked", a.State())
	}
	if !a.Pose().ApproxEqual(update, poseEps) {
		t.Errorf("pose after update = %+v, want %+v", a.Pose(), update)
	}
}

func TestRegistryQueueLastWriteWins(t *testing.T) {
	reg := NewRegistry()
	a := reg.Create(IdentityPose(), "a")

	first := NewPose(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent())
	second := NewPose(mgl64.Vec3{2, 0, 0}, mgl64.QuatIdent())
	reg.EnqueueUpdate(PoseUpdate{AnchorID: "a", Pose: first})
	reg.EnqueueUpdate(PoseUpdate{AnchorID: "a", Pose: second})

	// Nothing applies until the update turn.
	if !a.Pose().ApproxEqual(IdentityPose(), poseEps) {
		t.Fatal("queued update applied before ApplyUpdates")
	}

	reg.ApplyUpdates()
	if !a.Pose().ApproxEqual(second, poseEps) {
		t.Errorf("pose after drain = %+v, want last write %+v", a.Pose(), second)
	}
}

func TestRegistryStaleLifecycle(t *testing.T) {
	reg := NewRegistry(WithStaleBudget(2))
	a := reg.Create(IdentityPose(), "a")
	reg.UpdatePose("a", IdentityPose()) // pending -> tracked

	// Within budget: still tracked.
	reg.Tick()
	reg.Tick()
	if a.State() != AnchorTracked {
		t.Fatalf("state within budget = %v, want tracked", a.State())
	}

	// Budget exceeded: tracked -> stale.
	reg.Tick()
	if a.State() != AnchorStale {
		t.Fatalf("state past budget = %v, want stale", a.State())
	}

	// Resumed reporting: stale -> tracked.
	reg.UpdatePose("a", IdentityPose())
	if a.State() != AnchorTracked {
		t.Fatalf("state after resumed updates = %v, want tracked", a.State())
	}
}

func TestRegistryPendingNeverGoesStale(t *testing.T) {
	reg := NewRegistry(WithStaleBudget(1))
	a := reg.Create(IdentityPose(), "a")
	for i := 0; i < 10; i++ {
		reg.Tick()
	}
	if a.State() != AnchorPending {
		t.Errorf("unconfirmed anchor state = %v, want pending", a.State())
	}
}

func TestRegistryAnchorsSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Create(IdentityPose(), "a")
	reg.Create(IdentityPose(), "b")

	got := reg.Anchors()
	if len(got) != 2 {
		t.Fatalf("Anchors() returned %d anchors, want 2", len(got))
	}
	seen := map[string]bool{}
	for _, a := range got {
		seen[a.ID()] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("snapshot missing ids: %v", seen)
	}
}

func TestTrackingStateString(t *testing.T) {
	tests := []struct {
		state TrackingState
		want  string
	}{
		{AnchorPending, "pending"},
		{AnchorTracked, "tracked"},
		{AnchorStale, "stale"},
		{AnchorRemoved, "removed"},
		{TrackingState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("TrackingState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
