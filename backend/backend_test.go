package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/ar"
)

func TestNullBackendName(t *testing.T) {
	b := NewNull()
	if b.Name() != "null" {
		t.Errorf("Name() = %q, want %q", b.Name(), "null")
	}
}

func TestNullBackendHitTest(t *testing.T) {
	b := NewNull()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	candidates, err := b.HitTest(context.Background(), 0.5, 0.5)
	if err != nil {
		t.Fatalf("HitTest() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("HitTest() = %d candidates, want 0", len(candidates))
	}
}

func TestNullBackendUninitialized(t *testing.T) {
	b := NewNull()
	if _, err := b.HitTest(context.Background(), 0.5, 0.5); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("HitTest before Init = %v, want ErrNotInitialized", err)
	}
}

func TestNullBackendCloseClosesFeed(t *testing.T) {
	b := NewNull()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	feed := b.PoseUpdates()
	b.Close()

	if _, ok := <-feed; ok {
		t.Error("feed delivered an update after Close")
	}
}

func TestNullBackendContextCancel(t *testing.T) {
	b := NewNull()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.HitTest(ctx, 0.5, 0.5); !errors.Is(err, context.Canceled) {
		t.Errorf("HitTest with canceled ctx = %v, want context.Canceled", err)
	}
}

func TestRegistryRegisterGet(t *testing.T) {
	Register("test-backend", func() ar.TrackingBackend { return NewNull() })
	t.Cleanup(func() { Unregister("test-backend") })

	if !IsRegistered("test-backend") {
		t.Fatal("registered backend not reported by IsRegistered")
	}
	if b := Get("test-backend"); b == nil {
		t.Error("Get returned nil for a registered backend")
	}
	if b := Get("nonexistent"); b != nil {
		t.Error("Get returned a backend for an unregistered name")
	}
}

func TestRegistryAvailable(t *testing.T) {
	names := Available()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found[BackendNull] || !found[BackendScripted] {
		t.Errorf("Available() = %v, want null and scripted built-ins", names)
	}
}

func TestDefaultFallsBackToNull(t *testing.T) {
	b := Default()
	if b == nil {
		t.Fatal("Default() = nil with built-ins registered")
	}
	if b.Name() != BackendNull {
		t.Errorf("Default() = %q, want null fallback", b.Name())
	}
}

func TestPrioritize(t *testing.T) {
	Register("priority-test", func() ar.TrackingBackend { return NewScripted() })
	Prioritize("priority-test")
	t.Cleanup(func() {
		Unregister("priority-test")
		// Restore the null fallback at the front.
		Prioritize(BackendNull)
	})

	b := Default()
	if b == nil || b.Name() != BackendScripted {
		t.Errorf("Default() after Prioritize = %v, want scripted instance", b)
	}
}

func TestInitDefault(t *testing.T) {
	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	defer b.Close()

	if _, err := b.HitTest(context.Background(), 0.1, 0.9); err != nil {
		t.Errorf("initialized default backend query failed: %v", err)
	}
}

func TestScriptedBackendScript(t *testing.T) {
	b := NewScripted()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	want := []ar.HitCandidate{{Kind: ar.HitExistingPlane, Distance: 2, SurfaceID: "floor"}}
	cause := errors.New("sensor fault")
	b.QueueHits(want)
	b.QueueError(cause)

	got, err := b.HitTest(context.Background(), 0.5, 0.5)
	if err != nil {
		t.Fatalf("first scripted query error = %v", err)
	}
	if len(got) != 1 || got[0].SurfaceID != "floor" {
		t.Errorf("first scripted query = %+v, want %+v", got, want)
	}

	if _, err := b.HitTest(context.Background(), 0.5, 0.5); !errors.Is(err, cause) {
		t.Errorf("second scripted query error = %v, want scripted fault", err)
	}

	// Script exhausted: nothing there.
	got, err = b.HitTest(context.Background(), 0.5, 0.5)
	if err != nil || len(got) != 0 {
		t.Errorf("exhausted script = %+v, %v, want empty", got, err)
	}
}

func TestScriptedBackendReport(t *testing.T) {
	b := NewScripted()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	b.Report(ar.PoseUpdate{AnchorID: "floor", Pose: ar.IdentityPose()})
	select {
	case u := <-b.PoseUpdates():
		if u.AnchorID != "floor" {
			t.Errorf("update anchor = %q, want floor", u.AnchorID)
		}
	default:
		t.Fatal("reported update not on feed")
	}
}

func TestScriptedBackendSession(t *testing.T) {
	// End to end: a session over a scripted backend resolves a tap.
	b := NewScripted()
	floor := ar.NewPose(mgl64.Vec3{0, 0, -1}, mgl64.QuatIdent())
	b.QueueHits([]ar.HitCandidate{{
		Kind:       ar.HitExistingPlaneExtent,
		Distance:   1,
		SurfaceID:  "floor",
		AnchorPose: floor,
		WorldPose:  floor,
	}})

	sess, err := ar.NewSession(b)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	off, err := sess.ResolveHit(context.Background(), 0.5, 0.5, ar.NewRootSpace("tracker"))
	if err != nil {
		t.Fatal(err)
	}
	if off == nil || off.AnchorID != "floor" {
		t.Errorf("resolved offset = %+v, want anchor floor", off)
	}
}
