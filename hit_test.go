package ar

import "testing"

func fp(distance float64) HitCandidate {
	return HitCandidate{Kind: HitFeaturePoint, Distance: distance}
}

func hit(kind HitKind, distance float64) HitCandidate {
	return HitCandidate{Kind: kind, Distance: distance}
}

func TestPickHit(t *testing.T) {
	tests := []struct {
		name       string
		candidates []HitCandidate
		want       *HitCandidate
	}{
		{
			name:       "empty list",
			candidates: nil,
			want:       nil,
		},
		{
			name: "extent subset beats nearer non-extent",
			candidates: []HitCandidate{
				hit(HitExistingPlaneExtent, 5),
				hit(HitExistingPlaneExtent, 2),
				hit(HitExistingPlane, 1),
			},
			want: &HitCandidate{Kind: HitExistingPlaneExtent, Distance: 2},
		},
		{
			name: "existing plane beats nearer estimated plane",
			candidates: []HitCandidate{
				hit(HitEstimatedPlane, 0.5),
				hit(HitExistingPlane, 4),
				hit(HitExistingPlane, 3),
			},
			want: &HitCandidate{Kind: HitExistingPlane, Distance: 3},
		},
		{
			name: "estimated planes beat feature points",
			candidates: []HitCandidate{
				fp(0.1),
				hit(HitEstimatedPlane, 7),
				hit(HitEstimatedPlane, 6),
			},
			want: &HitCandidate{Kind: HitEstimatedPlane, Distance: 6},
		},
		{
			name: "feature points keep backend order, ignore distance",
			candidates: []HitCandidate{
				fp(9),
				fp(1),
			},
			want: &HitCandidate{Kind: HitFeaturePoint, Distance: 9},
		},
		{
			name: "single candidate",
			candidates: []HitCandidate{
				hit(HitExistingPlane, 2.5),
			},
			want: &HitCandidate{Kind: HitExistingPlane, Distance: 2.5},
		},
		{
			name: "equidistant candidates keep backend order",
			candidates: []HitCandidate{
				{Kind: HitExistingPlane, Distance: 2, SurfaceID: "first"},
				{Kind: HitExistingPlane, Distance: 2, SurfaceID: "second"},
			},
			want: &HitCandidate{Kind: HitExistingPlane, Distance: 2, SurfaceID: "first"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PickHit(tt.candidates)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("PickHit = %+v, want %+v", got, tt.want)
			}
			if got == nil {
				return
			}
			if got.Kind != tt.want.Kind || got.Distance != tt.want.Distance || got.SurfaceID != tt.want.SurfaceID {
				t.Errorf("PickHit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPickHitDoesNotReorderInput(t *testing.T) {
	candidates := []HitCandidate{
		hit(HitExistingPlane, 5),
		hit(HitExistingPlane, 1),
		hit(HitExistingPlane, 3),
	}
	PickHit(candidates)
	if candidates[0].Distance != 5 || candidates[1].Distance != 1 || candidates[2].Distance != 3 {
		t.Errorf("input slice reordered: %+v", candidates)
	}
}

func TestHitKindString(t *testing.T) {
	tests := []struct {
		kind HitKind
		want string
	}{
		{HitFeaturePoint, "feature-point"},
		{HitEstimatedPlane, "other-surface"},
		{HitExistingPlane, "existing-surface"},
		{HitExistingPlaneExtent, "existing-surface-with-extent"},
		{HitKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("HitKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
