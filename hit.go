package ar

import "sort"

// HitKind classifies a hit-test intersection by the kind of tracked
// geometry the ray struck.
type HitKind int

const (
	// HitFeaturePoint is an intersection with a raw SLAM feature point.
	HitFeaturePoint HitKind = iota

	// HitEstimatedPlane is an intersection with a surface the backend
	// has estimated but not confirmed as an existing plane.
	HitEstimatedPlane

	// HitExistingPlane is an intersection with a detected plane whose
	// extent is unknown.
	HitExistingPlane

	// HitExistingPlaneExtent is an intersection within the known extent
	// of a detected plane. The most reliable kind of hit.
	HitExistingPlaneExtent
)

// String returns the backend-facing name of the kind.
func (k HitKind) String() string {
	switch k {
	case HitFeaturePoint:
		return "feature-point"
	case HitEstimatedPlane:
		return "other-surface"
	case HitExistingPlane:
		return "existing-surface"
	case HitExistingPlaneExtent:
		return "existing-surface-with-extent"
	default:
		return "unknown"
	}
}

// HitCandidate is a single ray/surface intersection reported by a
// tracking backend. Candidates are ephemeral: produced and consumed
// within one resolution call, never persisted.
type HitCandidate struct {
	// Kind classifies the intersected geometry.
	Kind HitKind

	// Distance is the non-negative distance from the ray origin to the
	// intersection.
	Distance float64

	// SurfaceID is the backend's stable identity for the matched
	// surface, when it exposes one. Empty for backends that only report
	// positions (pure feature-point or plane-only-position systems).
	SurfaceID string

	// AnchorPose is the pose of the matched surface, used to create or
	// locate an Anchor.
	AnchorPose Pose

	// WorldPose is the exact pose of the ray/surface intersection
	// point, used to compute the offset from the anchor.
	WorldPose Pose
}

// PickHit ranks hit candidates and returns a copy of the single best
// one, or nil if candidates is empty.
//
// The tie-break policy layers candidates by reliability, most-preferred
// first:
//
//  1. If any candidate hit within a known plane extent, only those
//     compete.
//  2. Else, if any candidate hit an existing plane, only those compete.
//  3. Else, all non-feature-point candidates compete.
//  4. Else, the first feature point in backend-reported order wins.
//     Feature points are unordered by distance in this policy.
//
// Within layers 1-3 the nearest candidate wins. The sort is stable, so
// equidistant candidates keep backend order.
func PickHit(candidates []HitCandidate) *HitCandidate {
	if len(candidates) == 0 {
		return nil
	}

	subset := filterHits(candidates, func(c HitCandidate) bool {
		return c.Kind == HitExistingPlaneExtent
	})
	if subset == nil {
		subset = filterHits(candidates, func(c HitCandidate) bool {
			return c.Kind == HitExistingPlane
		})
	}
	if subset == nil {
		subset = filterHits(candidates, func(c HitCandidate) bool {
			return c.Kind != HitFeaturePoint
		})
	}
	if subset == nil {
		// Only feature points remain: take the first as reported.
		best := candidates[0]
		return &best
	}

	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].Distance < subset[j].Distance
	})
	best := subset[0]
	return &best
}

// filterHits returns the candidates matching keep, or nil if none do.
// Always copies, so sorting the subset never reorders the input.
func filterHits(candidates []HitCandidate, keep func(HitCandidate) bool) []HitCandidate {
	var out []HitCandidate
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
