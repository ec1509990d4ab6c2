// Package ar anchors virtual content to real-world surfaces detected by
// an augmented-reality tracking backend.
//
// # Overview
//
// ar is a Pure Go AR anchoring library designed to integrate with the
// GoGPU ecosystem. It implements the anchor lifecycle and hit-test
// resolution layer that sits between a tracking backend (plane-detection
// AR system, feature-point SLAM, or a null backend) and a rendering or
// session layer: given a normalized screen coordinate it queries the
// backend for ray/surface intersections, ranks the candidates, binds the
// winner to a stable Anchor in tracker space, and returns an offset
// transform relative to that anchor.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ar"
//	    "github.com/gogpu/ar/backend"
//	)
//
//	// Create a session over the best available tracking backend.
//	sess, err := ar.NewSession(backend.MustDefault())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	world := ar.NewRootSpace("tracker")
//
//	// Resolve a screen tap ((0,0) is top-left, coordinates in [0,1]).
//	offset, err := sess.ResolveHit(ctx, 0.5, 0.5, world)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if offset == nil {
//	    // Nothing there: a valid result, not an error.
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Session, Resolver, Registry, Anchor, AnchorOffset,
//     Space, Pose, HitCandidate
//   - Backend plug-ins: backend/ (registry, null, scripted), backend/replay
//   - Examples: examples/ (runnable demos)
//
// The root package defines the TrackingBackend capability interface;
// concrete backends live under backend/ and register themselves with its
// plug-in registry, so the resolver and picker stay backend-agnostic.
//
// # Coordinate System
//
// Screen coordinates are normalized to [0,1] with the origin at the
// top-left. World poses use right-handed 3D coordinates with +Y up;
// rotations are unit quaternions (mgl64.Quat). Anchors are always
// expressed in tracker space, the stable root frame that is independent
// of camera motion.
//
// # Threading
//
// Registry and Session mutation is confined to the host's single
// update/render goroutine. Backend callbacks arriving on other
// goroutines are enqueued (EnqueueUpdate) and drained on the update
// turn (Session.Step). Hit-test queries are asynchronous with respect
// to the frame loop; see Session.RequestHit.
package ar

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
