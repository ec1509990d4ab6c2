// Package backend provides the tracking-backend plug-in registry and
// the built-in backends.
//
// A tracking backend is anything that satisfies ar.TrackingBackend:
// it answers screen-space hit-test queries with HitCandidates and feeds
// asynchronous pose updates for the surfaces it keeps tracking.
//
// Backends register themselves by name, typically from an init
// function, and are selected via Get or Default:
//
//	import (
//	    "github.com/gogpu/ar"
//	    "github.com/gogpu/ar/backend"
//	)
//
//	sess, err := ar.NewSession(backend.MustDefault())
//
// Two backends are built in. The null backend tracks nothing and
// reports no hits; it is the lowest-priority fallback so that code
// paths stay exercisable on machines without any tracking system. The
// scripted backend replays canned candidate sets and pose events
// deterministically; tests and demos select it by name:
//
//	sb := backend.NewScripted()
//	sb.QueueHits(candidates)
//	sess, err := ar.NewSession(sb)
//
// Real tracking integrations (an ARCore bridge, a SLAM pipeline) live
// outside this module and register here with a priority name of their
// own.
package backend
