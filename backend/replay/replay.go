// Package replay records tracking-backend sessions to JSON and plays
// them back deterministically.
//
// A Recorder wraps any live backend and captures every hit-test
// exchange and pose update that flows through it. The captured Session
// can be written to disk and later driven through a Player, which
// satisfies ar.TrackingBackend itself, so a field capture from a real
// device becomes a reproducible fixture:
//
//	rec := replay.NewRecorder(liveBackend)
//	sess, _ := ar.NewSession(rec)
//	// ... interact ...
//	sess.Close()
//	rec.WriteFile("capture.json")
//
//	player, _ := replay.LoadFile("capture.json")
//	sess2, _ := ar.NewSession(player)
package replay

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/goccy/go-json"

	"github.com/gogpu/ar"
)

// Session is the on-disk capture format.
type Session struct {
	// Backend is the name of the backend the capture was taken from.
	Backend string `json:"backend"`

	// Queries are the recorded hit-test exchanges, in call order.
	Queries []Query `json:"queries"`

	// Updates are the recorded pose-feed events, in arrival order.
	Updates []Update `json:"updates,omitempty"`
}

// Query is one recorded hit-test exchange.
type Query struct {
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Candidates []Candidate `json:"candidates,omitempty"`
	// Error carries the backend's failure message, when the query
	// failed. Played back as an opaque error.
	Error string `json:"error,omitempty"`
}

// Candidate mirrors ar.HitCandidate with a stable wire layout.
type Candidate struct {
	Kind       string  `json:"kind"`
	Distance   float64 `json:"distance"`
	SurfaceID  string  `json:"surface_id,omitempty"`
	AnchorPose PoseDTO `json:"anchor_pose"`
	WorldPose  PoseDTO `json:"world_pose"`
}

// Update is one recorded pose-feed event.
type Update struct {
	AnchorID string  `json:"anchor_id"`
	Pose     PoseDTO `json:"pose"`
}

// PoseDTO is a pose as position [x y z] and rotation [w x y z].
type PoseDTO struct {
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
}

func poseDTO(p ar.Pose) PoseDTO {
	return PoseDTO{
		Position: [3]float64{p.Position.X(), p.Position.Y(), p.Position.Z()},
		Rotation: [4]float64{p.Rotation.W, p.Rotation.V.X(), p.Rotation.V.Y(), p.Rotation.V.Z()},
	}
}

func (d PoseDTO) pose() ar.Pose {
	return ar.Pose{
		Position: mgl64.Vec3{d.Position[0], d.Position[1], d.Position[2]},
		Rotation: mgl64.Quat{
			W: d.Rotation[0],
			V: mgl64.Vec3{d.Rotation[1], d.Rotation[2], d.Rotation[3]},
		},
	}
}

var kindNames = map[string]ar.HitKind{
	ar.HitFeaturePoint.String():        ar.HitFeaturePoint,
	ar.HitEstimatedPlane.String():      ar.HitEstimatedPlane,
	ar.HitExistingPlane.String():       ar.HitExistingPlane,
	ar.HitExistingPlaneExtent.String(): ar.HitExistingPlaneExtent,
}

func candidateDTO(c ar.HitCandidate) Candidate {
	return Candidate{
		Kind:       c.Kind.String(),
		Distance:   c.Distance,
		SurfaceID:  c.SurfaceID,
		AnchorPose: poseDTO(c.AnchorPose),
		WorldPose:  poseDTO(c.WorldPose),
	}
}

func (c Candidate) candidate() (ar.HitCandidate, error) {
	kind, ok := kindNames[c.Kind]
	if !ok {
		return ar.HitCandidate{}, fmt.Errorf("replay: unknown hit kind %q", c.Kind)
	}
	return ar.HitCandidate{
		Kind:       kind,
		Distance:   c.Distance,
		SurfaceID:  c.SurfaceID,
		AnchorPose: c.AnchorPose.pose(),
		WorldPose:  c.WorldPose.pose(),
	}, nil
}

// Marshal encodes a session capture as indented JSON.
func (s *Session) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("replay: encode session: %w", err)
	}
	return data, nil
}

// Load decodes a session capture.
func Load(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: decode session: %w", err)
	}
	return &s, nil
}

// LoadFile reads a capture file and returns a Player for it.
func LoadFile(path string) (*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, err
	}
	return NewPlayer(s), nil
}
