package tetris

import "math/rand"

// KindSource supplies the kind and initial rotation of each new piece.
type KindSource interface {
	Next() (Kind, int)
}

// RandomSource draws kinds and rotations uniformly from a seeded generator.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a random kind and rotation.
func (s *RandomSource) Next() (Kind, int) {
	rotation := s.rng.Intn(Rotations)
	kind := Kind(s.rng.Intn(kindCount))
	return kind, rotation
}

// Reseed restarts the generator from seed. The draws that follow are the
// same as those of NewRandomSource(seed).
func (s *RandomSource) Reseed(seed int64) {
	s.rng.Seed(seed)
}

// Spawn is one scripted entry of a SequenceSource.
type Spawn struct {
	Kind     Kind
	Rotation int
}

// SequenceSource replays a fixed list of spawns, wrapping around at the end.
type SequenceSource struct {
	spawns []Spawn
	next   int
}

// NewSequenceSource creates a source cycling through spawns.
// Panics if spawns is empty.
func NewSequenceSource(spawns ...Spawn) *SequenceSource {
	if len(spawns) == 0 {
		panic("tetris: empty spawn sequence")
	}
	return &SequenceSource{spawns: spawns}
}

// KindSequence is a convenience for a sequence where every piece spawns
// in rotation 0.
func KindSequence(kinds ...Kind) *SequenceSource {
	spawns := make([]Spawn, len(kinds))
	for i, k := range kinds {
		spawns[i] = Spawn{Kind: k}
	}
	return NewSequenceSource(spawns...)
}

// Next returns the next scripted spawn.
func (s *SequenceSource) Next() (Kind, int) {
	sp := s.spawns[s.next]
	s.next = (s.next + 1) % len(s.spawns)
	return sp.Kind, sp.Rotation % Rotations
}
