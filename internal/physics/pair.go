package physics

// CollisionPair is an unordered pair of bodies. A is the heavier body when the pair comes from
// the broad phase.
type CollisionPair struct {
	A, B *Body
}

type pairKey struct {
	lo, hi uint64
}

func (p CollisionPair) key() pairKey {
	return keyOf(p.A, p.B)
}

func keyOf(a, b *Body) pairKey {
	if a.id > b.id {
		a, b = b, a
	}
	return pairKey{a.id, b.id}
}

// Equal reports whether both pairs hold the same two bodies in any order.
func (p CollisionPair) Equal(o CollisionPair) bool {
	return p.key() == o.key()
}

func (p CollisionPair) String() string {
	return "[" + p.A.String() + " v " + p.B.String() + "]"
}

// orderPair puts the heavier body first, breaking ties by registration order.
func orderPair(a, b *Body) CollisionPair {
	if b.Mass > a.Mass || (b.Mass == a.Mass && b.id < a.id) {
		a, b = b, a
	}
	return CollisionPair{A: a, B: b}
}
