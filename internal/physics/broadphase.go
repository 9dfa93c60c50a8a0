package physics

import "sort"

// BroadPhase returns every pair of bodies whose X intervals overlap, skipping pairs for which known
// returns true. Intervals that only touch count as overlapping.
type BroadPhase func(bodies []*Body, known func(a, b *Body) bool) []CollisionPair

type sapEntry struct {
	body       *Body
	start, end float32
}

// SweepAndPrune sorts bodies by the start of their X interval and sweeps once, keeping an active
// list of intervals that have not ended yet.
func SweepAndPrune(bodies []*Body, known func(a, b *Body) bool) []CollisionPair {
	entries := make([]sapEntry, 0, len(bodies))
	for _, b := range bodies {
		if len(b.colliders) == 0 {
			continue
		}
		entries = append(entries, sapEntry{body: b, start: b.bounds.X, end: b.bounds.X + b.bounds.Width})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].start < entries[j].start })

	var pairs []CollisionPair
	active := make([]sapEntry, 0, 16)
	for _, e := range entries {
		kept := active[:0]
		for _, a := range active {
			if e.start > a.end {
				continue
			}
			kept = append(kept, a)
			if known != nil && known(a.body, e.body) {
				continue
			}
			pairs = append(pairs, orderPair(a.body, e.body))
		}
		active = append(kept, e)
	}
	return pairs
}

// BruteForce tests every pair. It yields the same pairs as SweepAndPrune and exists as a reference.
func BruteForce(bodies []*Body, known func(a, b *Body) bool) []CollisionPair {
	var pairs []CollisionPair
	for i, a := range bodies {
		if len(a.colliders) == 0 {
			continue
		}
		for _, b := range bodies[i+1:] {
			if len(b.colliders) == 0 {
				continue
			}
			if a.bounds.X > b.bounds.X+b.bounds.Width || b.bounds.X > a.bounds.X+a.bounds.Width {
				continue
			}
			if known != nil && known(a, b) {
				continue
			}
			pairs = append(pairs, orderPair(a, b))
		}
	}
	return pairs
}
