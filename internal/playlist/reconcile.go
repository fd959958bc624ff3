package playlist

// Reconcile maps freshly loaded tracks onto the pointers of a previous load.
//
// An entry of next is replaced by the first unused entry of prev that carries
// the same values, so a reloaded playlist keeps the identity of tracks that
// did not change (including the one currently playing). Duplicates are
// matched one to one in order.
func Reconcile(prev, next []*Track) []*Track {
	pool := make(map[string][]*Track, len(prev))
	for _, t := range prev {
		if t == nil {
			continue
		}
		pool[t.ID()] = append(pool[t.ID()], t)
	}

	out := make([]*Track, len(next))
	for i, t := range next {
		out[i] = t
		candidates := pool[t.ID()]
		for j, c := range candidates {
			if c.sameAs(t) {
				out[i] = c
				pool[t.ID()] = append(candidates[:j:j], candidates[j+1:]...)
				break
			}
		}
	}
	return out
}
