package intro

// CallbackID identifies one scheduled timer or pending presentation.
// IDs are never reused within a sequencer.
type CallbackID uint64

// ambientOwner owns callbacks that outlive individual beats (CRT warm-up).
const ambientOwner = -1

type callback struct {
	owner int
	label string
	fn    func()
}

// registry tracks every outstanding callback by owner so a beat's whole
// set can be voided in one move.
type registry struct {
	next    CallbackID
	entries map[CallbackID]callback
}

func newRegistry() registry {
	return registry{entries: make(map[CallbackID]callback)}
}

func (r *registry) add(owner int, label string, fn func()) CallbackID {
	r.next++
	r.entries[r.next] = callback{owner: owner, label: label, fn: fn}
	return r.next
}

// take removes and returns the callback for id.
func (r *registry) take(id CallbackID) (callback, bool) {
	cb, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	return cb, ok
}

// dropOwner voids every callback owned by owner and returns their ids.
func (r *registry) dropOwner(owner int) []CallbackID {
	var ids []CallbackID
	for id, cb := range r.entries {
		if cb.owner == owner {
			ids = append(ids, id)
			delete(r.entries, id)
		}
	}
	return ids
}

// dropAll voids everything.
func (r *registry) dropAll() []CallbackID {
	ids := make([]CallbackID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	clear(r.entries)
	return ids
}

func (r *registry) pending() int {
	return len(r.entries)
}
