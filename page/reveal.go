package page

// RevealThreshold is the fraction of an item that must be in view before it
// is revealed.
const RevealThreshold = 0.15

// RevealTracker marks items visible the first time enough of them scrolls
// into view. Revealed items stay revealed and are no longer observed.
type RevealTracker struct {
	threshold float64
	pending   []Box
	visible   map[string]bool
}

// NewRevealTracker observes the given items.
func NewRevealTracker(items []Box, threshold float64) *RevealTracker {
	pending := make([]Box, len(items))
	copy(pending, items)
	return &RevealTracker{
		threshold: threshold,
		pending:   pending,
		visible:   make(map[string]bool, len(items)),
	}
}

// Observe checks pending items against the viewport [top, top+height) and
// returns the ids revealed by this call.
func (r *RevealTracker) Observe(top, height float64) []string {
	var revealed []string
	kept := r.pending[:0]

	for _, item := range r.pending {
		if r.intersects(item, top, height) {
			r.visible[item.ID] = true
			revealed = append(revealed, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	r.pending = kept
	return revealed
}

func (r *RevealTracker) intersects(item Box, top, height float64) bool {
	overlap := min(item.Bottom(), top+height) - max(item.Top, top)
	if overlap <= 0 {
		// Zero-height items count when their offset is inside the viewport.
		return item.Height == 0 && item.Top >= top && item.Top < top+height
	}
	if item.Height <= 0 || overlap >= height {
		return true
	}
	return overlap/item.Height >= r.threshold
}

// Visible reports whether the item has been revealed.
func (r *RevealTracker) Visible(id string) bool {
	return r.visible[id]
}

// Pending returns how many items are still hidden.
func (r *RevealTracker) Pending() int {
	return len(r.pending)
}
