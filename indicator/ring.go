package indicator

// ring keeps the last len(values) measurements.
type ring struct {
	values []float64
	next   int
	count  int
}

func newRing(n int) ring {
	if n < 1 {
		n = 1
	}
	return ring{values: make([]float64, n)}
}

func (r *ring) push(v float64) {
	r.values[r.next] = v
	r.next = (r.next + 1) % len(r.values)
	if r.count < len(r.values) {
		r.count++
	}
}

func (r *ring) full() bool {
	return r.count == len(r.values)
}

// orderedInto copies the measurements oldest-first into dst (which must have len(r.values)).
func (r *ring) orderedInto(dst []float64) {
	// raw      3 4 5 6 7 0 1 2
	//                  ^ next
	// ordered  0 1 2 3 4 5 6 7
	n := copy(dst, r.values[r.next:])
	copy(dst[n:], r.values[:r.next])
}

func (r *ring) reset() {
	clear(r.values)
	r.next = 0
	r.count = 0
}
