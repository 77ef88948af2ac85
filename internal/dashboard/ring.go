package dashboard

// ringBuffer is a fixed-size circular buffer.
type ringBuffer[T any] struct {
	data  []T
	head  int
	count int
	size  int
}

func newRingBuffer[T any](size int) *ringBuffer[T] {
	return &ringBuffer[T]{
		data: make([]T, size),
		size: size,
	}
}

// push adds a value, overwriting the oldest once full.
func (r *ringBuffer[T]) push(value T) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer[T]) getLast(count int) []T {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]T, count)
	// head points to the next write position, so the newest value is at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

func (r *ringBuffer[T]) getAll() []T {
	return r.getLast(r.count)
}

func (r *ringBuffer[T]) len() int {
	return r.count
}

func (r *ringBuffer[T]) reset() {
	var zero T
	for i := range r.data {
		r.data[i] = zero
	}
	r.head = 0
	r.count = 0
}
