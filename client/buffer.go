package client

// buffer accumulates pending message bytes until a flush drains them.
// Callers hold the client mutex; buffer does no locking of its own.
type buffer struct {
	msgs [][]byte
	size int
}

func newBuffer() *buffer {
	return &buffer{}
}

// append adds p to the tail and returns the new running size.
func (b *buffer) append(p []byte) int {
	b.msgs = append(b.msgs, p)
	b.size += len(p)
	return b.size
}

// wouldExceedDropLimit reports whether n more bytes must be rejected:
// the buffer has already reached the flush threshold and the new total
// would pass the drop limit. A single message larger than the drop limit
// is still accepted while the buffer is below the flush threshold.
func (b *buffer) wouldExceedDropLimit(n, flushLimit, dropLimit int) bool {
	return b.size >= flushLimit && b.size+n > dropLimit
}

// snapshotAndClear captures the pending messages as one packet, in
// insertion order with no added separators, and resets the buffer so
// appends after this instant start a fresh batch.
func (b *buffer) snapshotAndClear() []byte {
	if len(b.msgs) == 0 {
		return nil
	}

	packet := make([]byte, 0, b.size)
	for _, m := range b.msgs {
		packet = append(packet, m...)
	}
	b.msgs = b.msgs[:0]
	b.size = 0
	return packet
}
