package constants

// Event queue sizing

const (
	// EventQueueSize is the ring buffer capacity, must be a power of 2
	EventQueueSize = 256

	// EventBufferMask derives slot indices from monotonic counters
	EventBufferMask = EventQueueSize - 1
)
