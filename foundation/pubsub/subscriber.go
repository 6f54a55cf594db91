package pubsub

// Subscriber receives published payloads on its channel. Capacity zero
// makes delivery synchronous with the publisher, which the worker relies
// on to keep event ordering.
type Subscriber struct {
	payload chan any
}

func NewSubscriber(capacity int) *Subscriber {
	if capacity < 0 {
		capacity = 0
	}
	return &Subscriber{
		payload: make(chan any, capacity),
	}
}

func (s *Subscriber) Signal(data any) {
	s.payload <- data
}

func (s *Subscriber) GetChannel() <-chan any {
	return s.payload
}

func (s *Subscriber) CloseChannel() {
	close(s.payload)
}
