package events

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(event Event)

func (h HandlerFunc) Handle(event Event) {
	h(event)
}

func NewNoopHandler() *NoopHandler {
	return &NoopHandler{}
}

type NoopHandler struct{}

func (h *NoopHandler) Handle(event Event) {}

// Multi fans an event out to every handler in order.
func Multi(handlers ...Handler) Handler {
	return HandlerFunc(func(event Event) {
		for _, h := range handlers {
			if h != nil {
				h.Handle(event)
			}
		}
	})
}
