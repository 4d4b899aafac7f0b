package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Mediator dispatches a Request to whichever RequestHandler was registered
// for its concrete type, running every registered Middleware around the
// call. It is how every adapter (gRPC, CLI) reaches the control/commands
// and control/queries handlers without importing them directly.
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	RegisterMiddleware(middleware Middleware)
}

type mediator struct {
	handlers    map[reflect.Type]RequestHandler
	middlewares []Middleware
}

// New creates an empty Mediator.
func New() Mediator {
	return &mediator{
		handlers: make(map[reflect.Type]RequestHandler),
	}
}

func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	if _, exists := m.handlers[requestType]; exists {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}
	m.handlers[requestType] = handler
	return nil
}

func (m *mediator) RegisterMiddleware(middleware Middleware) {
	m.middlewares = append(m.middlewares, middleware)
}

func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	requestType := reflect.TypeOf(request)
	handler, ok := m.handlers[requestType]
	if !ok {
		return nil, fmt.Errorf("no handler registered for type %s", requestType)
	}

	next := handler.Handle
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		middleware := m.middlewares[i]
		currentNext := next
		next = func(ctx context.Context, req Request) (Response, error) {
			return middleware(ctx, req, currentNext)
		}
	}

	return next(ctx, request)
}

// RegisterHandler registers handler for the concrete Request type T, the
// way control/setup wires each command/query handler onto the Mediator.
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	requestType := reflect.TypeOf(zero)
	return m.Register(requestType, handler)
}
