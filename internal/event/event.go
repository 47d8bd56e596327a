// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ironpulse/local-app/internal/log"
)

// EventType represents the type of event
type EventType int

const (
	UserRegistered EventType = iota
	UserLoggedIn
	UserLoggedOut
	ProfileUpdated
	OnboardingCompleted
	EntryAdded
	EntryDeleted
)

var eventNames = map[EventType]string{
	UserRegistered:      "user_registered",
	UserLoggedIn:        "user_logged_in",
	UserLoggedOut:       "user_logged_out",
	ProfileUpdated:      "profile_updated",
	OnboardingCompleted: "onboarding_completed",
	EntryAdded:          "entry_added",
	EntryDeleted:        "entry_deleted",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler handles one event. A returned error is reported back to the publisher.
type EventHandler func(Event) error

// EventManager manages event subscriptions and publications.
// Handlers run synchronously on the publishing goroutine, in subscription order.
type EventManager struct {
	subscribers map[EventType][]EventHandler
	mu          sync.RWMutex
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish runs every handler subscribed to the event's type and joins their errors.
// A panicking handler is logged and reported as an error; the remaining handlers still run.
func (em *EventManager) Publish(event Event) error {
	em.mu.RLock()
	handlers := append([]EventHandler(nil), em.subscribers[event.Type]...)
	em.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := em.call(h, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (em *EventManager) call(h EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event.Type.String(),
				"panic": r,
			})
			err = fmt.Errorf("handler for %s panicked: %v", event.Type, r)
		}
	}()
	if err := h(event); err != nil {
		em.logger.Warn(context.Background(), "Event handler failed", log.Fields{"event": event.Type.String(), "error": err})
		return fmt.Errorf("handler for %s: %w", event.Type, err)
	}
	return nil
}
