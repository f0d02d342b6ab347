// Package events carries progress facts from the learning services to
// in-process observers.
//
// Services publish an Event only after the transaction that produced it has
// committed, so a handler never sees a fact that was rolled back. The
// InMemoryEventEmitter fans each event out to every registered handler;
// LoggingHandler is the default subscriber and records events in the
// structured log.
package events
