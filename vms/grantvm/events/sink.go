// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import "sync"

var _ Sink = (*Buffer)(nil)

// Sink accepts emitted events. Emit never fails.
type Sink interface {
	Emit(Event)
}

// Buffer holds the events of an operation until it is known whether the
// operation commits.
type Buffer struct {
	lock   sync.Mutex
	events []Event
}

func (b *Buffer) Emit(e Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.events = append(b.events, e)
}

// Flush returns the buffered events in emission order and empties the buffer.
func (b *Buffer) Flush() []Event {
	b.lock.Lock()
	defer b.lock.Unlock()

	events := b.events
	b.events = nil
	return events
}

// Discard drops the buffered events.
func (b *Buffer) Discard() {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.events = nil
}
