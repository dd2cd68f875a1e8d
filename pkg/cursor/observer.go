/*
 * Copyright (c) 2026, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package cursor

import (
	"github.com/rs/zerolog"
)

type EventKind int

const (
	EventPull EventKind = iota
	EventNext
	EventLook
	EventExhausted
	EventPush
	EventCommit
	EventRollback
)

func (k EventKind) ToString() string {
	switch k {
	case EventPull:
		return "pull"
	case EventNext:
		return "next"
	case EventLook:
		return "look"
	case EventExhausted:
		return "exhausted"
	case EventPush:
		return "push"
	case EventCommit:
		return "commit"
	case EventRollback:
		return "rollback"
	}
	return "unknown"
}

func (k EventKind) String() string {
	return k.ToString()
}

// Event describes a single cursor operation.
//
// Depth is the number of open transactions after the operation. Count is
// operation specific: the lookahead distance for EventLook, and the number
// of elements kept or replayed for EventCommit and EventRollback.
type Event struct {
	Kind  EventKind
	Depth int
	Count int
}

type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Observers fans every event out to each of obs in order.
func Observers(obs ...Observer) Observer {
	return ObserverFunc(func(e Event) {
		for _, o := range obs {
			o.Observe(e)
		}
	})
}

// LogObserver writes every event to log at trace level.
func LogObserver(log zerolog.Logger) Observer {
	return ObserverFunc(func(e Event) {
		log.Trace().
			Str("event", e.Kind.ToString()).
			Int("depth", e.Depth).
			Int("count", e.Count).
			Msg("cursor")
	})
}
