// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/grantvm/vms/grantvm/events"
)

var _ events.Visitor = (*eventMetrics)(nil)

type eventMetrics struct {
	granted       prometheus.Counter
	released      prometheus.Counter
	collected     prometheus.Counter
	cancellations prometheus.Counter
	renunciations prometheus.Counter
}

func newEventMetrics(registerer prometheus.Registerer) (*eventMetrics, error) {
	m := &eventMetrics{
		granted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "granted",
			Help: "total amount locked under new vesting schedules",
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "released",
			Help: "total amount unlocked by claims",
		}),
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "collected",
			Help: "total amount moved to funds collectors by cancellations",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cancellations",
			Help: "number of accounts whose vesting schedules were canceled",
		}),
		renunciations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "renunciations",
			Help: "number of renunciations of the cancel right",
		}),
	}
	err := errors.Join(
		registerer.Register(m.granted),
		registerer.Register(m.released),
		registerer.Register(m.collected),
		registerer.Register(m.cancellations),
		registerer.Register(m.renunciations),
	)
	return m, err
}

func (m *eventMetrics) VestingScheduleAdded(e *events.VestingScheduleAdded) error {
	total, err := e.Schedule.TotalAmount()
	if err != nil {
		return err
	}
	m.granted.Add(float64(total))
	return nil
}

func (m *eventMetrics) Claimed(e *events.Claimed) error {
	m.released.Add(float64(e.Amount))
	return nil
}

func (m *eventMetrics) VestingSchedulesCanceled(e *events.VestingSchedulesCanceled) error {
	m.cancellations.Inc()
	m.collected.Add(float64(e.Collected))
	return nil
}

func (m *eventMetrics) Renounced(*events.Renounced) error {
	m.renunciations.Inc()
	return nil
}
