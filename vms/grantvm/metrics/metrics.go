// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/grantvm/vms/grantvm/events"
	"github.com/luxfi/grantvm/vms/grantvm/txs"
)

const categoryLabel = "category"

var _ Metrics = (*metrics)(nil)

type Metrics interface {
	// MarkTxAccepted updates all metrics relating to the acceptance of a
	// transaction and the events it emitted.
	MarkTxAccepted(tx *txs.Tx, emitted []events.Event) error
	// MarkTxRejected counts a failed transaction under the category of its
	// error.
	MarkTxRejected(category string)
	SetNumGrantees(n uint64)
}

type metrics struct {
	txMetrics    *txMetrics
	eventMetrics *eventMetrics

	numTxsRejected *prometheus.CounterVec
	numGrantees    prometheus.Gauge
}

func New(registerer prometheus.Registerer) (Metrics, error) {
	txMetrics, txErr := newTxMetrics(registerer)
	eventMetrics, eventErr := newEventMetrics(registerer)
	m := &metrics{
		txMetrics:    txMetrics,
		eventMetrics: eventMetrics,
		numTxsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txs_rejected",
				Help: "number of transactions rejected",
			},
			[]string{categoryLabel},
		),
		numGrantees: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "grantees",
			Help: "number of accounts with at least one vesting schedule",
		}),
	}
	err := errors.Join(
		txErr,
		eventErr,
		registerer.Register(m.numTxsRejected),
		registerer.Register(m.numGrantees),
	)
	return m, err
}

func (m *metrics) MarkTxAccepted(tx *txs.Tx, emitted []events.Event) error {
	if err := tx.Unsigned.Visit(m.txMetrics); err != nil {
		return err
	}
	for _, e := range emitted {
		if err := e.Visit(m.eventMetrics); err != nil {
			return err
		}
	}
	return nil
}

func (m *metrics) MarkTxRejected(category string) {
	m.numTxsRejected.With(prometheus.Labels{
		categoryLabel: category,
	}).Inc()
}

func (m *metrics) SetNumGrantees(n uint64) {
	m.numGrantees.Set(float64(n))
}
