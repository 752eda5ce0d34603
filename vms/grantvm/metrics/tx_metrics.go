// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/grantvm/vms/grantvm/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs *prometheus.CounterVec
}

func newTxMetrics(registerer prometheus.Registerer) (*txMetrics, error) {
	m := &txMetrics{
		numTxs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txs_accepted",
				Help: "number of transactions accepted",
			},
			txLabels,
		),
	}
	return m, registerer.Register(m.numTxs)
}

func (m *txMetrics) ClaimTx(*txs.ClaimTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "claim",
	}).Inc()
	return nil
}

func (m *txMetrics) AddVestingScheduleTx(*txs.AddVestingScheduleTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "add_vesting_schedule",
	}).Inc()
	return nil
}

func (m *txMetrics) CancelAllVestingSchedulesTx(*txs.CancelAllVestingSchedulesTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "cancel_all_vesting_schedules",
	}).Inc()
	return nil
}

func (m *txMetrics) RenounceTx(*txs.RenounceTx) error {
	m.numTxs.With(prometheus.Labels{
		txLabel: "renounce",
	}).Inc()
	return nil
}
