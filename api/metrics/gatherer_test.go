// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	dto "github.com/prometheus/client_model/go"
)

type staticGatherer struct {
	families []*dto.MetricFamily
	err      error
}

func (g *staticGatherer) Gather() ([]*dto.MetricFamily, error) {
	return g.families, g.err
}

func newCounter(name string, value float64) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: name,
	})
	c.Add(value)
	return c
}

func TestGatherNamespacesAndSorts(t *testing.T) {
	require := require.New(t)

	gatherer := NewGatherer()
	httpRegistry, err := gatherer.NewRegistry("http")
	require.NoError(err)
	require.NoError(httpRegistry.Register(newCounter("requests", 2)))

	grantsRegistry, err := gatherer.NewRegistry("grants")
	require.NoError(err)
	require.NoError(grantsRegistry.Register(newCounter("claims", 0)))

	families, err := gatherer.Gather()
	require.NoError(err)
	require.Len(families, 2)

	require.Equal("grants_claims", families[0].GetName())
	require.Equal(dto.MetricType_COUNTER, families[0].GetType())
	require.Zero(families[0].GetMetric()[0].GetCounter().GetValue())

	require.Equal("http_requests", families[1].GetName())
	require.InDelta(2, families[1].GetMetric()[0].GetCounter().GetValue(), 0)
}

func TestGatherKeepsFamiliesOnError(t *testing.T) {
	require := require.New(t)

	errGather := errors.New("gather failed")
	gatherer := NewGatherer()
	require.NoError(gatherer.Register("partial", &staticGatherer{
		families: []*dto.MetricFamily{{Name: proto.String("counter")}},
		err:      errGather,
	}))
	require.NoError(gatherer.Register("healthy", &staticGatherer{
		families: []*dto.MetricFamily{{Name: proto.String("gauge")}},
	}))

	families, err := gatherer.Gather()
	require.ErrorIs(err, errGather)
	require.ErrorContains(err, `"partial"`)
	require.Len(families, 2)
	require.Equal("healthy_gauge", families[0].GetName())
	require.Equal("partial_counter", families[1].GetName())
}

func TestGatherJoinsErrors(t *testing.T) {
	require := require.New(t)

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	gatherer := NewGatherer()
	require.NoError(gatherer.Register("a", &staticGatherer{err: errA}))
	require.NoError(gatherer.Register("b", &staticGatherer{err: errB}))

	families, err := gatherer.Gather()
	require.ErrorIs(err, errA)
	require.ErrorIs(err, errB)
	require.Empty(families)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		existing    []string
		namespace   string
		expectedErr error
	}{
		{
			name:      "first registration",
			namespace: "grants",
		},
		{
			name:      "disjoint",
			existing:  []string{"grants"},
			namespace: "http",
		},
		{
			name:      "not at namespace boundary",
			existing:  []string{"grants"},
			namespace: "grantsvm",
		},
		{
			name:        "duplicate",
			existing:    []string{"grants"},
			namespace:   "grants",
			expectedErr: errOverlappingNamespaces,
		},
		{
			name:        "extends existing",
			existing:    []string{"grants"},
			namespace:   "grants_http",
			expectedErr: errOverlappingNamespaces,
		},
		{
			name:        "extended by existing",
			existing:    []string{"grants_http"},
			namespace:   "grants",
			expectedErr: errOverlappingNamespaces,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			gatherer := NewGatherer()
			for _, namespace := range test.existing {
				require.NoError(gatherer.Register(namespace, &staticGatherer{}))
			}
			err := gatherer.Register(test.namespace, &staticGatherer{})
			require.ErrorIs(err, test.expectedErr)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected bool
	}{
		{a: "", b: "", expected: true},
		{a: "", b: "grants", expected: true},
		{a: "grants", b: "grants", expected: true},
		{a: "grants", b: "grants_http", expected: true},
		{a: "grants_http", b: "grants", expected: true},
		{a: "grants", b: "grantsvm", expected: false},
		{a: "grants", b: "http", expected: false},
	}
	for _, test := range tests {
		t.Run(test.a+"|"+test.b, func(t *testing.T) {
			require.Equal(t, test.expected, overlaps(test.a, test.b))
		})
	}
}
