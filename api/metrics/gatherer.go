// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/protobuf/proto"

	dto "github.com/prometheus/client_model/go"
)

var (
	_ prometheus.Gatherer = (*Gatherer)(nil)

	errOverlappingNamespaces = errors.New("namespace overlaps a registered namespace")
)

// Gatherer merges the metrics of several gatherers, naming every family after
// the namespace its gatherer was registered under.
type Gatherer struct {
	lock       sync.RWMutex
	namespaces []string
	gatherers  []prometheus.Gatherer
}

func NewGatherer() *Gatherer {
	return &Gatherer{}
}

// Register reports the metrics of [gatherer] under [namespace]. Namespaces
// may not nest.
func (g *Gatherer) Register(namespace string, gatherer prometheus.Gatherer) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	for _, existing := range g.namespaces {
		if overlaps(namespace, existing) {
			return fmt.Errorf("%w: %q conflicts with %q", errOverlappingNamespaces, namespace, existing)
		}
	}
	g.namespaces = append(g.namespaces, namespace)
	g.gatherers = append(g.gatherers, gatherer)
	return nil
}

// NewRegistry returns an empty registry whose metrics are reported under
// [namespace].
func (g *Gatherer) NewRegistry(namespace string) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := g.Register(namespace, reg); err != nil {
		return nil, fmt.Errorf("couldn't register %q metrics: %w", namespace, err)
	}
	return reg, nil
}

// Gather returns the families of every registered gatherer sorted by name. A
// failing gatherer does not hide the others, and the families it did return
// are kept.
func (g *Gatherer) Gather() ([]*dto.MetricFamily, error) {
	g.lock.RLock()
	defer g.lock.RUnlock()

	var (
		families []*dto.MetricFamily
		errs     []error
	)
	for i, gatherer := range g.gatherers {
		namespace := g.namespaces[i]
		gathered, err := gatherer.Gather()
		for _, family := range gathered {
			family.Name = proto.String(prometheus.BuildFQName("", namespace, family.GetName()))
		}
		families = append(families, gathered...)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to gather %q metrics: %w", namespace, err))
		}
	}

	slices.SortFunc(families, func(a, b *dto.MetricFamily) int {
		return cmp.Compare(a.GetName(), b.GetName())
	})
	return families, errors.Join(errs...)
}

// overlaps reports whether [a] and [b] are equal or one extends the other
// past a '_' boundary, so "grants" overlaps "grants_http" but not
// "grantsvm".
func overlaps(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	return a == b[:len(a)] &&
		(len(a) == 0 || len(a) == len(b) || b[len(a)] == '_')
}
