// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/tokenfarm/log"
)

const namespace = "tokenfarm"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the backend to prometheus. Later calls keep the
// registry already in place.
func InitializePrometheusMetrics() {
	if _, ok := backend.(*promProvider); !ok {
		backend = newPromProvider()
	}
}

type meterKind int

const (
	kindCounter meterKind = iota
	kindCounterVec
	kindHistogramVec
)

type meterKey struct {
	kind meterKind
	name string
}

type promProvider struct {
	registry *prometheus.Registry

	lock   sync.Mutex
	meters map[meterKey]any
}

func newPromProvider() *promProvider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	return &promProvider{
		registry: reg,
		meters:   make(map[meterKey]any),
	}
}

// meter returns the meter registered under key, creating it with build on first request.
func (p *promProvider) meter(key meterKey, build func() (prometheus.Collector, any)) any {
	p.lock.Lock()
	defer p.lock.Unlock()

	if m, ok := p.meters[key]; ok {
		return m
	}
	collector, m := build()
	if err := p.registry.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", key.name, "err", err)
	}
	p.meters[key] = m
	return m
}

func (p *promProvider) counter(name string) CountMeter {
	return p.meter(meterKey{kindCounter, name}, func() (prometheus.Collector, any) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, promCounter{c}
	}).(CountMeter)
}

func (p *promProvider) counterVec(name string, labels []string) CountVecMeter {
	return p.meter(meterKey{kindCounterVec, name}, func() (prometheus.Collector, any) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return c, promCounterVec{c}
	}).(CountVecMeter)
}

func (p *promProvider) histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return p.meter(meterKey{kindHistogramVec, name}, func() (prometheus.Collector, any) {
		bounds := make([]float64, 0, len(buckets))
		for _, b := range buckets {
			bounds = append(bounds, float64(b))
		}
		h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   bounds,
		}, labels)
		return h, promHistogramVec{h}
	}).(HistogramVecMeter)
}

func (p *promProvider) handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{ErrorLog: promErrorLog{}})
}

// promErrorLog routes promhttp failures into the package logger.
type promErrorLog struct{}

func (promErrorLog) Println(v ...any) {
	logger.Warn("metrics handler error", "err", v)
}

type promCounter struct{ c prometheus.Counter }

func (m promCounter) Add(i int64) { m.c.Add(float64(i)) }

type promCounterVec struct{ c *prometheus.CounterVec }

func (m promCounterVec) AddWithLabel(i int64, labels map[string]string) {
	m.c.With(labels).Add(float64(i))
}

type promHistogramVec struct{ h *prometheus.HistogramVec }

func (m promHistogramVec) ObserveWithLabels(i int64, labels map[string]string) {
	m.h.With(labels).Observe(float64(i))
}
