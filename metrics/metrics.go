// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a process wide meter registry. Meters are no-ops until
// InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

var backend provider = noopProvider{}

type provider interface {
	counter(name string) CountMeter
	counterVec(name string, labels []string) CountVecMeter
	histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter
	handler() http.Handler
}

// BucketHTTPReqs are duration buckets in milliseconds, shared by request and execution timers.
var BucketHTTPReqs = []int64{
	0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
	150, 200, 300, 400, 500, 750, 1000,
	1500, 2000, 3000, 4000, 5000, 10000,
}

// CountMeter only goes up.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a CountMeter partitioned by labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// HistogramVecMeter buckets observations, partitioned by labels.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// HTTPHandler serves the registry in the prometheus text format, or nil when metrics are off.
func HTTPHandler() http.Handler { return backend.handler() }

func Counter(name string) CountMeter { return backend.counter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return backend.counterVec(name, labels)
}

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return backend.histogramVec(name, labels, buckets)
}

// lazyLoad resolves a meter on first use, so package level meters can be declared
// before the backend is chosen.
func lazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadCounter(name string) func() CountMeter {
	return lazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return lazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return lazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}
