package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Value reads the current value of a fully qualified metric from g.
// Counters and gauges report their value, histograms their sample count.
// Every label in labels must match; extra labels on the series are ignored.
func Value(g prometheus.Gatherer, name string, labels map[string]string) (float64, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, fmt.Errorf("gather: %w", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !labelsMatch(m.GetLabel(), labels) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue(), nil
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue(), nil
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount()), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s %v", ErrMetricNotFound, name, labels)
}

type labelPair interface {
	GetName() string
	GetValue() string
}

func labelsMatch[L labelPair](pairs []L, want map[string]string) bool {
	matched := 0
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; ok {
			if v != p.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}
