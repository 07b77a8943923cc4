// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"net/http"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Sample - one series of the text exposition
type Sample struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

// Metrics - scrape /metrics and keep the series whose name has the prefix
func (client *Client) Metrics(prefix string) ([]Sample, error) {
	_, data, err := client.call(http.MethodGet, "/metrics", nil, nil)
	if nil != err {
		return nil, err
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(data))
	if nil != err {
		return nil, err
	}
	return Samples(families, prefix), nil
}

// Samples - flatten counters, gauges and untyped series, sorted by name
func Samples(families map[string]*dto.MetricFamily, prefix string) []Sample {
	samples := make([]Sample, 0, len(families))
	for name, family := range families {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, m := range family.GetMetric() {
			var value float64
			switch {
			case nil != m.GetCounter():
				value = m.GetCounter().GetValue()
			case nil != m.GetGauge():
				value = m.GetGauge().GetValue()
			case nil != m.GetUntyped():
				value = m.GetUntyped().GetValue()
			default:
				continue
			}

			var labels map[string]string
			if len(m.GetLabel()) > 0 {
				labels = make(map[string]string, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					labels[l.GetName()] = l.GetValue()
				}
			}
			samples = append(samples, Sample{
				Name:   name,
				Labels: labels,
				Value:  value,
			})
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return labelText(samples[i].Labels) < labelText(samples[j].Labels)
	})
	return samples
}

func labelText(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + labels[k]
	}
	return strings.Join(parts, ",")
}
