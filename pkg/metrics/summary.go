package metrics

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// WriteSummary prints one line per counter series and a count/sum line per
// histogram series gathered from g. Series with a zero value are skipped.
// It is meant for short-lived processes that exit before any scrape.
func WriteSummary(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				if v := m.GetCounter().GetValue(); v > 0 {
					if _, err := fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels, v); err != nil {
						return err
					}
				}
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				if _, err := fmt.Fprintf(w, "%s%s count=%d sum=%.3fs\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
