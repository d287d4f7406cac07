package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// dumpMetrics writes the registry in the Prometheus text format to path, or
// to fallback (stderr when nil) if path is empty. walletctl exits right
// after a command, so there is no scrape endpoint.
func dumpMetrics(reg prometheus.Gatherer, path string, fallback io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	out := fallback
	if out == nil {
		out = os.Stderr
	}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create metrics file %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
