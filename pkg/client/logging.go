package client

import (
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/walletsync/pkg/logging"
)

// newClientLogger picks the logger used when the caller supplies none.
// Quiet mode returns a production logger at Warn+ without caller or stack
// noise; otherwise the colored console logger is used.
func newClientLogger(quiet bool) (*logging.ColoredLogger, error) {
	if !quiet {
		return logging.NewColoredLogger(true)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logging.Wrap(logger), nil
}
