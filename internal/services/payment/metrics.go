package payment

import (
	"time"

	"jobpay/internal/logger"

	"github.com/shopspring/decimal"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOutcome(string, Outcome, time.Duration) {}
func (n *NoopMetricsCollector) RecordVolume(string, decimal.Decimal)         {}
func (n *NoopMetricsCollector) RecordError(string, error)                    {}

// LoggingMetricsCollector writes every measurement as a structured log line.
type LoggingMetricsCollector struct {
	log *logger.Logger
}

func NewLoggingMetricsCollector(log *logger.Logger) *LoggingMetricsCollector {
	return &LoggingMetricsCollector{log: log.With("component", "payment_metrics")}
}

func (c *LoggingMetricsCollector) RecordOutcome(operation string, outcome Outcome, duration time.Duration) {
	c.log.Info("payment operation finished",
		"operation", operation,
		"outcome", outcome.String(),
		"duration_ms", duration.Milliseconds())
}

func (c *LoggingMetricsCollector) RecordVolume(operation string, amount decimal.Decimal) {
	c.log.Info("payment volume", "operation", operation, "amount", amount.StringFixed(2))
}

func (c *LoggingMetricsCollector) RecordError(operation string, err error) {
	c.log.Error("payment operation error", "operation", operation, "error", err)
}
