// Package telemetry exports debounce decisions as OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/billie-coop/fastclick/internal/debounce"
)

// MeterName is the instrumentation scope used by NewDefaultRecorder.
const MeterName = "github.com/billie-coop/fastclick"

// Recorder counts allowed and suppressed activations. It implements
// debounce.Observer.
type Recorder struct {
	allowed    metric.Int64Counter
	suppressed metric.Int64Counter
}

// NewRecorder creates the counters on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	allowed, err := meter.Int64Counter("fastclick.activations.allowed",
		metric.WithDescription("Activations forwarded to their handler"),
		metric.WithUnit("{activation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create allowed counter: %w", err)
	}

	suppressed, err := meter.Int64Counter("fastclick.activations.suppressed",
		metric.WithDescription("Activations dropped inside a cooldown window"),
		metric.WithUnit("{activation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create suppressed counter: %w", err)
	}

	return &Recorder{allowed: allowed, suppressed: suppressed}, nil
}

// NewDefaultRecorder creates a recorder on the global meter provider.
func NewDefaultRecorder() (*Recorder, error) {
	return NewRecorder(otel.Meter(MeterName))
}

// Observe records a.
func (r *Recorder) Observe(ctx context.Context, a debounce.Activation) {
	attrs := metric.WithAttributes(
		attribute.String("scope", a.Scope),
		attribute.String("identity", a.Identity),
	)
	if a.Allowed {
		r.allowed.Add(ctx, 1, attrs)
		return
	}
	r.suppressed.Add(ctx, 1, attrs)
}

var _ debounce.Observer = (*Recorder)(nil)
