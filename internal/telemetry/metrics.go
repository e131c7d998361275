package telemetry

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const storeMeterName = "liftlog-store"

// Sources a read falls back to when the remote store fails
const (
	SourceCache = "cache"
	SourceSeed  = "seed"
)

// StoreMetrics counts the data access layer's degraded paths. None of them
// surface as errors to the caller, so the counters are the only trace they leave.
type StoreMetrics struct {
	fallbacks      metric.Int64Counter
	mirrorFailures metric.Int64Counter
	corruptPurges  metric.Int64Counter
	populates      metric.Int64Counter
}

func NewStoreMetrics(provider metric.MeterProvider) (*StoreMetrics, error) {
	meter := provider.Meter(storeMeterName)

	fallbacks, err := meter.Int64Counter("liftlog.store.fallbacks",
		metric.WithDescription("Reads served from the local cache or the seed after a remote failure"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, fmt.Errorf("fallbacks counter: %w", err)
	}
	mirrorFailures, err := meter.Int64Counter("liftlog.store.mirror_failures",
		metric.WithDescription("Background remote writes that failed and were dropped"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, fmt.Errorf("mirror failures counter: %w", err)
	}
	corruptPurges, err := meter.Int64Counter("liftlog.store.corrupt_purges",
		metric.WithDescription("Cache entries that failed to decode and were deleted"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("corrupt purges counter: %w", err)
	}
	populates, err := meter.Int64Counter("liftlog.store.populates",
		metric.WithDescription("Default exercise library populations for users without exercises"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("populates counter: %w", err)
	}

	return &StoreMetrics{
		fallbacks:      fallbacks,
		mirrorFailures: mirrorFailures,
		corruptPurges:  corruptPurges,
		populates:      populates,
	}, nil
}

// DefaultStoreMetrics reports through the global meter provider, which is a
// no-op until Initialize installs the OTLP one
func DefaultStoreMetrics() *StoreMetrics {
	m, err := NewStoreMetrics(otel.GetMeterProvider())
	if err != nil {
		log.Warnf("store metrics disabled: %s", err)
		m, _ = NewStoreMetrics(noop.NewMeterProvider())
	}
	return m
}

func (m *StoreMetrics) Fallback(ctx context.Context, entity, source string) {
	m.fallbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("source", source),
	))
}

func (m *StoreMetrics) MirrorFailure(ctx context.Context, entity, op string) {
	m.mirrorFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("op", op),
	))
}

func (m *StoreMetrics) CorruptPurge(ctx context.Context, entity string) {
	m.corruptPurges.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}

func (m *StoreMetrics) Populate(ctx context.Context, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.populates.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
