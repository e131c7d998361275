package telemetry

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "liftlog-api"

// Scopes a request is served in
const (
	ScopeUser   = "user"
	ScopeDevice = "device"
)

// FiberMiddleware traces every request and counts it per route, status class
// and scope. Auth runs after it, so the span is named and tagged once the
// handler chain has resolved the route and the caller.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)
	propagator := otel.GetTextMapPropagator()
	requests, err := otel.Meter(tracerName).Int64Counter("liftlog.http.requests",
		metric.WithDescription("Handled API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		log.Warnf("request counter disabled: %s", err)
	}

	return func(c *fiber.Ctx) error {
		ctx := propagator.Extract(c.UserContext(), propagation.HeaderCarrier(c.GetReqHeaders()))
		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.url", c.OriginalURL()),
				attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)
		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		scope, namespace := RequestScope(c)
		span.SetName(c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
			attribute.String("liftlog.scope", scope),
			attribute.String("liftlog.cache_namespace", namespace),
		)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= fiber.StatusInternalServerError:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}

		if requests != nil {
			requests.Add(ctx, 1, metric.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.route", route),
				attribute.String("http.status_class", fmt.Sprintf("%dxx", status/100)),
				attribute.String("liftlog.scope", scope),
			))
		}
		return err
	}
}

// RequestScope reports whether the request ran as a signed in user or as an
// anonymous device, together with its cache namespace
func RequestScope(c *fiber.Ctx) (scope, namespace string) {
	ctx := c.UserContext()
	namespace = domain.CacheNamespace(ctx, domain.ContextUser{})
	if _, ok := (domain.ContextUser{}).CurrentUserID(ctx); ok {
		return ScopeUser, namespace
	}
	return ScopeDevice, namespace
}

// AddSpanEvent adds an event to the request span
func AddSpanEvent(c *fiber.Ctx, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(c.UserContext()).AddEvent(name, trace.WithAttributes(attrs...))
}

func SetSpanAttribute(c *fiber.Ctx, key string, value string) {
	trace.SpanFromContext(c.UserContext()).SetAttributes(attribute.String(key, value))
}
