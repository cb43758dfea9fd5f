package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	placetypes "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-places-api/internal/domains/places/adapters/observability/service"

// Service decorates a places application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) GetByID(ctx context.Context, input placetypes.PlaceIdentifier) (*placetypes.PlaceProjection, error) {
	ctx, span := s.startSpan(ctx, "PlaceService.GetByID", attribute.String("place.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get place", slog.String("place.id", input.ID))
	}
	return result, nil
}

func (s *Service) GetByUser(ctx context.Context, input placetypes.UserIdentifier) ([]*placetypes.PlaceProjection, error) {
	ctx, span := s.startSpan(ctx, "PlaceService.GetByUser", attribute.String("user.id", input.UserID))
	defer span.End()

	result, err := s.inner.GetByUser(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list places for user", slog.String("user.id", input.UserID))
	}
	span.SetAttributes(attribute.Int("place.count", len(result)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input placetypes.CreatePlaceInput) (*placetypes.PlaceProjection, error) {
	ctx, span := s.startSpan(ctx, "PlaceService.Create", attribute.String("user.id", input.CreatorID))
	defer span.End()

	s.logInfo(ctx, "creating place", slog.String("user.id", input.CreatorID))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		s.metrics.recordFailed(ctx, "create", err)
		return nil, s.handleError(ctx, span, err, "failed to create place", slog.String("user.id", input.CreatorID))
	}
	span.SetAttributes(attribute.String("place.id", result.Entity.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "place created", slog.String("place.id", result.Entity.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, input placetypes.UpdatePlaceInput) error {
	ctx, span := s.startSpan(ctx, "PlaceService.Update", attribute.String("place.id", input.ID))
	defer span.End()

	if err := s.inner.Update(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to update place", slog.String("place.id", input.ID))
	}
	s.metrics.recordUpdated(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, input placetypes.PlaceIdentifier) error {
	ctx, span := s.startSpan(ctx, "PlaceService.Delete", attribute.String("place.id", input.ID))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		s.metrics.recordFailed(ctx, "delete", err)
		return s.handleError(ctx, span, err, "failed to delete place", slog.String("place.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "place deleted", slog.String("place.id", input.ID))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// handleError keeps the underlying cause in the log; clients only ever see
// the typed message. Only internal failures mark the span as errored.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	kind := apierrors.KindOf(err)
	attrs = append(attrs, slog.String("error.kind", kind.String()))
	if span != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.kind", kind.String()))
		if kind == apierrors.KindInternal {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	if kind != apierrors.KindInternal {
		s.logInfo(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
		return err
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	placesCreated metric.Int64Counter
	placesUpdated metric.Int64Counter
	placesDeleted metric.Int64Counter
	placesFailed  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placesCreated, _ := m.Int64Counter("places.service.created", metric.WithDescription("Number of places created"))
	placesUpdated, _ := m.Int64Counter("places.service.updated", metric.WithDescription("Number of places updated"))
	placesDeleted, _ := m.Int64Counter("places.service.deleted", metric.WithDescription("Number of places deleted"))
	placesFailed, _ := m.Int64Counter("places.service.failed", metric.WithDescription("Number of failed place mutations"))
	return serviceMetrics{
		placesCreated: placesCreated,
		placesUpdated: placesUpdated,
		placesDeleted: placesDeleted,
		placesFailed:  placesFailed,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.placesCreated, 1)
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	addCounter(ctx, m.placesUpdated, 1)
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.placesDeleted, 1)
}

func (m serviceMetrics) recordFailed(ctx context.Context, operation string, err error) {
	addCounter(ctx, m.placesFailed, 1,
		attribute.String("operation", operation),
		attribute.String("error.kind", apierrors.KindOf(err).String()),
	)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
