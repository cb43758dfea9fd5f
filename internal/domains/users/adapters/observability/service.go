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

	userdomain "github.com/Apurer/go-gin-places-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-places-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-places-api/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-places-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) ListAll(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListAll")
	defer span.End()
	users, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users, nil
}

func (s *Service) Signup(ctx context.Context, input userports.SignupInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Signup")
	defer span.End()
	user, err := s.inner.Signup(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "signup failed")
	}
	span.SetAttributes(attribute.String("user.id", user.ID))
	s.metrics.recordSignup(ctx)
	s.logInfo(ctx, "user signed up", slog.String("user_id", user.ID))
	return user, nil
}

func (s *Service) Login(ctx context.Context, input userports.LoginInput) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	if err := s.inner.Login(ctx, input); err != nil {
		if apierrors.KindOf(err) == apierrors.KindUnauthorized {
			s.metrics.recordRejectedLogin(ctx)
		}
		return s.handleError(ctx, span, err, "login failed")
	}
	s.metrics.recordLogin(ctx)
	return nil
}

// handleError records err on the span. Client-side failures log at Info,
// everything else at Error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	kind := apierrors.KindOf(err)
	if span != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.kind", kind.String()))
		if kind == apierrors.KindInternal {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	attrs = append(attrs, slog.String("error_kind", kind.String()))
	if kind != apierrors.KindInternal {
		s.logInfo(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
		return err
	}
	s.logError(ctx, msg, err, attrs...)
	return err
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

type serviceMetrics struct {
	signups        metric.Int64Counter
	logins         metric.Int64Counter
	rejectedLogins metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	signups, _ := m.Int64Counter("users.service.signups", metric.WithDescription("Number of accounts created"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	rejected, _ := m.Int64Counter("users.service.logins_rejected", metric.WithDescription("Number of logins rejected for bad credentials"))
	return serviceMetrics{signups: signups, logins: logins, rejectedLogins: rejected}
}

func (m serviceMetrics) recordSignup(ctx context.Context) {
	if m.signups != nil {
		m.signups.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejectedLogin(ctx context.Context) {
	if m.rejectedLogins != nil {
		m.rejectedLogins.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
