package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that logs every grading call with its
// latency, token usage and cost via slog.
type LoggingProvider struct {
	inner Provider
	log   *slog.Logger
}

// WithLogging wraps a Provider with request logging on the default
// slog logger.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p, log: slog.Default()}
}

// WithLoggingTo wraps a Provider with request logging on a specific logger.
func WithLoggingTo(p Provider, log *slog.Logger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	attrs := []any{
		slog.String("model", l.inner.ModelID()),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
		slog.Int("images", len(req.Images)),
	}

	if resp != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", resp.Usage.InputTokens),
			slog.Int("output_tokens", resp.Usage.OutputTokens),
		)
		if c := LookupCost(resp.Model); c != nil {
			attrs = append(attrs,
				slog.Float64("cost_usd", c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.log.WarnContext(ctx, "grading call failed", attrs...)
		return resp, err
	}

	l.log.DebugContext(ctx, "grading call", attrs...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
