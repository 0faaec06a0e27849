package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"invoicecheck/internal/logger"
	"invoicecheck/internal/port"
)

// provider is one analyzer in the chain plus its rate-limit backoff.
type provider struct {
	name     string
	analyzer port.InvoiceAnalyzer

	mu           sync.RWMutex
	blockedUntil time.Time
}

func (p *provider) blocked(now time.Time) (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.blockedUntil, now.Before(p.blockedUntil)
}

func (p *provider) backOff(until time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if until.After(p.blockedUntil) {
		p.blockedUntil = until
	}
}

// FallbackAnalyzer tries analyzers in order. A provider that answered with a
// rate limit is skipped until its Retry-After has elapsed.
type FallbackAnalyzer struct {
	providers []*provider
	now       func() time.Time
}

// NewFallbackAnalyzer builds a chain from analyzers and their provider names,
// which must have the same length.
func NewFallbackAnalyzer(analyzers []port.InvoiceAnalyzer, names []string) *FallbackAnalyzer {
	providers := make([]*provider, len(analyzers))
	for i, a := range analyzers {
		providers[i] = &provider{name: names[i], analyzer: a}
	}
	return &FallbackAnalyzer{providers: providers, now: time.Now}
}

func (f *FallbackAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	log := logger.Named("analyzer.fallback").With(
		zap.String("invoice_type", string(input.InvoiceType)),
		zap.String("language", string(input.Language)),
	)
	now := f.now()

	var (
		failure   error
		limited   []string
		nextRetry time.Time
	)
	noteLimited := func(name string, until time.Time) {
		limited = append(limited, name)
		if nextRetry.IsZero() || until.Before(nextRetry) {
			nextRetry = until
		}
	}

	for _, p := range f.providers {
		if until, ok := p.blocked(now); ok {
			log.Info("skipping rate-limited analyzer", zap.String("provider", p.name), zap.Time("blocked_until", until))
			noteLimited(p.name, until)
			continue
		}

		out, err := p.analyzer.Analyze(ctx, input)
		if err == nil {
			if len(limited) > 0 || failure != nil {
				log.Info("analyzer fallback succeeded", zap.String("provider", p.name))
			}
			return out, nil
		}
		log.Warn("analyzer failed", zap.String("provider", p.name), zap.Error(err))

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			until := now.Add(rlErr.RetryAfter)
			p.backOff(until)
			noteLimited(p.name, until)
			continue
		}
		failure = err
	}

	if failure != nil {
		return nil, fmt.Errorf("all analyzers failed for %s invoice: %w", input.InvoiceType, failure)
	}

	wait := int(math.Ceil(nextRetry.Sub(now).Seconds()))
	if wait < 1 {
		wait = 1
	}
	return nil, NewRateLimitError(strings.Join(limited, "+"),
		fmt.Errorf("%d of %d analyzers rate limited", len(limited), len(f.providers)), wait)
}
