package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultRangeDays is the window the dashboard opens with and the warmup
// job precomputes.
const DefaultRangeDays = 30

// SummaryRequest selects the dashboard date range.
type SummaryRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// Service computes and caches dashboard summaries.
type Service struct {
	repo     Repository
	cache    *redis.Client
	ttl      time.Duration
	printer  *message.Printer
	validate *validator.Validate
}

// NewService constructs the insights Service. Summaries are cached in Redis
// for ttl; a zero ttl disables caching.
func NewService(repo Repository, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		printer:  message.NewPrinter(language.English),
		validate: validator.New(),
	}
}

// Summary returns the dashboard numbers for a date range, from cache when
// fresh enough.
func (s *Service) Summary(ctx context.Context, req SummaryRequest) (*Summary, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate summary range: %w", err)
	}

	key := summaryKey(req.From, req.To)
	if s.cache != nil && s.ttl > 0 {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached Summary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("summary cache get: %w", err)
		}
	}

	summary, err := s.compute(ctx, req.From, req.To)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if data, err := json.Marshal(summary); err == nil {
			// Serving slightly stale numbers beats failing the dashboard;
			// a cache write error is not propagated.
			_ = s.cache.Set(ctx, key, data, s.ttl).Err()
		}
	}
	return summary, nil
}

// Warm precomputes the default dashboard range. The worker runs this
// periodically so the first dashboard view of the day is served from cache.
func (s *Service) Warm(ctx context.Context) error {
	from, to := DefaultRange(time.Now())
	_, err := s.Summary(ctx, SummaryRequest{From: from, To: to})
	return err
}

// DefaultRange returns the trailing window ending at now's date.
func DefaultRange(now time.Time) (from, to string) {
	to = now.Format("2006-01-02")
	from = now.AddDate(0, 0, -DefaultRangeDays).Format("2006-01-02")
	return from, to
}

func (s *Service) compute(ctx context.Context, from, to string) (*Summary, error) {
	sales, err := s.repo.SalesTotal(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("compute summary: %w", err)
	}
	orderCounts, err := s.repo.OrderStatusCounts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("compute summary: %w", err)
	}
	apptCounts, err := s.repo.AppointmentStatusCounts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("compute summary: %w", err)
	}

	total := decimal.NewFromFloat(sales)
	return &Summary{
		From:              from,
		To:                to,
		TotalSales:        total.StringFixed(2),
		TotalSalesDisplay: s.printer.Sprintf("RM %.2f", sales),
		OrderStatus:       orderCounts,
		AppointmentStatus: apptCounts,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

func summaryKey(from, to string) string {
	return "insights:summary:" + from + ":" + to
}
