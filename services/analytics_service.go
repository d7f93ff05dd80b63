package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cms-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dashboardRecentLimit = 1000
	dashboardDays        = 7
	dashboardTopN        = 5
	defaultLogPageSize   = 20
)

type Visit struct {
	Page      string
	Referrer  string
	Country   string
	City      string
	UserAgent string
}

type LogQuery struct {
	Page       int
	PageSize   int
	Country    string
	DeviceType string
	Search     string
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalFetched  int          `json:"total_fetched"`
	TotalVisitors int64        `json:"total_visitors"`
	Daily         []DayCount   `json:"daily"`
	Countries     []NamedCount `json:"countries"`
	MobilePct     float64      `json:"mobile_pct"`
	DesktopPct    float64      `json:"desktop_pct"`
	TopBrowsers   []NamedCount `json:"top_browsers"`
	TopOS         []NamedCount `json:"top_os"`
}

type Dashboard struct {
	Summary  Summary             `json:"summary"`
	Logs     []models.VisitorLog `json:"logs"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// RecordVisit stores one page view and bumps the site-wide counter.
func (s *AnalyticsService) RecordVisit(ctx context.Context, v Visit) (*models.VisitorLog, error) {
	ua := ParseUserAgent(v.UserAgent)
	entry := &models.VisitorLog{
		Page:       truncate(strings.TrimSpace(v.Page), 512),
		Referrer:   truncate(strings.TrimSpace(v.Referrer), 512),
		Country:    truncate(strings.TrimSpace(v.Country), 80),
		City:       truncate(strings.TrimSpace(v.City), 120),
		Browser:    ua.Browser,
		OS:         ua.OS,
		DeviceType: ua.DeviceType,
		UserAgent:  v.UserAgent,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.SiteSetting{}).
			Where("id <> ?", models.ZeroID).
			UpdateColumn("visitor_count", gorm.Expr("visitor_count + ?", 1)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}
	return entry, nil
}

func (s *AnalyticsService) logScope(q LogQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if c := strings.TrimSpace(q.Country); c != "" {
			tx = tx.Where("country = ?", c)
		}
		if d := strings.TrimSpace(q.DeviceType); d != "" {
			tx = tx.Where("device_type = ?", strings.ToLower(d))
		}
		if term := strings.TrimSpace(q.Search); term != "" {
			like := "%" + strings.ToLower(term) + "%"
			tx = tx.Where("LOWER(page) LIKE ? OR LOWER(referrer) LIKE ? OR LOWER(city) LIKE ?", like, like, like)
		}
		return tx
	}
}

// Dashboard loads the recent window and the requested page concurrently and
// summarizes the recent window.
func (s *AnalyticsService) Dashboard(ctx context.Context, q LogQuery) (*Dashboard, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultLogPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	var (
		recent   []models.VisitorLog
		logs     []models.VisitorLog
		total    int64
		settings models.SiteSetting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("created_at DESC").Limit(dashboardRecentLimit).Find(&recent).Error
	})
	g.Go(func() error {
		scope := s.logScope(q)
		if err := s.db.WithContext(gctx).Model(&models.VisitorLog{}).Scopes(scope).Count(&total).Error; err != nil {
			return err
		}
		return s.db.WithContext(gctx).Scopes(scope).Order("created_at DESC").
			Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize).Find(&logs).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Limit(1).Find(&settings).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	summary := Summarize(recent, s.now(), dashboardTopN)
	summary.TotalVisitors = settings.VisitorCount
	if logs == nil {
		logs = []models.VisitorLog{}
	}

	return &Dashboard{Summary: summary, Logs: logs, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

// ClearHistory deletes every visitor log and resets the visitor counter.
func (s *AnalyticsService) ClearHistory(ctx context.Context) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := ClearTable(tx, &models.VisitorLog{})
		if err != nil {
			return err
		}
		removed = n
		return tx.Model(&models.SiteSetting{}).
			Where("id <> ?", models.ZeroID).
			UpdateColumn("visitor_count", 0).Error
	})
	if err != nil {
		return 0, fmt.Errorf("clear visitor history: %w", err)
	}
	return removed, nil
}

// Summarize aggregates rows already in memory. Daily holds the last seven
// calendar days (UTC, oldest first, zero-filled); rows outside that window
// only count toward the other histograms.
func Summarize(rows []models.VisitorLog, now time.Time, topN int) Summary {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(dashboardDays - 1))
	end := today.AddDate(0, 0, 1)

	perDay := make(map[string]int, dashboardDays)
	countries := map[string]int{}
	browsers := map[string]int{}
	systems := map[string]int{}
	mobile := 0

	for _, row := range rows {
		created := row.CreatedAt.UTC()
		if !created.Before(start) && created.Before(end) {
			perDay[created.Format("2006-01-02")]++
		}
		countries[labelOr(row.Country, "Unknown")]++
		browsers[labelOr(row.Browser, "Other")]++
		systems[labelOr(row.OS, "Other")]++
		if isMobileDevice(row.DeviceType) {
			mobile++
		}
	}

	daily := make([]DayCount, 0, dashboardDays)
	for i := 0; i < dashboardDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		daily = append(daily, DayCount{Date: day, Count: perDay[day]})
	}

	summary := Summary{
		TotalFetched: len(rows),
		Daily:        daily,
		Countries:    rank(countries, 0),
		TopBrowsers:  rank(browsers, topN),
		TopOS:        rank(systems, topN),
	}
	if len(rows) > 0 {
		hundred := decimal.NewFromInt(100)
		pct := decimal.NewFromInt(int64(mobile)).Mul(hundred).Div(decimal.NewFromInt(int64(len(rows)))).Round(1)
		summary.MobilePct = pct.InexactFloat64()
		summary.DesktopPct = hundred.Sub(pct).InexactFloat64()
	}
	return summary
}

func isMobileDevice(deviceType string) bool {
	switch strings.ToLower(deviceType) {
	case "mobile", "tablet":
		return true
	default:
		return false
	}
}

func labelOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}

// rank sorts counts descending (ties by name) and keeps the first n; n <= 0 keeps all.
func rank(counts map[string]int, n int) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NamedCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// truncate keeps at most max characters of s.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
