package usecases

//go:generate mockgen -source=./stats_service.go -destination=../../../test/unit/doubles/stats/usecases/stats_service_mock.go -package=usecases -mock_names=StatsService=MockStatsService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"foodops-server/internal/infra/cache"
	statsdomain "foodops-server/internal/stats/domain"
)

const _statsCacheTTL = 5 * time.Minute

var ErrInvalidMonth = errors.New("month must be between 0 and 12")

// StatsTableRow is one displayed row: a month or a date, with converted
// display values per donor column.
type StatsTableRow struct {
	Label  string
	Values map[string]string
	Total  string
}

// IncomingStats is the fully shaped incoming-weights table for one
// month/year/unit selection.
type IncomingStats struct {
	Mode       statsdomain.TableMode
	Unit       string
	Donors     []string
	TableData  []StatsTableRow
	Totals     map[string]string
	RowTotals  []string
	GrandTotal string
}

type StatsService interface {
	GetIncomingStats(ctx context.Context, month, year int, unitName string) (IncomingStats, error)
	RefreshStats(ctx context.Context) error
	StatsInvalidator
}

func NewStatsService(
	donationRepository DonationRepository,
	categoryRepository CategoryRepository,
	tableCache cache.Cache,
) *SimpleStatsService {
	return &SimpleStatsService{
		donationRepository: donationRepository,
		categoryRepository: categoryRepository,
		tableCache:         tableCache,
	}
}

var _ StatsService = (*SimpleStatsService)(nil)

type SimpleStatsService struct {
	donationRepository DonationRepository
	categoryRepository CategoryRepository
	tableCache         cache.Cache

	// version is folded into every cache key, so bumping it makes all
	// cached tables unreachable at once. Stale entries age out by TTL.
	version atomic.Int64
}

func (s *SimpleStatsService) GetIncomingStats(ctx context.Context, month, year int, unitName string) (IncomingStats, error) {
	if month < 0 || month > 12 {
		return IncomingStats{}, ErrInvalidMonth
	}
	if year == 0 {
		year = time.Now().Year()
	}

	unit, err := s.resolveUnit(ctx, unitName)
	if err != nil {
		return IncomingStats{}, err
	}

	key := fmt.Sprintf("incoming-stats:v%d:%d:%d:%s", s.version.Load(), year, month, unit.Label)
	value, err := s.tableCache.GetOrSet(ctx, key, _statsCacheTTL, func() (any, error) {
		return s.compute(ctx, month, year, unit)
	})
	if err != nil {
		return IncomingStats{}, err
	}

	stats, ok := value.(IncomingStats)
	if !ok {
		// entries read back from a shared cache backend lose their
		// concrete type; recompute rather than fail the request
		return s.compute(ctx, month, year, unit)
	}
	return stats, nil
}

// RefreshStats drops every cached table and recomputes the current-year
// overview so the first dashboard hit after a refresh stays cheap.
func (s *SimpleStatsService) RefreshStats(ctx context.Context) error {
	s.InvalidateStats(ctx)
	_, err := s.GetIncomingStats(ctx, statsdomain.AllMonths, time.Now().Year(), "")
	if err != nil {
		return fmt.Errorf("recomputing incoming stats: %w", err)
	}
	return nil
}

func (s *SimpleStatsService) InvalidateStats(ctx context.Context) {
	s.version.Add(1)
	slog.Debug("stats cache invalidated")
}

func (s *SimpleStatsService) compute(ctx context.Context, month, year int, unit statsdomain.Unit) (IncomingStats, error) {
	donations, err := s.donationRepository.FindAllByPeriod(ctx, year, time.Month(month))
	if err != nil {
		slog.Error("fetching donations for stats", slog.String("error", err.Error()))
		return IncomingStats{}, fmt.Errorf("fetching donations: %w", err)
	}

	rows := make([]statsdomain.StatRow, 0, len(donations))
	for _, donation := range donations {
		rows = append(rows, donation.StatRow())
	}
	donors := distinctKeys(rows)

	result := IncomingStats{
		Mode:   statsdomain.ModeForMonth(month),
		Unit:   unit.Label,
		Donors: donors,
	}

	var rowValues []statsdomain.RowValues
	switch result.Mode {
	case statsdomain.TableModePerMonth:
		for _, monthRow := range statsdomain.AggregateByMonth(rows, donors) {
			result.TableData = append(result.TableData, StatsTableRow{
				Label:  monthRow.Label,
				Values: convertRow(monthRow.Values, donors, unit),
				Total:  statsdomain.ConvertWeight(monthRow.TotalKg, unit),
			})
			rowValues = append(rowValues, monthRow.Values)
		}
	default:
		for _, dateRow := range statsdomain.GroupByDate(rows, donors) {
			result.TableData = append(result.TableData, StatsTableRow{
				Label:  dateRow.Date.String(),
				Values: convertRow(dateRow.Values, donors, unit),
				Total:  statsdomain.ConvertWeight(dateRow.TotalKg, unit),
			})
			rowValues = append(rowValues, dateRow.Values)
		}
	}

	for _, row := range result.TableData {
		result.RowTotals = append(result.RowTotals, row.Total)
	}
	result.Totals = statsdomain.BuildColumnTotals(rowValues, donors, unit)
	result.GrandTotal = statsdomain.GrandTotal(rowValues, donors, unit)

	return result, nil
}

// resolveUnit maps a query-level unit name onto a display unit: built-ins
// first, then weighing categories by name. An unknown name falls back to
// kilograms instead of failing the whole table.
func (s *SimpleStatsService) resolveUnit(ctx context.Context, name string) (statsdomain.Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "kg", "kilograms":
		return statsdomain.UnitKilograms, nil
	case "lb", "lbs", "pounds":
		return statsdomain.UnitPounds, nil
	}

	category, err := s.categoryRepository.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			slog.Warn("unknown display unit, using kilograms", slog.String("unit", name))
			return statsdomain.UnitKilograms, nil
		}
		return statsdomain.Unit{}, fmt.Errorf("resolving display unit: %w", err)
	}
	return category.Unit(), nil
}

func convertRow(values statsdomain.RowValues, keys []string, unit statsdomain.Unit) map[string]string {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		result[key] = statsdomain.ConvertWeight(values[key], unit)
	}
	return result
}

func distinctKeys(rows []statsdomain.StatRow) []string {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, row := range rows {
		if !seen[row.EntityKey] {
			seen[row.EntityKey] = true
			keys = append(keys, row.EntityKey)
		}
	}
	sort.Strings(keys)
	return keys
}
