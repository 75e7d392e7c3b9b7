package services

import (
	"math"
	"sort"
	"time"

	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// StageAverage is the mean time orders spent in one status.
type StageAverage struct {
	Status         order.Status
	AverageMinutes float64
	Samples        int
}

// PipelineStatistics is a dashboard snapshot of a set of orders.
type PipelineStatistics struct {
	Total                    int
	CountsByStatus           map[order.Status]int
	TodayOrders              int
	TodayCompleted           int
	TodayRevenue             decimal.Decimal
	AverageProcessingMinutes float64
	Bottlenecks              []StageAverage
	OverdueCount             int
}

// LifecycleAnalytics derives time signals from the status ledger. It never
// mutates the orders it is given; now is fixed at construction so one request
// sees one clock.
//
// Example usage:
//
//	analytics := services.NewLifecycleAnalytics(time.Now())
//	ranked := analytics.SortByUrgency(orders)
//	stats := analytics.PipelineStatistics(orders)
type LifecycleAnalytics struct {
	now time.Time
}

// NewLifecycleAnalytics returns analytics evaluated at now.
func NewLifecycleAnalytics(now time.Time) LifecycleAnalytics {
	return LifecycleAnalytics{now: now}
}

// DwellTime returns minutes since the last ledger entry.
func (a LifecycleAnalytics) DwellTime(o *order.Order) float64 {
	return minutes(a.now.Sub(o.LastEntry().Timestamp()))
}

// TotalProcessingTime returns minutes from creation to actual completion, or 0
// when the order is not completed.
func (a LifecycleAnalytics) TotalProcessingTime(o *order.Order) float64 {
	done := o.ActualCompletion()
	if done == nil {
		return 0
	}
	return minutes(done.Sub(o.CreatedAt()))
}

// AverageTimePerStage returns, for every status, the mean minutes between
// entering it and entering the next one. Statuses no order has left map to 0.
func (a LifecycleAnalytics) AverageTimePerStage(orders []*order.Order) map[order.Status]float64 {
	out := make(map[order.Status]float64, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		out[s] = 0
	}
	for _, avg := range stageAverages(orders) {
		out[avg.Status] = avg.AverageMinutes
	}
	return out
}

// Bottlenecks returns the topN statuses with the highest average dwell,
// longest first. Statuses without samples are left out; equal averages keep
// lifecycle order.
func (a LifecycleAnalytics) Bottlenecks(orders []*order.Order, topN int) []StageAverage {
	if topN <= 0 {
		return nil
	}
	avgs := stageAverages(orders)
	sort.SliceStable(avgs, func(i, j int) bool {
		return avgs[i].AverageMinutes > avgs[j].AverageMinutes
	})
	if len(avgs) > topN {
		avgs = avgs[:topN]
	}
	return avgs
}

// IsOverdue reports whether the due time has passed without completion.
func (a LifecycleAnalytics) IsOverdue(o *order.Order) bool {
	return o.ActualCompletion() == nil && a.now.After(o.EstimatedCompletion())
}

// UrgencyScore ranks an order 0..100 by closeness to its due time. It is 100
// once due and decreases as the due time recedes.
func (a LifecycleAnalytics) UrgencyScore(o *order.Order) int {
	return urgency(o.EstimatedCompletion().Sub(a.now).Hours())
}

// SortByUrgency returns a new slice ordered by descending urgency. Orders with
// equal scores keep their input order.
func (a LifecycleAnalytics) SortByUrgency(orders []*order.Order) []*order.Order {
	scores := make(map[*order.Order]int, len(orders))
	for _, o := range orders {
		scores[o] = a.UrgencyScore(o)
	}
	sorted := append([]*order.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scores[sorted[i]] > scores[sorted[j]]
	})
	return sorted
}

// PipelineStatistics aggregates orders into one snapshot. "Today" is the
// calendar day of now in now's location.
func (a LifecycleAnalytics) PipelineStatistics(orders []*order.Order) PipelineStatistics {
	stats := PipelineStatistics{
		Total:          len(orders),
		CountsByStatus: make(map[order.Status]int),
		TodayRevenue:   decimal.Zero,
		Bottlenecks:    a.Bottlenecks(orders, 3),
	}

	var (
		processingSum float64
		completed     int
	)
	for _, o := range orders {
		stats.CountsByStatus[o.Status()]++

		if sameDay(o.CreatedAt(), a.now) {
			stats.TodayOrders++
			stats.TodayRevenue = stats.TodayRevenue.Add(o.TotalAmount())
		}
		if done := o.ActualCompletion(); done != nil {
			completed++
			processingSum += a.TotalProcessingTime(o)
			if sameDay(*done, a.now) {
				stats.TodayCompleted++
			}
		}
		if a.IsOverdue(o) {
			stats.OverdueCount++
		}
	}
	if completed > 0 {
		stats.AverageProcessingMinutes = processingSum / float64(completed)
	}

	return stats
}

func urgency(hoursUntilDue float64) int {
	var score float64
	switch {
	case hoursUntilDue <= 0:
		return 100
	case hoursUntilDue <= 6:
		score = 80 + (6-hoursUntilDue)*3
	case hoursUntilDue <= 24:
		score = 50 + (24-hoursUntilDue)*1.25
	default:
		score = 50 - hoursUntilDue
	}
	return int(math.Max(0, math.Min(100, math.Round(score))))
}

// stageAverages returns averages for statuses with at least one sample, in
// lifecycle order.
func stageAverages(orders []*order.Order) []StageAverage {
	sums := make(map[order.Status]time.Duration)
	counts := make(map[order.Status]int)
	for _, o := range orders {
		history := o.History()
		for i := 1; i < len(history); i++ {
			from := history[i-1]
			sums[from.Status()] += history[i].Timestamp().Sub(from.Timestamp())
			counts[from.Status()]++
		}
	}

	var out []StageAverage
	for _, s := range order.AllStatuses() {
		if counts[s] == 0 {
			continue
		}
		out = append(out, StageAverage{
			Status:         s,
			AverageMinutes: minutes(sums[s]) / float64(counts[s]),
			Samples:        counts[s],
		})
	}
	return out
}

func minutes(d time.Duration) float64 {
	return d.Minutes()
}

func sameDay(t, now time.Time) bool {
	t = t.In(now.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
