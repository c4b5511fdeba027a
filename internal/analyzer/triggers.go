package analyzer

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/painwatch/internal/health"
)

// Caps on how many items each trigger report category keeps.
const (
	topTriggers   = 10
	topActivities = 10
	topHours      = 5
	topDays       = 7
)

// DetectRecurrentTriggers tallies triggers, activities, hours of day, and
// days of week across records, keeping only items seen at least
// minOccurrences times. Each list is sorted by count descending.
func DetectRecurrentTriggers(records []health.PainRecord, minOccurrences int) TriggerReport {
	if minOccurrences < 1 {
		minOccurrences = 1
	}

	report := TriggerReport{
		Physical:     []TriggerCount{},
		Mental:       []TriggerCount{},
		Activities:   []ActivityCount{},
		TotalEntries: len(records),
		TemporalPatterns: TemporalPatterns{
			Hours: []HourCount{},
			Days:  []DayCount{},
		},
		MinOccurrences: minOccurrences,
	}

	if len(records) == 0 {
		report.Message = "no pain entries in the analysis window"
		return report
	}

	physical := make(map[string]int)
	mental := make(map[string]int)
	activities := make(map[string]int)
	hours := make(map[int]int)
	days := make(map[string]int)

	for _, r := range records {
		if r.PhysicalTrigger != "" {
			physical[r.PhysicalTrigger]++
		}
		if r.MentalTrigger != "" {
			mental[r.MentalTrigger]++
		}
		if r.Activity != "" {
			activities[r.Activity]++
		}
		hours[r.Timestamp.Hour()]++
		days[r.Timestamp.Weekday().String()]++
	}

	for _, kv := range rankStrings(physical, minOccurrences, topTriggers) {
		report.Physical = append(report.Physical, TriggerCount{Trigger: kv.key, Count: kv.count})
	}
	for _, kv := range rankStrings(mental, minOccurrences, topTriggers) {
		report.Mental = append(report.Mental, TriggerCount{Trigger: kv.key, Count: kv.count})
	}
	for _, kv := range rankStrings(activities, minOccurrences, topActivities) {
		report.Activities = append(report.Activities, ActivityCount{Activity: kv.key, Count: kv.count})
	}
	for _, kv := range rankStrings(days, minOccurrences, topDays) {
		report.TemporalPatterns.Days = append(report.TemporalPatterns.Days, DayCount{Day: kv.key, Count: kv.count})
	}

	for hour, count := range hours {
		if count >= minOccurrences {
			report.TemporalPatterns.Hours = append(report.TemporalPatterns.Hours, HourCount{Hour: hour, Count: count})
		}
	}
	sort.Slice(report.TemporalPatterns.Hours, func(i, j int) bool {
		hi, hj := report.TemporalPatterns.Hours[i], report.TemporalPatterns.Hours[j]
		if hi.Count != hj.Count {
			return hi.Count > hj.Count
		}
		return hi.Hour < hj.Hour
	})
	if len(report.TemporalPatterns.Hours) > topHours {
		report.TemporalPatterns.Hours = report.TemporalPatterns.Hours[:topHours]
	}

	if len(report.Physical) == 0 && len(report.Mental) == 0 && len(report.Activities) == 0 {
		report.Message = fmt.Sprintf("no trigger or activity appears %d or more times", minOccurrences)
	}

	return report
}

type keyCount struct {
	key   string
	count int
}

// rankStrings filters counts below threshold, sorts by count descending then key
// ascending, and keeps at most limit entries.
func rankStrings(counts map[string]int, threshold, limit int) []keyCount {
	ranked := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		if c >= threshold {
			ranked = append(ranked, keyCount{key: k, count: c})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].key < ranked[j].key
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
