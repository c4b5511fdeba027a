package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/painwatch/internal/health"
)

// StressAggregation selects how several stress snapshots in one hour bucket
// are combined.
type StressAggregation string

const (
	// StressExactMean is the true arithmetic mean of the bucket.
	StressExactMean StressAggregation = "exact"

	// StressRunningPair repeatedly averages the bucket value with the next
	// sample, (old+new)/2. Later samples weigh more; kept so numbers match
	// the earlier tracker.
	StressRunningPair StressAggregation = "running_pair"
)

// ParseStressAggregation validates a configured aggregation mode.
func ParseStressAggregation(s string) (StressAggregation, error) {
	switch StressAggregation(s) {
	case "", StressExactMean:
		return StressExactMean, nil
	case StressRunningPair:
		return StressRunningPair, nil
	default:
		return "", fmt.Errorf("unknown stress aggregation %q (want %q or %q)", s, StressExactMean, StressRunningPair)
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func hourKey(t time.Time) string {
	return t.Format("2006-01-02T15")
}

// bucketMean accumulates an exact mean.
type bucketMean struct {
	sum   float64
	count int
}

func (b *bucketMean) add(v float64) {
	b.sum += v
	b.count++
}

func (b bucketMean) value() float64 {
	if b.count == 0 {
		return 0
	}
	return b.sum / float64(b.count)
}

// painByBucket averages pain intensity per bucket key.
func painByBucket(pain []health.PainRecord, key func(time.Time) string) map[string]float64 {
	acc := make(map[string]*bucketMean)
	for _, r := range pain {
		k := key(r.Timestamp)
		b, ok := acc[k]
		if !ok {
			b = &bucketMean{}
			acc[k] = b
		}
		b.add(float64(r.Intensity))
	}

	out := make(map[string]float64, len(acc))
	for k, b := range acc {
		out[k] = b.value()
	}
	return out
}

// join inner-joins the pain buckets with the external buckets and returns
// pairs sorted by bucket key.
func join(pain, external map[string]float64) []AlignedPair {
	pairs := make([]AlignedPair, 0, len(pain))
	for k, p := range pain {
		v, ok := external[k]
		if !ok {
			continue
		}
		pairs = append(pairs, AlignedPair{Bucket: k, Pain: p, Value: v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Bucket < pairs[j].Bucket
	})
	return pairs
}

// AlignSleep pairs daily mean pain intensity with total sleep minutes for
// the same calendar date. The sleep date is the date the sleep started.
func AlignSleep(pain []health.PainRecord, sleep []health.SleepSnapshot) []AlignedPair {
	if len(pain) == 0 || len(sleep) == 0 {
		return nil
	}

	sleepByDay := make(map[string]float64)
	for _, s := range sleep {
		sleepByDay[dayKey(s.SleepStart)] += s.DurationMinutes
	}

	return join(painByBucket(pain, dayKey), sleepByDay)
}

// AlignStress pairs hourly mean pain intensity with the stress level of the
// same date and hour.
func AlignStress(pain []health.PainRecord, stress []health.StressSnapshot, mode StressAggregation) []AlignedPair {
	if len(pain) == 0 || len(stress) == 0 {
		return nil
	}

	stressByHour := make(map[string]float64)
	switch mode {
	case StressRunningPair:
		for _, s := range stress {
			k := hourKey(s.Timestamp)
			if old, ok := stressByHour[k]; ok {
				stressByHour[k] = (old + s.StressLevel) / 2
			} else {
				stressByHour[k] = s.StressLevel
			}
		}
	default:
		acc := make(map[string]*bucketMean)
		for _, s := range stress {
			k := hourKey(s.Timestamp)
			b, ok := acc[k]
			if !ok {
				b = &bucketMean{}
				acc[k] = b
			}
			b.add(s.StressLevel)
		}
		for k, b := range acc {
			stressByHour[k] = b.value()
		}
	}

	return join(painByBucket(pain, hourKey), stressByHour)
}
