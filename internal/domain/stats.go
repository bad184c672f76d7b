package domain

// WeightStat is a weight record together with its differentials against the
// preceding record. A nil differential means an operand was missing.
type WeightStat struct {
	WeightRecord
	// DailyDiff is morning minus the previous record's morning.
	DailyDiff *float64 `json:"dailyDiff"`
	// DayDiff is evening minus morning of the same record.
	DayDiff *float64 `json:"dayDiff"`
	// NightDiff is morning minus the previous record's evening.
	NightDiff *float64 `json:"nightDiff"`
}

// WeightDifferentials computes differentials over records in stored order.
// It must be given the full sequence; windowing afterwards keeps the first
// visible row's deltas correct.
func WeightDifferentials(records []WeightRecord) []WeightStat {
	out := make([]WeightStat, len(records))
	for i, r := range records {
		st := WeightStat{WeightRecord: r, DayDiff: diff(r.Evening, r.Morning)}
		if i > 0 {
			prev := records[i-1]
			st.DailyDiff = diff(r.Morning, prev.Morning)
			st.NightDiff = diff(r.Morning, prev.Evening)
		}
		out[i] = st
	}
	return out
}

func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return ptr(Round1(*a - *b))
}
