package allocation

import "math"

// Row is one subject's line in an allocation table.
type Row struct {
	DisplayName string   `json:"name"`
	Days        []string `json:"days"`
}

// Result is the outcome of a calculation. Accessors return copies, so a
// Result never changes once produced.
type Result struct {
	rows       []Row
	breakdowns []Breakdown
	ratios     []float64
	minutes    [][]int64
	summary    string
	totalMins  float64
}

// Rows returns the SubjectCount allocation rows in input order.
func (r *Result) Rows() []Row {
	out := make([]Row, len(r.rows))
	for i, row := range r.rows {
		out[i] = Row{
			DisplayName: row.DisplayName,
			Days:        append([]string(nil), row.Days...),
		}
	}
	return out
}

// Table returns the rows as text cells: the display name followed by one
// duration per day, matching ColumnNames.
func (r *Result) Table() [][]string {
	out := make([][]string, len(r.rows))
	for i, row := range r.rows {
		cells := make([]string, 0, DayCount+1)
		cells = append(cells, row.DisplayName)
		cells = append(cells, row.Days...)
		out[i] = cells
	}
	return out
}

// Minutes returns the rounded minutes allocated per subject per day.
func (r *Result) Minutes() [][]int64 {
	out := make([][]int64, len(r.minutes))
	for i, days := range r.minutes {
		out[i] = append([]int64(nil), days...)
	}
	return out
}

// Breakdowns returns the priority weights of each subject.
func (r *Result) Breakdowns() []Breakdown {
	return append([]Breakdown(nil), r.breakdowns...)
}

// Priorities returns the priority of each subject.
func (r *Result) Priorities() []float64 {
	out := make([]float64, len(r.breakdowns))
	for i, b := range r.breakdowns {
		out[i] = b.Priority
	}
	return out
}

// Ratios returns each subject's share of a day's budget. They sum to 1.
func (r *Result) Ratios() []float64 {
	return append([]float64(nil), r.ratios...)
}

// Summary returns the weekly summary sentence.
func (r *Result) Summary() string {
	return r.summary
}

// TotalMinutes returns the sum of the weekly budget, clamped to the finite
// float64 range.
func (r *Result) TotalMinutes() float64 {
	return r.totalMins
}

// CalculateFields is Calculate over positional rows of
// name, level, current grade, target grade, upcoming assessment and
// difficulty.
func CalculateFields(rows [][]string, dailyMinutes []float64) *Result {
	normalized := NormalizeFields(rows)
	subjects := make([]Subject, len(normalized))
	for i, fields := range normalized {
		subjects[i] = SubjectFromFields(fields)
	}
	return Calculate(subjects, dailyMinutes)
}

// Calculate splits each day's minutes across SubjectCount subjects in
// proportion to their priorities. Missing subjects count as blank and
// missing days as zero; entries beyond the fixed sizes are ignored.
func Calculate(subjects []Subject, dailyMinutes []float64) *Result {
	minutes := NormalizeMinutes(dailyMinutes)
	for day, m := range minutes {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			minutes[day] = 0
		}
	}

	breakdowns := make([]Breakdown, SubjectCount)
	var totalPriority float64
	for i := range breakdowns {
		var s Subject
		if i < len(subjects) {
			s = subjects[i]
		}
		breakdowns[i] = ComputePriority(s)
		totalPriority += breakdowns[i].Priority
	}

	if totalPriority == 0 {
		for i := range breakdowns {
			breakdowns[i].Priority = BasePriority
		}
		totalPriority = BasePriority * SubjectCount
	}

	ratios := make([]float64, SubjectCount)
	for i, b := range breakdowns {
		ratios[i] = b.Priority / totalPriority
	}

	rows := make([]Row, SubjectCount)
	allocated := make([][]int64, SubjectCount)
	for i := range rows {
		var s Subject
		if i < len(subjects) {
			s = subjects[i]
		}
		rows[i] = Row{DisplayName: s.DisplayName(i), Days: make([]string, DayCount)}
		allocated[i] = make([]int64, DayCount)
		for day := 0; day < DayCount; day++ {
			allocated[i][day] = RoundMinutes(minutes[day] * ratios[i])
			rows[i].Days[day] = FormatMinutes(allocated[i][day])
		}
	}

	var totalMinutes float64
	for _, m := range minutes {
		totalMinutes += m
	}

	return &Result{
		rows:       rows,
		breakdowns: breakdowns,
		ratios:     ratios,
		minutes:    allocated,
		summary:    Summarize(totalMinutes),
		totalMins:  clampFinite(totalMinutes),
	}
}

// clampFinite maps an overflowed sum onto the largest finite value of the
// same sign.
func clampFinite(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	default:
		return v
	}
}
