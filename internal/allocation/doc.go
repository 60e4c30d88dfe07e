// Package allocation splits a weekly study budget across a fixed set of
// subjects.
//
// Each subject receives a priority derived from its level, grade gap,
// upcoming assessment flag and perceived difficulty. A day's minutes are
// shared out in proportion to those priorities, rounded to whole minutes and
// rendered as duration strings such as "1 hour 45 minutes".
//
// Calculation is a pure function of its inputs: it never fails, holds no
// state between calls and is safe for concurrent use. Malformed or missing
// input is absorbed by default rules instead of being reported.
//
// # Basic Usage
//
//	result := allocation.CalculateFields(rows, []float64{420, 60, 60, 60, 60, 120, 120})
//	for _, row := range result.Rows() {
//	    fmt.Println(row.DisplayName, row.Days)
//	}
//	fmt.Println(result.Summary())
package allocation
