package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"study-time-allocator/internal/allocation"
)

// ErrNoSubjects is returned when an input file holds no subject rows.
var ErrNoSubjects = errors.New("no subjects found")

// plan is the collected input handed to the allocation engine.
type plan struct {
	Subjects []allocation.Subject
	// Week is nil when the input did not define one.
	Week []float64
	Unit string
}

// planFile is the YAML plan document.
type planFile struct {
	Unit     string               `yaml:"unit"`
	Subjects []allocation.Subject `yaml:"subjects"`
	Week     map[string]float64   `yaml:"week"`
}

var csvColumns = []string{"name", "level", "current_grade", "target_grade", "upcoming_assessment", "difficulty"}

func loadPlan(path string) (*plan, []string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadPlanFile(path)
	default:
		return loadSubjects(path)
	}
}

func loadSubjects(path string) (*plan, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read header: %w", err)
	}
	index := mapHeaders(header)

	missing := missingHeaders([]string{"name"}, index)
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing required headers: %s", strings.Join(missing, ", "))
	}

	var subjects []allocation.Subject
	var warnings []string
	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if len(subjects) == allocation.SubjectCount {
			warnings = append(warnings, fmt.Sprintf("line %d: only %d subjects are scheduled", line, allocation.SubjectCount))
			continue
		}
		subjects = append(subjects, parseSubject(record, index))
	}

	if len(subjects) == 0 {
		return nil, warnings, ErrNoSubjects
	}
	return &plan{Subjects: subjects}, warnings, nil
}

func mapHeaders(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		index[key] = i
	}
	return index
}

func missingHeaders(required []string, index map[string]int) []string {
	var missing []string
	for _, key := range required {
		if _, ok := index[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// parseSubject keeps cell text as written apart from surrounding
// whitespace; interpreting it is left to the engine.
func parseSubject(record []string, index map[string]int) allocation.Subject {
	fields := make([]string, len(csvColumns))
	for i, key := range csvColumns {
		pos, ok := index[key]
		if !ok || pos >= len(record) {
			continue
		}
		fields[i] = strings.TrimSpace(record[pos])
	}
	return allocation.SubjectFromFields(fields)
}

func loadPlanFile(path string) (*plan, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read plan: %w", err)
	}

	var doc planFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("unable to parse plan %s: %w", path, err)
	}
	if len(doc.Subjects) == 0 {
		return nil, nil, ErrNoSubjects
	}

	var warnings []string
	subjects := doc.Subjects
	if len(subjects) > allocation.SubjectCount {
		warnings = append(warnings, fmt.Sprintf("%d subjects listed, only the first %d are scheduled", len(subjects), allocation.SubjectCount))
		subjects = subjects[:allocation.SubjectCount]
	}

	result := &plan{Subjects: subjects, Unit: doc.Unit}
	if len(doc.Week) > 0 {
		week, err := weekFromMap(doc.Week)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid week in %s: %w", path, err)
		}
		result.Week = week
	}
	return result, warnings, nil
}

func weekFromMap(days map[string]float64) ([]float64, error) {
	week := make([]float64, allocation.DayCount)
	for name, value := range days {
		pos := weekdayIndex(name)
		if pos < 0 {
			return nil, fmt.Errorf("unknown day %q", name)
		}
		if value < 0 {
			return nil, fmt.Errorf("%s must be >= 0", allocation.Weekdays[pos])
		}
		week[pos] = value
	}
	return week, nil
}

func weekdayIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, day := range allocation.Weekdays {
		if strings.EqualFold(name, day) || strings.EqualFold(name, day[:3]) {
			return i
		}
	}
	return -1
}

// parseWeek reads up to seven comma-separated values, Monday first. Empty
// entries count as zero.
func parseWeek(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > allocation.DayCount {
		return nil, fmt.Errorf("week has %d values, at most %d allowed", len(parts), allocation.DayCount)
	}
	week := make([]float64, allocation.DayCount)
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", allocation.Weekdays[i], part)
		}
		if value < 0 {
			return nil, fmt.Errorf("%s must be >= 0", allocation.Weekdays[i])
		}
		week[i] = value
	}
	return week, nil
}
