/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/textnorm"
)

// DefaultProgramID is used when the program cell is not a number.
const DefaultProgramID = "000"

// NormalizeProgram renders a program code as three digits ("7", "7.0" -> "007").
// Non-numeric codes become DefaultProgramID.
func NormalizeProgram(raw string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultProgramID
	}
	return fmt.Sprintf("%03d", int64(f))
}

// NormalizeSeason parses a season number, defaulting to 1 when the cell is
// empty, not a number, or not positive.
func NormalizeSeason(raw string) int {
	return positiveIntOr(raw, 1)
}

// NormalizeAdvancement parses a persisted advancement counter, defaulting to 1.
func NormalizeAdvancement(raw string) int {
	return positiveIntOr(raw, 1)
}

func positiveIntOr(raw string, def int) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || f < 1 || f > math.MaxInt32 {
		return def
	}
	return int(f)
}

var floatArtifact = regexp.MustCompile(`^-?\d+\.0+$`)

// NormalizeChannel cleans a channel id that went through a float column:
// "-1001234.0" -> "-1001234", "1.2e+06" -> "1200000". Other values are only trimmed.
func NormalizeChannel(raw string) string {
	s := strings.TrimSpace(raw)
	if floatArtifact.MatchString(s) {
		return s[:strings.IndexByte(s, '.')]
	}
	if strings.ContainsAny(s, "eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e18 {
			return strconv.FormatFloat(f, 'f', 0, 64)
		}
	}
	return s
}

var (
	dottedHour = regexp.MustCompile(`^(\d{1,2})\.(\d{2})$`)
	digitsOnly = regexp.MustCompile(`^\d+$`)
)

// NormalizeTime renders a time-of-day cell as HH:MM:SS. Accepted inputs are
// HH:MM, HH:MM:SS, HH.MM, HHhMM, HHh, a bare hour and spreadsheet fractional
// days in [0,1).
// It returns "" when the cell is empty or cannot be read.
func NormalizeTime(raw string) string {
	s := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	if s == "" {
		return ""
	}

	if m := dottedHour.FindStringSubmatch(s); m != nil && (len(m[1]) == 2 || m[1] != "0") {
		return clockString(m[1], m[2], "0")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, ":h") {
		if f >= 1 && f < 24 && f == math.Trunc(f) {
			return fmt.Sprintf("%02d:00:00", int(f))
		}
		if f < 0 || f >= 1 {
			return ""
		}
		secs := int(math.Round(f * 86400))
		if secs >= 86400 {
			secs = 86399
		}
		return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	}

	s = strings.ReplaceAll(s, "h", ":")
	s = strings.TrimSuffix(s, ":")
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		return clockString(parts[0], "0", "0")
	case 2:
		return clockString(parts[0], parts[1], "0")
	case 3:
		return clockString(parts[0], parts[1], parts[2])
	}
	return ""
}

func clockString(h, m, s string) string {
	for _, p := range []string{h, m, s} {
		if !digitsOnly.MatchString(p) || len(p) > 2 {
			return ""
		}
	}
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	ss, _ := strconv.Atoi(s)
	if hh > 23 || mm > 59 || ss > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
}

// Day-first layouts first: client sheets are authored in French.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/1/2",
}

// Spreadsheet serial day numbers count from 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate reads a calendar date and returns it at UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 && f < 2958466 {
		return serialEpoch.AddDate(0, 0, int(f)), true
	}
	return time.Time{}, false
}

// NormalizeDate renders a date cell as YYYY-MM-DD, or "" when unreadable.
func NormalizeDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return ""
	}
	return t.Format(models.DateLayout)
}

var weekdayNames = map[string]time.Weekday{
	"lundi": time.Monday, "mardi": time.Tuesday, "mercredi": time.Wednesday,
	"jeudi": time.Thursday, "vendredi": time.Friday, "samedi": time.Saturday, "dimanche": time.Sunday,
	"lun": time.Monday, "mar": time.Tuesday, "mer": time.Wednesday,
	"jeu": time.Thursday, "ven": time.Friday, "sam": time.Saturday, "dim": time.Sunday,
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday, "sunday": time.Sunday,
	"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday, "sun": time.Sunday,
}

// ParseWeekdays reads a comma or semicolon separated list of French or English
// day names. An empty cell means every day. Unknown names are returned so the
// caller can report them; a non-empty cell with no known name is an error.
func ParseWeekdays(raw string) (models.Weekdays, []string, error) {
	var days models.Weekdays
	var unknown []string
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' || r == '/' })
	for _, f := range fields {
		name := textnorm.Fold(f)
		if name == "" {
			continue
		}
		d, ok := weekdayNames[name]
		if !ok {
			unknown = append(unknown, strings.TrimSpace(f))
			continue
		}
		days = days.With(d)
	}
	if days == 0 && len(unknown) > 0 {
		return 0, unknown, fmt.Errorf("no known weekday in %q", raw)
	}
	return days, unknown, nil
}
