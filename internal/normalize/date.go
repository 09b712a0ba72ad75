// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical output form of Date.
const DateLayout = "02/01/2006"

// dateLayout is one accepted input form. shortYear marks layouts with a two
// digit year whose century Date decides itself.
type dateLayout struct {
	layout    string
	shortYear bool
}

// dateLayouts are tried in order; the first successful parse wins.
// Numeric forms are day-first. Month names match case-insensitively.
var dateLayouts = []dateLayout{
	{layout: "2/1/2006"},
	{layout: "2-1-2006"},
	{layout: "2.1.2006"},
	{layout: "2006/1/2"},
	{layout: "2006-1-2"},
	{layout: "2006.1.2"},
	{layout: "2 January 2006"},
	{layout: "2 Jan 2006"},
	{layout: "2-Jan-2006"},
	{layout: "2-January-2006"},
	{layout: "January 2 2006"},
	{layout: "January 2, 2006"},
	{layout: "Jan 2 2006"},
	{layout: "Jan 2, 2006"},
	{layout: "2/1/06", shortYear: true},
	{layout: "2-1-06", shortYear: true},
	{layout: "2.1.06", shortYear: true},
	{layout: "06/1/2", shortYear: true},
	{layout: "06-1-2", shortYear: true},
	{layout: "2-Jan-06", shortYear: true},
	{layout: "2 Jan 06", shortYear: true},
	{layout: "2-January-06", shortYear: true},
	{layout: "2 January 06", shortYear: true},
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Date rewrites a date string as DD/MM/YYYY. Input that matches no layout is
// reduced to its digit runs: with at least three runs the first three are
// taken as day, month and year. Anything else is returned unchanged.
// Two digit years above 50 fall in the 1900s, the rest in the 2000s.
// Date is idempotent.
func Date(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, trimmed)
		if err != nil {
			continue
		}
		if l.shortYear {
			t = time.Date(expandYear(t.Year()%100), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t.Format(DateLayout)
	}

	runs := digitRun.FindAllString(trimmed, -1)
	if len(runs) < 3 {
		return s
	}
	return fmt.Sprintf("%s/%s/%s", zeroPad(runs[0]), zeroPad(runs[1]), expandYearString(runs[2]))
}

func expandYear(yy int) int {
	if yy > 50 {
		return 1900 + yy
	}
	return 2000 + yy
}

func expandYearString(year string) string {
	if len(year) != 2 {
		return year
	}
	yy, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	return strconv.Itoa(expandYear(yy))
}

func zeroPad(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
