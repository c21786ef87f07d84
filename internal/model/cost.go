package model

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// CostRange is the parsed form of a channel's posting cost estimate.
// The accepted grammar is `<min>-<max> per <unit>` or the literal `free`
// (case-insensitive, optionally followed by a note). Anything else is kept
// verbatim with Parsed false; scoring skips the budget rule for such
// channels instead of guessing.
type CostRange struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Unit   string  `json:"unit,omitempty"`
	Free   bool    `json:"free,omitempty"`
	Parsed bool    `json:"parsed"`
	Raw    string  `json:"raw"`
}

var costRangeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s+per\s+(.+)$`)

// ParseCostRange parses a cost estimate string against the strict grammar.
func ParseCostRange(raw string) CostRange {
	cr := CostRange{Raw: raw}

	s := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(s), "free") {
		cr.Free = true
		cr.Parsed = true
		return cr
	}

	m := costRangeRe.FindStringSubmatch(s)
	if m == nil {
		return cr
	}

	min, err1 := strconv.ParseFloat(m[1], 64)
	max, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || min > max {
		return cr
	}

	cr.Min = min
	cr.Max = max
	cr.Unit = strings.TrimSpace(m[3])
	cr.Parsed = true
	return cr
}

// MinCost returns the channel's minimum cost. Free channels cost 0.
func (c CostRange) MinCost() float64 {
	if c.Free {
		return 0
	}
	return c.Min
}

// UnmarshalJSON accepts either the raw cost string (as stored in directory
// fixtures) or the structured object form.
func (c *CostRange) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = ParseCostRange(s)
		return nil
	}

	type alias CostRange
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = CostRange(a)
	return nil
}

// MarshalJSON emits the raw string form when present so fixtures round-trip.
func (c CostRange) MarshalJSON() ([]byte, error) {
	if c.Raw != "" {
		return json.Marshal(c.Raw)
	}
	type alias CostRange
	return json.Marshal(alias(c))
}
