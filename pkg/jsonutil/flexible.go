// Package jsonutil coerces loosely-typed JSON values from oracle responses
// into the types the pipeline expects. LLMs routinely return numbers as
// strings, scores as "NaN", and lists as comma-separated text.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexibleString converts a json.RawMessage to a string, handling cases
// where the oracle returns numbers or booleans instead of strings.
// Returns empty string for null/empty.
func FlexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return fmt.Sprintf("%d", int64(numVal))
		}
		return fmt.Sprintf("%g", numVal)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return fmt.Sprintf("%t", boolVal)
	}

	return string(raw)
}

// FlexibleFloat converts a json.RawMessage to a float64, handling numbers,
// numeric strings ("0.8"), and percent-ish strings ("85%", treated as 0.85).
// Returns false when no finite number can be extracted (null, "NaN", text).
func FlexibleFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if math.IsNaN(numVal) || math.IsInf(numVal, 0) {
			return 0, false
		}
		return numVal, true
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err != nil {
		return 0, false
	}

	s := strings.TrimSpace(strVal)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if percent {
		f /= 100
	}
	return f, true
}

// FlexibleStringSlice converts a json.RawMessage to a []string, accepting a
// JSON array (of any scalar types), a single string (split on commas), or
// null. The result is never nil.
func FlexibleStringSlice(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err == nil {
		items := make([]string, 0, len(rawItems))
		for _, item := range rawItems {
			if s := strings.TrimSpace(FlexibleString(item)); s != "" {
				items = append(items, s)
			}
		}
		return items
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		parts := strings.Split(strVal, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				items = append(items, s)
			}
		}
		return items
	}

	return []string{}
}
