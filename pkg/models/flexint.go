package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt is an int that tolerates sloppy JSON input. The capture forms send
// schools/learners as numbers, numeric strings, empty strings or nothing at
// all; anything that does not parse as an integer becomes zero rather than
// failing the write.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	// Numeric strings ("12") are accepted; everything else falls back to zero.
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = FlexInt(int(n))
	return nil
}

// Int returns the value as a plain int
func (f FlexInt) Int() int {
	return int(f)
}
