package freefire

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Placeholders used for fields missing from upstream responses
const (
	Unknown      = "Unknown"
	NotAvailable = "N/A"
	// DateLayout is display layout of account creation date
	DateLayout = "02/01/2006"
)

var null = []byte("null")

// Count is a lenient integer: accepts JSON numbers and numeric strings, anything else is unknown
type Count struct {
	Value int64
	Known bool
}

// UnmarshalJSON implementation, never fails
func (c *Count) UnmarshalJSON(bs []byte) error {
	*c = Count{}

	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 || bytes.Equal(bs, null) {
		return nil
	}

	s := string(bs)

	if bs[0] == '"' {
		if err := json.Unmarshal(bs, &s); err != nil {
			return nil
		}

		s = strings.TrimSpace(s)
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*c = Count{Value: v, Known: true}
		return nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*c = Count{Value: int64(f), Known: true}
	}

	return nil
}

// Or returns value if known, def otherwise
func (c Count) Or(def int64) int64 {
	if c.Known {
		return c.Value
	}

	return def
}

// Text is a lenient string: accepts JSON strings and numbers, anything else is empty
type Text string

// UnmarshalJSON implementation, never fails
func (t *Text) UnmarshalJSON(bs []byte) error {
	*t = ""

	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 || bytes.Equal(bs, null) {
		return nil
	}

	switch {
	case bs[0] == '"':
		var s string
		if err := json.Unmarshal(bs, &s); err == nil {
			*t = Text(strings.TrimSpace(s))
		}
	case bs[0] == '-' || (bs[0] >= '0' && bs[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(bs, &n); err == nil {
			*t = Text(n.String())
		}
	}

	return nil
}

// Or returns text if non-empty, def otherwise
func (t Text) Or(def string) string {
	if t == "" {
		return def
	}

	return string(t)
}

// Moment is account creation time as reported upstream: UNIX timestamp or preformatted string
type Moment struct {
	Time time.Time
	Raw  string
}

// UnmarshalJSON implementation, never fails
func (m *Moment) UnmarshalJSON(bs []byte) error {
	*m = Moment{}

	var c Count

	_ = c.UnmarshalJSON(bs)

	if c.Known && (bs[0] != '"' || len(strconv.FormatInt(c.Value, 10)) >= 9) {
		m.Time = time.Unix(c.Value, 0).UTC()
		return nil
	}

	var t Text

	_ = t.UnmarshalJSON(bs)

	m.Raw = string(t)

	return nil
}

// String returns display form of moment
func (m Moment) String() string {
	switch {
	case !m.Time.IsZero():
		return m.Time.Format(DateLayout)
	case m.Raw != "":
		return m.Raw
	default:
		return Unknown
	}
}
