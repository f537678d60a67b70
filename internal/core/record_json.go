package core

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Members written by the record types. Anything else found in a stored
// record is kept in Extra and written back unchanged.
var (
	expenseKeys  = []string{"id", "amount", "category", "description", "date", "createdAt", "isRecurring"}
	templateKeys = []string{"id", "amount", "category", "description", "frequency", "isActive", "createdAt", "lastProcessed"}
)

// Timestamp layouts accepted besides RFC 3339. Date-only values are UTC;
// values without an offset are local time.
var localStampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp reads a stored timestamp: an RFC 3339 or date-only string,
// or a number of milliseconds since the epoch. ok is false for null, empty
// and unparseable values.
func ParseTimestamp(raw json.RawMessage) (t time.Time, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}

	if raw[0] != '"' {
		var ms float64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	for _, layout := range localStampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// rawStamps holds timestamp members exactly as they were read, so values
// that were not changed are written back in their original form.
type rawStamps map[string]json.RawMessage

func newRawStamps(members map[string]json.RawMessage) rawStamps {
	s := rawStamps{}
	for k, v := range members {
		if v != nil {
			s[k] = v
		}
	}
	if len(s) == 0 {
		return nil
	}
	return s
}

// encode returns the stored form when it still denotes t, otherwise t in
// RFC 3339. A zero t with nothing stored is omitted.
func (s rawStamps) encode(key string, t time.Time) (json.RawMessage, error) {
	if raw, seen := s[key]; seen {
		parsed, ok := ParseTimestamp(raw)
		if (ok && parsed.Equal(t)) || (!ok && t.IsZero()) {
			return raw, nil
		}
	}
	if t.IsZero() {
		return nil, nil
	}
	return json.Marshal(t)
}

func (s rawStamps) encodePtr(key string, t *time.Time) (json.RawMessage, error) {
	if t == nil {
		if raw, seen := s[key]; seen {
			if _, ok := ParseTimestamp(raw); !ok {
				return raw, nil
			}
		}
		return nil, nil
	}
	return s.encode(key, *t)
}

// invalid reports whether key was stored with a value that is set but is not
// a timestamp. null and "" count as unset.
func (s rawStamps) invalid(key string) bool {
	raw, seen := s[key]
	if !seen {
		return false
	}
	trimmed := string(bytes.TrimSpace(raw))
	if trimmed == "null" || trimmed == `""` {
		return false
	}
	_, ok := ParseTimestamp(raw)
	return !ok
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	type plain Expense
	var wire struct {
		plain
		Date      json.RawMessage `json:"date"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	extra, err := unknownMembers(data, expenseKeys)
	if err != nil {
		return err
	}

	*e = Expense(wire.plain)
	e.Date, _ = ParseTimestamp(wire.Date)
	e.CreatedAt, _ = ParseTimestamp(wire.CreatedAt)
	e.Extra = extra
	e.stamps = newRawStamps(map[string]json.RawMessage{
		"date":      wire.Date,
		"createdAt": wire.CreatedAt,
	})
	return nil
}

func (e Expense) MarshalJSON() ([]byte, error) {
	type plain Expense
	wire := struct {
		plain
		Date      json.RawMessage `json:"date,omitempty"`
		CreatedAt json.RawMessage `json:"createdAt,omitempty"`
	}{plain: plain(e)}

	var err error
	if wire.Date, err = e.stamps.encode("date", e.Date); err != nil {
		return nil, err
	}
	if wire.CreatedAt, err = e.stamps.encode("createdAt", e.CreatedAt); err != nil {
		return nil, err
	}
	return marshalWithExtra(wire, e.Extra)
}

func (t *RecurringTemplate) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	type plain RecurringTemplate
	var wire struct {
		plain
		CreatedAt     json.RawMessage `json:"createdAt"`
		LastProcessed json.RawMessage `json:"lastProcessed"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	extra, err := unknownMembers(data, templateKeys)
	if err != nil {
		return err
	}

	*t = RecurringTemplate(wire.plain)
	t.CreatedAt, _ = ParseTimestamp(wire.CreatedAt)
	t.LastProcessed = nil
	if last, ok := ParseTimestamp(wire.LastProcessed); ok {
		t.LastProcessed = &last
	}
	t.Extra = extra
	t.stamps = newRawStamps(map[string]json.RawMessage{
		"createdAt":     wire.CreatedAt,
		"lastProcessed": wire.LastProcessed,
	})
	return nil
}

func (t RecurringTemplate) MarshalJSON() ([]byte, error) {
	type plain RecurringTemplate
	wire := struct {
		plain
		CreatedAt     json.RawMessage `json:"createdAt,omitempty"`
		LastProcessed json.RawMessage `json:"lastProcessed,omitempty"`
	}{plain: plain(t)}

	var err error
	if wire.CreatedAt, err = t.stamps.encode("createdAt", t.CreatedAt); err != nil {
		return nil, err
	}
	if wire.LastProcessed, err = t.stamps.encodePtr("lastProcessed", t.LastProcessed); err != nil {
		return nil, err
	}
	return marshalWithExtra(wire, t.Extra)
}

func unknownMembers(data []byte, known []string) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(members, k)
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members, nil
}

// marshalWithExtra encodes v, an object, and appends the members of extra
// that v did not write, sorted by name.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var written map[string]json.RawMessage
	if err := json.Unmarshal(data, &written); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, dup := written[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
