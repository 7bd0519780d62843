package exercise

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Extra holds members of a stored object that liftlog does not model. They are
// written back after the known members so a read-modify-write keeps them.
type Extra map[string]json.RawMessage

func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var p plain
	extra, err := decodeWithExtra(data, &p, "metadata", "log")
	if err != nil {
		return err
	}
	*r = Record(p)
	r.Extra = extra
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return encodeWithExtra(plain(r), r.Extra)
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	type plain Metadata
	var p plain
	extra, err := decodeWithExtra(data, &p, "title", "muscles")
	if err != nil {
		return err
	}
	*m = Metadata(p)
	m.Extra = extra
	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	type plain Metadata
	return encodeWithExtra(plain(m), m.Extra)
}

func (w *Workout) UnmarshalJSON(data []byte) error {
	type plain Workout
	var p plain
	extra, err := decodeWithExtra(data, &p, "date", "sets")
	if err != nil {
		return err
	}
	*w = Workout(p)
	w.Extra = extra
	return nil
}

func (w Workout) MarshalJSON() ([]byte, error) {
	type plain Workout
	return encodeWithExtra(plain(w), w.Extra)
}

// decodeWithExtra fills v and returns the object members whose names match none
// of known. Names compare case-insensitively, as encoding/json matches fields.
func decodeWithExtra(data []byte, v any, known ...string) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	var extra Extra
	for name, raw := range members {
		if isKnown(name, known) {
			continue
		}
		if extra == nil {
			extra = Extra{}
		}
		extra[name] = raw
	}
	return extra, nil
}

func isKnown(name string, known []string) bool {
	for _, k := range known {
		if strings.EqualFold(name, k) {
			return true
		}
	}
	return false
}

// encodeWithExtra writes v, then appends extra members in name order.
func encodeWithExtra(v any, extra Extra) ([]byte, error) {
	body, err := compactJSON(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return body, nil
	}

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.Write(body[:len(body)-1])
	for i, name := range names {
		if i > 0 || len(body) > 2 {
			buf.WriteByte(',')
		}
		key, err := compactJSON(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(extra[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func compactJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
