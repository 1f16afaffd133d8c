package canvas

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Canvas adds fields per endpoint and per include[] value. The typed DTOs
// only name what the adapter reasons about; every other field is kept in
// Extra and written back out unchanged.

var knownKeys sync.Map // reflect.Type -> map[string]struct{}

func jsonKeys(t reflect.Type) map[string]struct{} {
	if v, ok := knownKeys.Load(t); ok {
		return v.(map[string]struct{})
	}
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	knownKeys.Store(t, keys)
	return keys
}

// splitExtra returns the object members of data that no field of known's
// type claims. A nil map means there were none.
func splitExtra(data []byte, known any) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	keys := jsonKeys(reflect.TypeOf(known))
	for k := range all {
		if _, ok := keys[k]; ok {
			delete(all, k)
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeExtra encodes v and adds every extra member v did not write itself.
// Keys come out sorted so identical input encodes identically.
func mergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := out[k]; !ok {
			out[k] = raw
		}
	}
	return json.Marshal(out)
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	type plain Assignment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*a = Assignment(p)
	a.Extra = extra
	return nil
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	type plain Assignment
	return mergeExtra(plain(a), a.Extra)
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	type plain Quiz
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*q = Quiz(p)
	q.Extra = extra
	return nil
}

func (q Quiz) MarshalJSON() ([]byte, error) {
	type plain Quiz
	return mergeExtra(plain(q), q.Extra)
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	type plain Submission
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*s = Submission(p)
	s.Extra = extra
	return nil
}

func (s Submission) MarshalJSON() ([]byte, error) {
	type plain Submission
	return mergeExtra(plain(s), s.Extra)
}
