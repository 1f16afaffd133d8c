package canvas

import (
	"bytes"
	"encoding/json"
)

// DateField is a tri-state date: absent (Set=false), explicit null
// (Set=true, Value=nil) or an ISO-8601 value. Absent fields are left
// untouched by Canvas; null clears the date.
type DateField struct {
	Set   bool
	Value *string
}

// Null returns a DateField that clears the date.
func Null() DateField { return DateField{Set: true} }

// Date returns a DateField carrying v.
func Date(v string) DateField { return DateField{Set: true, Value: &v} }

// UnmarshalJSON only runs when the key is present, which is what marks Set.
func (d *DateField) UnmarshalJSON(data []byte) error {
	d.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		d.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d.Value = &s
	return nil
}

// DateUpdate is a partial update of an assignment or quiz schedule.
type DateUpdate struct {
	DueAt    DateField `json:"due_at"`
	UnlockAt DateField `json:"unlock_at"`
	LockAt   DateField `json:"lock_at"`
}

// IsEmpty reports whether no field is present.
func (u DateUpdate) IsEmpty() bool {
	return !u.DueAt.Set && !u.UnlockAt.Set && !u.LockAt.Set
}

// Fields returns the present fields keyed by their Canvas name; null values map to nil.
func (u DateUpdate) Fields() map[string]*string {
	out := make(map[string]*string, 3)
	if u.DueAt.Set {
		out["due_at"] = u.DueAt.Value
	}
	if u.UnlockAt.Set {
		out["unlock_at"] = u.UnlockAt.Value
	}
	if u.LockAt.Set {
		out["lock_at"] = u.LockAt.Value
	}
	return out
}

// MarshalJSON emits only the present fields so that absent dates are not cleared.
func (u DateUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Fields())
}
