package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// StringSet is a JSONB-backed set of opaque ids. Order is not meaningful.
type StringSet []string

func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = StringSet{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for StringSet")
		}
		b = []byte(str)
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*s = StringSet(out)
	return nil
}

func (s StringSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id present, without duplicating it.
func (s StringSet) Add(id string) StringSet {
	if s.Contains(id) {
		return s
	}
	return append(s, id)
}

func (s StringSet) Remove(id string) StringSet {
	out := make(StringSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// StringList is a JSONB-backed ordered sequence of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for StringList")
		}
		b = []byte(str)
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*l = StringList(out)
	return nil
}

// QuantityMap is a JSONB-backed mapping from normalized item name to quantity.
type QuantityMap map[string]float64

func (m QuantityMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]float64(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *QuantityMap) Scan(value interface{}) error {
	if value == nil {
		*m = QuantityMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for QuantityMap")
		}
		b = []byte(str)
	}
	var out map[string]float64
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*m = QuantityMap(out)
	return nil
}
