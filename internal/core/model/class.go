package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Class is a raw class value as a classifier exports it, an integer or a string label
type Class struct {
	Num   int
	Name  string
	IsNum bool
}

// IntClass returns the integer class n
func IntClass(n int) Class { return Class{Num: n, IsNum: true} }

// NameClass returns the string class s
func NameClass(s string) Class { return Class{Name: s} }

// String renders the class the way the export spells it
func (c Class) String() string {
	if c.IsNum {
		return strconv.Itoa(c.Num)
	}
	return c.Name
}

// MarshalJSON writes the class back as a number or a string
func (c Class) MarshalJSON() ([]byte, error) {
	if c.IsNum {
		return json.Marshal(c.Num)
	}
	return json.Marshal(c.Name)
}

// UnmarshalJSON accepts integral numbers (1 or 1.0) and strings; other numbers keep their text
func (c *Class) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			*c = IntClass(int(i))
			return nil
		}
		if f, err := x.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			*c = IntClass(int(f))
			return nil
		}
		*c = NameClass(x.String())
	case string:
		*c = NameClass(x)
	default:
		return fmt.Errorf("class must be a number or a string, got %s", b)
	}
	return nil
}
