package models

import "encoding/json"

// Margin is a gross margin percentage that may be undefined. An undefined
// margin (no revenue basis) is distinct from a zero margin; components that
// sort or take percentiles over margins must skip undefined values.
type Margin struct {
	Pct   float64
	Valid bool
}

// DefinedMargin returns a margin with a known percentage.
func DefinedMargin(pct float64) Margin {
	return Margin{Pct: pct, Valid: true}
}

// UndefinedMargin returns the "unknown margin" value.
func UndefinedMargin() Margin {
	return Margin{}
}

// MarshalJSON emits the percentage, or null when the margin is undefined.
func (m Margin) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Pct)
}

func (m *Margin) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Margin{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Pct); err != nil {
		return err
	}
	m.Valid = true
	return nil
}
