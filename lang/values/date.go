package values

import "time"

// Date wraps a calendar timestamp. It is a pointer type so that == on two
// Value-typed variables holding dates is reference equality, matching the
// runtime's strict identity-style equality; use Equal to compare the
// instants themselves.
type Date struct {
	Time time.Time
}

// NewDate returns a Date wrapping t.
func NewDate(t time.Time) *Date { return &Date{Time: t} }

func (d *Date) String() string { return d.Time.Format(time.RFC3339) }
func (d *Date) Type() string   { return "date" }
func (d *Date) Truth() bool    { return true }

// Equal reports whether d and o denote the same instant.
func (d *Date) Equal(o *Date) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Time.Equal(o.Time)
}
