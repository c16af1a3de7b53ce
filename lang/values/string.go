package values

// String is the type of a text string value.
type String string

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }
func (s String) Truth() bool    { return len(s) > 0 }
