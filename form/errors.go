package form

// ErrorMap maps fields to their current error message. Iteration follows
// insertion order: overwriting a present key keeps its position, deleting and
// re-adding moves it to the end.
type ErrorMap struct {
	order []Field
	msgs  map[Field]string
}

// NewErrorMap returns an empty ErrorMap.
func NewErrorMap() *ErrorMap {
	return &ErrorMap{msgs: make(map[Field]string)}
}

// Set records msg for f.
func (m *ErrorMap) Set(f Field, msg string) {
	if m.msgs == nil {
		m.msgs = make(map[Field]string)
	}
	if _, ok := m.msgs[f]; !ok {
		m.order = append(m.order, f)
	}
	m.msgs[f] = msg
}

// Delete removes f. Deleting an absent field is a no-op.
func (m *ErrorMap) Delete(f Field) {
	if _, ok := m.msgs[f]; !ok {
		return
	}
	delete(m.msgs, f)
	for i, k := range m.order {
		if k == f {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the message for f, if any.
func (m *ErrorMap) Get(f Field) (string, bool) {
	msg, ok := m.msgs[f]
	return msg, ok
}

// Has reports whether f currently has an error.
func (m *ErrorMap) Has(f Field) bool {
	_, ok := m.msgs[f]
	return ok
}

// Len returns the number of errored fields.
func (m *ErrorMap) Len() int {
	return len(m.order)
}

// Fields returns the errored fields in insertion order.
func (m *ErrorMap) Fields() []Field {
	out := make([]Field, len(m.order))
	copy(out, m.order)
	return out
}

// First returns the earliest inserted errored field.
func (m *ErrorMap) First() (Field, bool) {
	if len(m.order) == 0 {
		return "", false
	}
	return m.order[0], true
}

// Map returns a plain copy of the messages.
func (m *ErrorMap) Map() map[Field]string {
	out := make(map[Field]string, len(m.msgs))
	for k, v := range m.msgs {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy.
func (m *ErrorMap) Clone() *ErrorMap {
	c := &ErrorMap{
		order: make([]Field, len(m.order)),
		msgs:  make(map[Field]string, len(m.msgs)),
	}
	copy(c.order, m.order)
	for k, v := range m.msgs {
		c.msgs[k] = v
	}
	return c
}
