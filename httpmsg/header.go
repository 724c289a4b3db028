package httpmsg

import (
	"io"
	"strings"

	"ezhttp/lib/lineio"
)

// Field is a single header entry.
type Field struct{ Name, Value string }

// Headers is an ordered list of fields. Name lookup is case-insensitive
// and first-match-wins; insertion order is preserved on the wire.
// Repeated names stay representable (Set-Cookie and friends), which is
// why the backing store is a list and not a map.
type Headers struct {
	fields []Field
}

func NewHeaders(fields ...Field) Headers {
	return Headers{fields: fields}
}

// Get returns the value of the first field matching name.
func (h *Headers) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns the values of all fields matching name, in order.
func (h *Headers) Values(name string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

func (h *Headers) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Put replaces the value of the first field matching name, or appends a
// new field when none matches.
func (h *Headers) Put(name, value string) {
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			h.fields[i].Value = value
			return
		}
	}
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// PutDefault appends the field only when no field matches name.
func (h *Headers) PutDefault(name, value string) {
	if h.Has(name) {
		return
	}
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Add always appends, keeping any existing fields with the same name.
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Del removes every field matching name.
func (h *Headers) Del(name string) {
	kept := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.Name, name) {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

func (h *Headers) Len() int { return len(h.fields) }

func (h *Headers) Clear() { h.fields = nil }

// Entries returns a copy of the fields in insertion order.
func (h *Headers) Entries() []Field {
	clone := make([]Field, len(h.fields))
	copy(clone, h.fields)
	return clone
}

func (h *Headers) Clone() Headers {
	return Headers{fields: h.Entries()}
}

// ReadHeaders reads CRLF-terminated "name: value" lines until an empty
// line. A line without ": " fails with ErrInvalidHeaders.
func ReadHeaders(r io.Reader) (Headers, error) {
	var h Headers
	for {
		line, err := lineio.ReadLineCRLF(r)
		if err != nil {
			return Headers{}, ErrInvalidHeaders
		}
		if line == "" {
			return h, nil
		}

		name, value, found := strings.Cut(line, ": ")
		if !found {
			return Headers{}, ErrInvalidHeaders
		}
		h.Add(name, value)
	}
}

// Send writes the fields in insertion order, each CRLF-terminated. The
// blank line separating headers from body is the framer's to write.
func (h *Headers) Send(w io.Writer) error {
	b := new(strings.Builder)
	for _, f := range h.fields {
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\r\n")
	}

	if err := lineio.WriteFull(w, []byte(b.String())); err != nil {
		return ErrWriteHead
	}
	return nil
}
