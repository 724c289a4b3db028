package httpmsg

import (
	"bytes"
	"math/rand"
	"strings"
)

// Part is one entry of a multipart/form-data body.
type Part struct {
	Name        string
	Body        Body
	Filename    string
	ContentType string
}

const boundaryAlphabet = "qwertyuiopasdfghjklzxcvbnm0123456789QWERTYUIOPASDFGHJKLZXCVBNM'()+_,-./:=?"

// RandomBoundary generates a boundary of 20 to 39 characters. Collision
// with payload content is the caller's risk, as with any boundary scheme.
func RandomBoundary() string {
	length := 20 + rand.Intn(20)
	b := make([]byte, length)
	for i := range b {
		b[i] = boundaryAlphabet[rand.Intn(len(boundaryAlphabet))]
	}
	return string(b)
}

// FromMultipart encodes parts delimited by boundary. AsMultipart with
// the same boundary is its exact inverse as long as no part payload
// contains the boundary string.
func FromMultipart(parts []Part, boundary string) Body {
	buf := new(bytes.Buffer)

	for _, part := range parts {
		buf.WriteString("--")
		buf.WriteString(boundary)
		buf.WriteString("\r\nContent-Disposition: form-data; name=\"")
		buf.WriteString(part.Name)
		buf.WriteString("\"")
		if part.Filename != "" {
			buf.WriteString("; filename=\"")
			buf.WriteString(part.Filename)
			buf.WriteString("\"")
		}
		buf.WriteString("\r\n")
		if part.ContentType != "" {
			buf.WriteString("Content-Type: ")
			buf.WriteString(part.ContentType)
			buf.WriteString("\r\n")
		}
		buf.WriteString("\r\n")
		buf.Write(part.Body.Bytes())
	}

	buf.WriteString("--")
	buf.WriteString(boundary)
	buf.WriteString("--\r\n")

	return buf.Bytes()
}

// AsMultipart decodes a boundary-delimited body. Segments without a
// well-formed Content-Disposition name are skipped, which also drops
// the leading and terminal delimiter segments.
func (b Body) AsMultipart(boundary string) []Part {
	var parts []Part
	for _, segment := range bytes.Split(b.Bytes(), []byte("--"+boundary)) {
		head, body, found := bytes.Cut(segment, []byte("\r\n\r\n"))
		if !found {
			continue
		}

		part, ok := parsePartHead(string(head))
		if !ok {
			continue
		}
		part.Body = body

		parts = append(parts, part)
	}
	return parts
}

func parsePartHead(head string) (Part, bool) {
	var part Part
	named := false

	for _, line := range strings.Split(head, "\r\n") {
		name, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}

		switch strings.ToLower(name) {
		case "content-type":
			part.ContentType = value
		case "content-disposition":
			for _, param := range strings.Split(value, ";") {
				param = strings.TrimSpace(param)
				switch {
				case strings.HasPrefix(param, "name=\""):
					part.Name = strings.TrimSuffix(strings.TrimPrefix(param, "name=\""), "\"")
					named = true
				case strings.HasPrefix(param, "filename=\""):
					part.Filename = strings.TrimSuffix(strings.TrimPrefix(param, "filename=\""), "\"")
				}
			}
		}
	}

	return part, named
}
