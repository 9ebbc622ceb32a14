// Package message implements the length-prefixed host command framing and the
// per-command field layout of requests and responses.
package message

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	lengthPrefixSize = 2
	commandCodeSize  = 2
	keyHexSize       = 32
)

var (
	// ErrLengthMismatch reports a frame whose declared length does not match
	// the received byte count.
	ErrLengthMismatch = errors.New("message length mismatch")
	// ErrInvalidHeader reports a frame whose header bytes do not match the
	// configured header.
	ErrInvalidHeader = errors.New("invalid header")
	// ErrTruncated reports a body too short for the command's field layout.
	ErrTruncated = errors.New("message truncated")
)

// Field is a single named message field. Order carries no meaning for
// requests beyond display; responses serialize fields in insertion order.
type Field struct {
	Name  string
	Value []byte
}

// Request is the decoded form of an incoming command frame.
type Request interface {
	CommandCode() string
	Fields() []Field
}

// Decode parses a complete frame including the two-byte big-endian length
// prefix, validates the optional header, and splits the body per command.
func Decode(raw, header []byte) (Request, error) {
	if len(raw) < lengthPrefixSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(raw))
	}
	declared := int(binary.BigEndian.Uint16(raw))
	actual := len(raw) - lengthPrefixSize
	if declared != actual {
		return nil, fmt.Errorf(
			"%w: expected message of length %d but actual received message length is %d",
			ErrLengthMismatch, declared, actual,
		)
	}

	return DecodePayload(raw[lengthPrefixSize:], header)
}

// DecodePayload parses a de-framed payload: optional header, two-byte command
// code, command-specific body. The transport strips the length prefix.
func DecodePayload(payload, header []byte) (Request, error) {
	if len(header) > 0 {
		if len(payload) < len(header) || !bytes.Equal(payload[:len(header)], header) {
			return nil, ErrInvalidHeader
		}
		payload = payload[len(header):]
	}

	if len(payload) < commandCodeSize {
		return &UnknownRequest{Code: string(payload)}, nil
	}
	code := string(payload[:commandCodeSize])
	body := payload[commandCodeSize:]

	switch code {
	case "DC":
		return parseDC(body)
	case "CA":
		return parseCA(body)
	case "CY":
		return parseCY(body)
	case "NC":
		return &NCRequest{}, nil
	default:
		return &UnknownRequest{Code: code, Body: body}, nil
	}
}

// Response accumulates named fields and serializes them in insertion order.
type Response struct {
	header []byte
	fields []Field
}

// NewResponse creates an empty response carrying the configured header.
func NewResponse(header []byte) *Response {
	return &Response{header: header}
}

// Set appends a named field. Fields are emitted in the order they were set.
func (r *Response) Set(name string, value []byte) {
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the value of the first field with the given name, or nil.
func (r *Response) Get(name string) []byte {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value
		}
	}

	return nil
}

// Fields returns the ordered field list.
func (r *Response) Fields() []Field {
	return r.fields
}

// Payload returns header and field bytes without the length prefix.
func (r *Response) Payload() []byte {
	var buf bytes.Buffer
	buf.Write(r.header)
	for _, f := range r.fields {
		buf.Write(f.Value)
	}

	return buf.Bytes()
}

// Build returns the complete outgoing frame: big-endian length of
// header+fields, then the header, then the fields in insertion order.
func (r *Response) Build() []byte {
	payload := r.Payload()
	out := make([]byte, lengthPrefixSize+len(payload))
	binary.BigEndian.PutUint16(out, uint16(len(payload)))
	copy(out[lengthPrefixSize:], payload)

	return out
}

// Trace renders the response fields for diagnostics logs.
func (r *Response) Trace() string {
	return Trace(r.fields)
}

// Trace renders an ordered field list for diagnostics logs.
func Trace(fields []Field) string {
	width := 0
	for _, f := range fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	var buf bytes.Buffer
	for _, f := range fields {
		fmt.Fprintf(&buf, "\t[%-*s]: [%s]\n", width, f.Name, f.Value)
	}

	return buf.String()
}
