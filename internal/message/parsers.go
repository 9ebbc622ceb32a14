package message

import (
	"bytes"
	"fmt"
)

// KeyScheme is the optional single-byte tag preceding a wrapped key field.
type KeyScheme byte

// Known key scheme tags. An untagged key carries the command-defined length.
const (
	SchemeUntagged KeyScheme = 0
	SchemeU        KeyScheme = 'U'
	SchemeT        KeyScheme = 'T'
	SchemeS        KeyScheme = 'S'
)

// Tagged reports whether the key carried an explicit scheme tag on the wire.
func (s KeyScheme) Tagged() bool {
	return s != SchemeUntagged
}

// KeyField is a wrapped key as received: an optional scheme tag plus the
// hex-ASCII key body with the tag stripped.
type KeyField struct {
	Scheme KeyScheme
	Hex    string
}

func (k KeyField) String() string {
	if k.Scheme.Tagged() {
		return string(byte(k.Scheme)) + k.Hex
	}

	return k.Hex
}

// fieldReader consumes fixed-length prefixes from a command body.
type fieldReader struct {
	data []byte
}

func (r *fieldReader) take(n int, name string) (string, error) {
	if len(r.data) < n {
		return "", fmt.Errorf("%w: field %q needs %d bytes, %d left", ErrTruncated, name, n, len(r.data))
	}
	v := string(r.data[:n])
	r.data = r.data[n:]

	return v, nil
}

// takeKey consumes a wrapped key field: one of the accepted scheme tags
// followed by 32 hex characters, or 32 hex characters when untagged.
func (r *fieldReader) takeKey(name string, tags ...KeyScheme) (KeyField, error) {
	scheme := SchemeUntagged
	if len(r.data) > 0 {
		for _, t := range tags {
			if r.data[0] == byte(t) {
				scheme = t
				r.data = r.data[1:]

				break
			}
		}
	}
	body, err := r.take(keyHexSize, name)
	if err != nil {
		return KeyField{}, err
	}

	return KeyField{Scheme: scheme, Hex: body}, nil
}

// takeUntil consumes bytes up to (and discards) the delimiter.
func (r *fieldReader) takeUntil(delim byte, name string) (string, error) {
	i := bytes.IndexByte(r.data, delim)
	if i < 0 {
		return "", fmt.Errorf("%w: field %q missing %q delimiter", ErrTruncated, name, delim)
	}
	v := string(r.data[:i])
	r.data = r.data[i+1:]

	return v, nil
}

// DCRequest carries the fields of the Verify PIN command.
type DCRequest struct {
	TPK            KeyField
	PVK            KeyField
	PINBlock       string
	PINBlockFormat string
	AccountNumber  string
	PVKI           string
	PVV            string
}

func (r *DCRequest) CommandCode() string { return "DC" }

func (r *DCRequest) Fields() []Field {
	return []Field{
		{"TPK", []byte(r.TPK.String())},
		{"PVK Pair", []byte(r.PVK.String())},
		{"PIN block", []byte(r.PINBlock)},
		{"PIN block format code", []byte(r.PINBlockFormat)},
		{"Account Number", []byte(r.AccountNumber)},
		{"PVKI", []byte(r.PVKI)},
		{"PVV", []byte(r.PVV)},
	}
}

func parseDC(body []byte) (*DCRequest, error) {
	r := &fieldReader{data: body}
	req := &DCRequest{}
	var err error
	if req.TPK, err = r.takeKey("TPK", SchemeU, SchemeT, SchemeS); err != nil {
		return nil, err
	}
	if req.PVK, err = r.takeKey("PVK Pair", SchemeU); err != nil {
		return nil, err
	}
	if req.PINBlock, err = r.take(16, "PIN block"); err != nil {
		return nil, err
	}
	if req.PINBlockFormat, err = r.take(2, "PIN block format code"); err != nil {
		return nil, err
	}
	if req.AccountNumber, err = r.take(12, "Account Number"); err != nil {
		return nil, err
	}
	if req.PVKI, err = r.take(1, "PVKI"); err != nil {
		return nil, err
	}
	if req.PVV, err = r.take(4, "PVV"); err != nil {
		return nil, err
	}

	return req, nil
}

// CARequest carries the fields of the Translate PIN block command.
type CARequest struct {
	TPK            KeyField
	DestKey        KeyField
	MaxPINLength   string
	SourcePINBlock string
	SourceFormat   string
	DestFormat     string
	AccountNumber  string
}

func (r *CARequest) CommandCode() string { return "CA" }

func (r *CARequest) Fields() []Field {
	return []Field{
		{"TPK", []byte(r.TPK.String())},
		{"Destination Key", []byte(r.DestKey.String())},
		{"Maximum PIN Length", []byte(r.MaxPINLength)},
		{"Source PIN block", []byte(r.SourcePINBlock)},
		{"Source PIN block format", []byte(r.SourceFormat)},
		{"Destination PIN block format", []byte(r.DestFormat)},
		{"Account Number", []byte(r.AccountNumber)},
	}
}

func parseCA(body []byte) (*CARequest, error) {
	r := &fieldReader{data: body}
	req := &CARequest{}
	var err error
	if req.TPK, err = r.takeKey("TPK", SchemeU, SchemeT, SchemeS); err != nil {
		return nil, err
	}
	if req.DestKey, err = r.takeKey("Destination Key", SchemeU, SchemeT, SchemeS); err != nil {
		return nil, err
	}
	if req.MaxPINLength, err = r.take(2, "Maximum PIN Length"); err != nil {
		return nil, err
	}
	if req.SourcePINBlock, err = r.take(16, "Source PIN block"); err != nil {
		return nil, err
	}
	if req.SourceFormat, err = r.take(2, "Source PIN block format"); err != nil {
		return nil, err
	}
	if req.DestFormat, err = r.take(2, "Destination PIN block format"); err != nil {
		return nil, err
	}
	if req.AccountNumber, err = r.take(12, "Account Number"); err != nil {
		return nil, err
	}

	return req, nil
}

// CYRequest carries the fields of the Verify CVV command.
type CYRequest struct {
	CVK         KeyField
	CVV         string
	PAN         string
	ExpiryDate  string
	ServiceCode string
}

func (r *CYRequest) CommandCode() string { return "CY" }

func (r *CYRequest) Fields() []Field {
	return []Field{
		{"CVK", []byte(r.CVK.String())},
		{"CVV", []byte(r.CVV)},
		{"Primary Account Number", []byte(r.PAN)},
		{"Expiration Date", []byte(r.ExpiryDate)},
		{"Service Code", []byte(r.ServiceCode)},
	}
}

func parseCY(body []byte) (*CYRequest, error) {
	r := &fieldReader{data: body}
	req := &CYRequest{}
	var err error
	if req.CVK, err = r.takeKey("CVK", SchemeU, SchemeT, SchemeS); err != nil {
		return nil, err
	}
	if req.CVV, err = r.take(3, "CVV"); err != nil {
		return nil, err
	}
	if req.PAN, err = r.takeUntil(';', "Primary Account Number"); err != nil {
		return nil, err
	}
	if req.ExpiryDate, err = r.take(4, "Expiration Date"); err != nil {
		return nil, err
	}
	if req.ServiceCode, err = r.take(3, "Service Code"); err != nil {
		return nil, err
	}

	return req, nil
}

// NCRequest is the Diagnostics command; it has no body.
type NCRequest struct{}

func (r *NCRequest) CommandCode() string { return "NC" }

func (r *NCRequest) Fields() []Field { return nil }

// UnknownRequest is any command code without a registered field schema.
type UnknownRequest struct {
	Code string
	Body []byte
}

func (r *UnknownRequest) CommandCode() string { return r.Code }

func (r *UnknownRequest) Fields() []Field { return nil }
