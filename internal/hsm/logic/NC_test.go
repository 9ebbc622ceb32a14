//nolint:all // test package
package logic

import (
	"bytes"
	"testing"

	"github.com/andrei-cloud/thalessim/internal/message"
)

func TestExecuteNC(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)
	resp := ExecuteNC(h)

	if got := string(resp.Get("Response Code")); got != "ND" {
		t.Errorf("Response Code = %s, want ND", got)
	}
	if got := string(resp.Get("Error Code")); got != "00" {
		t.Errorf("Error Code = %s, want 00", got)
	}
	if got := string(resp.Get("LMK Check Value")); got != h.KCV(16) {
		t.Errorf("LMK Check Value = %s, want %s", got, h.KCV(16))
	}
	if got := string(resp.Get("Firmware Version")); got != "0007-E000" {
		t.Errorf("Firmware Version = %s, want 0007-E000", got)
	}

	// Header + ND + 00 + 16-char KCV + firmware version.
	frame := resp.Build()
	wantLen := 4 + 2 + 2 + 16 + len("0007-E000")
	if len(frame) != 2+wantLen {
		t.Errorf("frame length = %d, want %d", len(frame), 2+wantLen)
	}
	if !bytes.HasPrefix(frame[2:], []byte("SSSSND00")) {
		t.Errorf("frame = %q does not start with SSSSND00", frame)
	}
}

func TestDispatchUnknown(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)
	resp, err := Dispatch(h, &message.UnknownRequest{Code: "XX", Body: []byte("123")})
	if err != nil {
		t.Fatalf("Dispatch() unexpected error: %v", err)
	}
	if got := string(resp.Get("Response Code")); got != "ZZ" {
		t.Errorf("Response Code = %s, want ZZ", got)
	}
	if got := string(resp.Get("Error Code")); got != "00" {
		t.Errorf("Error Code = %s, want 00", got)
	}
}

func TestDispatchRoutesCommands(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)

	resp, err := Dispatch(h, &message.NCRequest{})
	if err != nil {
		t.Fatalf("Dispatch(NC) unexpected error: %v", err)
	}
	if got := string(resp.Get("Response Code")); got != "ND" {
		t.Errorf("Dispatch(NC) Response Code = %s, want ND", got)
	}
}
