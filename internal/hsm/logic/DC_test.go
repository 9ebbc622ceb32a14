//nolint:all // test package
package logic

import (
	"crypto/des"
	"testing"

	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/message"
	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
	"github.com/andrei-cloud/thalessim/pkg/pinblock"
)

const (
	dcAccountNumber = "881123456789"
	dcPVKHex        = "1234567890ABCDEF1234567890ABCDEF"
)

var dcClearTPK = []byte{
	0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF,
	0xFE, 0xDC, 0xBA, 0x98, 0x76, 0x54, 0x32, 0x10,
}

// dcRequest wraps the clear TPK under the LMK and encrypts the given clear
// PIN block under it, yielding a request as a terminal would send it.
func dcRequest(t *testing.T, h *hsm.HSM, clearBlockHex, pvv string) *message.DCRequest {
	t.Helper()

	wrapped, err := h.EncryptUnderLMK(dcClearTPK)
	if err != nil {
		t.Fatalf("EncryptUnderLMK() unexpected error: %v", err)
	}

	block, err := des.NewTripleDESCipher(cryptoutils.PrepareTripleDESKey(dcClearTPK))
	if err != nil {
		t.Fatal(err)
	}
	rawBlock, err := cryptoutils.B2Raw([]byte(clearBlockHex))
	if err != nil {
		t.Fatal(err)
	}
	encrypted := make([]byte, len(rawBlock))
	block.Encrypt(encrypted, rawBlock)

	return &message.DCRequest{
		TPK:            message.KeyField{Scheme: message.SchemeU, Hex: cryptoutils.Raw2Str(wrapped)},
		PVK:            message.KeyField{Hex: dcPVKHex},
		PINBlock:       cryptoutils.Raw2Str(encrypted),
		PINBlockFormat: "01",
		AccountNumber:  dcAccountNumber,
		PVKI:           "1",
		PVV:            pvv,
	}
}

func TestExecuteDCMatch(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)

	clearBlock, err := pinblock.EncodeISO0("1234", dcAccountNumber)
	if err != nil {
		t.Fatal(err)
	}
	pvv, err := cryptoutils.GetVisaPVV(dcAccountNumber, "1", "1234", dcPVKHex)
	if err != nil {
		t.Fatal(err)
	}

	resp := ExecuteDC(h, dcRequest(t, h, clearBlock, pvv))
	if got := string(resp.Get("Response Code")); got != "DD" {
		t.Errorf("Response Code = %s, want DD", got)
	}
	if got := string(resp.Get("Error Code")); got != "00" {
		t.Errorf("Error Code = %s, want 00", got)
	}
}

func TestExecuteDCMismatch(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)

	clearBlock, err := pinblock.EncodeISO0("1234", dcAccountNumber)
	if err != nil {
		t.Fatal(err)
	}

	resp := ExecuteDC(h, dcRequest(t, h, clearBlock, "0000"))
	if got := string(resp.Get("Error Code")); got != "01" {
		t.Errorf("Error Code = %s, want 01", got)
	}
}

// TestExecuteDCBadPinLength feeds a PIN block whose decoded length falls
// outside [4, 8]; the command answers 01 instead of dropping the frame.
func TestExecuteDCBadPinLength(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)

	resp := ExecuteDC(h, dcRequest(t, h, "091267EEDCBA9876", "1234"))
	if got := string(resp.Get("Error Code")); got != "01" {
		t.Errorf("Error Code = %s, want 01", got)
	}
}

func TestExecuteDCBadTPK(t *testing.T) {
	t.Parallel()

	h := newTestHSM(t)

	clearBlock, err := pinblock.EncodeISO0("1234", dcAccountNumber)
	if err != nil {
		t.Fatal(err)
	}

	req := dcRequest(t, h, clearBlock, "1234")
	req.TPK = message.KeyField{Scheme: message.SchemeU, Hex: "ZZZZ"}
	resp := ExecuteDC(h, req)
	if got := string(resp.Get("Error Code")); got != "01" {
		t.Errorf("Error Code = %s, want 01", got)
	}
}
