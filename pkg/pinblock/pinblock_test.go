//nolint:all // test package
package pinblock

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractISO0(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		pinBlock      string
		accountNumber string
		want          string
		wantErr       error
		wantErrText   string
	}{
		{
			name:          "pin 1234",
			pinBlock:      "0412BCEEDCBA9876",
			accountNumber: "881123456789",
			want:          "1234",
		},
		{
			name:          "non-numeric pin",
			pinBlock:      "041267EEDCBA9876",
			accountNumber: "881123456789",
			wantErr:       ErrPinNonNumeric,
		},
		{
			name:          "pin length 9",
			pinBlock:      "091267EEDCBA9876",
			accountNumber: "881123456789",
			wantErr:       ErrInvalidPinLength,
			wantErrText:   "9",
		},
		{
			name:          "pin length 223",
			pinBlock:      "DF1267EEDCBA9876",
			accountNumber: "881123456789",
			wantErr:       ErrInvalidPinLength,
			wantErrText:   "223",
		},
		{
			name:          "short account number",
			pinBlock:      "0412BCEEDCBA9876",
			accountNumber: "88112345678",
			wantErr:       ErrInvalidAccountNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ExtractISO0(tt.pinBlock, tt.accountNumber)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExtractISO0() error = %v, want %v", err, tt.wantErr)
				}
				if tt.wantErrText != "" && !strings.Contains(err.Error(), tt.wantErrText) {
					t.Fatalf("ExtractISO0() error %q does not mention %q", err, tt.wantErrText)
				}

				return
			}
			if err != nil {
				t.Fatalf("ExtractISO0() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractISO0() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeISO0(t *testing.T) {
	t.Parallel()

	got, err := EncodeISO0("1234", "881123456789")
	if err != nil {
		t.Fatalf("EncodeISO0() unexpected error: %v", err)
	}
	if got != "0412BCEEDCBA9876" {
		t.Errorf("EncodeISO0() = %s, want 0412BCEEDCBA9876", got)
	}
}

func TestEncodeISO0Validation(t *testing.T) {
	t.Parallel()

	if _, err := EncodeISO0("123", "881123456789"); !errors.Is(err, ErrInvalidPinLength) {
		t.Errorf("short pin error = %v, want ErrInvalidPinLength", err)
	}
	if _, err := EncodeISO0("123456789", "881123456789"); !errors.Is(err, ErrInvalidPinLength) {
		t.Errorf("long pin error = %v, want ErrInvalidPinLength", err)
	}
	if _, err := EncodeISO0("12A4", "881123456789"); !errors.Is(err, ErrPinNonNumeric) {
		t.Errorf("non-numeric pin error = %v, want ErrPinNonNumeric", err)
	}
	if _, err := EncodeISO0("1234", "8811234567891"); !errors.Is(err, ErrInvalidAccountNumber) {
		t.Errorf("long account error = %v, want ErrInvalidAccountNumber", err)
	}
}

// TestRoundTrip verifies extract(encode(pin)) == pin across supported lengths.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	pins := []string{"1234", "92389", "000000", "7654321", "88888888"}
	for _, pin := range pins {
		block, err := EncodeISO0(pin, "552000000012")
		if err != nil {
			t.Fatalf("EncodeISO0(%q) error: %v", pin, err)
		}
		got, err := ExtractISO0(block, "552000000012")
		if err != nil {
			t.Fatalf("ExtractISO0(%q) error: %v", block, err)
		}
		if got != pin {
			t.Errorf("round trip of %q gave %q", pin, got)
		}
	}
}
