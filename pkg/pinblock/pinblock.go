// Package pinblock implements the ISO 9564-1 format 0 PIN block codec used on
// the wire (Thales format code 01).
package pinblock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
)

const (
	// MinPinLength and MaxPinLength bound the clear PIN recovered from a block.
	MinPinLength = 4
	MaxPinLength = 8

	accountNumberLength = 12
	blockHexLength      = 16
)

var (
	// ErrInvalidPinLength reports a decoded PIN length outside [4, 8].
	ErrInvalidPinLength = errors.New("invalid pin length")
	// ErrPinNonNumeric reports non-digit characters inside the decoded PIN.
	ErrPinNonNumeric = errors.New("pin contains non-numeric characters")
	// ErrInvalidAccountNumber reports an account number field that is not
	// twelve decimal digits.
	ErrInvalidAccountNumber = errors.New("invalid account number")
)

// accountField builds the hex-ASCII account half of the block: four zeros
// followed by the twelve right-most PAN digits excluding the check digit.
func accountField(accountNumber string) (string, error) {
	if len(accountNumber) != accountNumberLength {
		return "", fmt.Errorf("%w: %d digits", ErrInvalidAccountNumber, len(accountNumber))
	}
	for _, c := range accountNumber {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: non-digit characters", ErrInvalidAccountNumber)
		}
	}

	return "0000" + accountNumber, nil
}

// EncodeISO0 builds a clear format 0 PIN block from a PIN and the twelve-digit
// account number field.
func EncodeISO0(pin, accountNumber string) (string, error) {
	if len(pin) < MinPinLength || len(pin) > MaxPinLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidPinLength, len(pin))
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return "", ErrPinNonNumeric
		}
	}

	acct, err := accountField(accountNumber)
	if err != nil {
		return "", err
	}

	pinField := fmt.Sprintf("%02X%s", len(pin), pin)
	pinField += strings.Repeat("F", blockHexLength-len(pinField))

	xored, err := cryptoutils.XOR([]byte(pinField), []byte(acct))
	if err != nil {
		return "", err
	}

	return string(xored), nil
}

// ExtractISO0 recovers the clear PIN from a decrypted format 0 PIN block. The
// first byte of the XORed block carries the PIN length; the digits follow.
func ExtractISO0(pinBlockHex, accountNumber string) (string, error) {
	acct, err := accountField(accountNumber)
	if err != nil {
		return "", err
	}

	xored, err := cryptoutils.XOR([]byte(pinBlockHex), []byte(acct))
	if err != nil {
		return "", err
	}
	pinStr := string(xored)

	pinLength, err := strconv.ParseInt(pinStr[:2], 16, 32)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPinLength, pinStr[:2])
	}
	if pinLength < MinPinLength || pinLength > MaxPinLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidPinLength, pinLength)
	}

	pin := pinStr[2 : 2+pinLength]
	for _, c := range pin {
		if c < '0' || c > '9' {
			return "", ErrPinNonNumeric
		}
	}

	return pin, nil
}
