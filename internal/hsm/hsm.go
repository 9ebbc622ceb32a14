// Package hsm holds the local master key context shared by all command
// handlers: LMK-wrapped key unwrapping, PIN block decryption and the LMK
// check value.
package hsm

import (
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
)

// DefaultLMKHex is the LMK used when none is configured.
const DefaultLMKHex = "deadbeefdeadbeefdeadbeefdeadbeef"

// FirmwareVersion is reported by the NC diagnostics command.
const FirmwareVersion = "0007-E000"

const pinBlockRawLength = 8

// HSM is the immutable per-process context: the LMK, the optional message
// header and the firmware version string. Safe for concurrent use.
type HSM struct {
	Header          []byte
	FirmwareVersion string

	lmk    []byte
	cipher cipher.Block
}

// New creates an HSM context from a 32-hex-character LMK. A malformed or
// wrong-length LMK is a startup failure.
func New(lmkHex string, header []byte) (*HSM, error) {
	raw, err := cryptoutils.B2Raw([]byte(lmkHex))
	if err != nil {
		return nil, err
	}
	if len(raw) != cryptoutils.KeyLengthDouble {
		return nil, fmt.Errorf("%w: lmk must be 16 bytes, got %d", cryptoutils.ErrInvalidKeyLength, len(raw))
	}

	block, err := des.NewTripleDESCipher(cryptoutils.PrepareTripleDESKey(raw))
	if err != nil {
		return nil, err
	}

	return &HSM{
		Header:          header,
		FirmwareVersion: FirmwareVersion,
		lmk:             raw,
		cipher:          block,
	}, nil
}

// LMKHex returns the LMK as uppercase hex.
func (h *HSM) LMKHex() string {
	return cryptoutils.Raw2Str(h.lmk)
}

// KCV returns the leading n hex characters of the LMK check value.
func (h *HSM) KCV(n int) string {
	kcv, err := cryptoutils.KeyCV(h.LMKHex(), n)
	if err != nil {
		// The LMK was validated at construction; only an out-of-range n fails.
		return ""
	}

	return kcv
}

// EncryptUnderLMK encrypts a clear key under the LMK, block by block.
func (h *HSM) EncryptUnderLMK(key []byte) ([]byte, error) {
	if len(key) == 0 || len(key)%pinBlockRawLength != 0 {
		return nil, fmt.Errorf("%w: %d bytes", cryptoutils.ErrInvalidKeyLength, len(key))
	}

	out := make([]byte, len(key))
	cryptoutils.NewECBEncrypter(h.cipher).CryptBlocks(out, key)

	return out, nil
}

// UnwrapKey decrypts an LMK-wrapped key body (hex-ASCII, scheme tag already
// stripped) and returns the 16 raw key bytes.
func (h *HSM) UnwrapKey(keyHex string) ([]byte, error) {
	raw, err := cryptoutils.B2Raw([]byte(keyHex))
	if err != nil {
		return nil, err
	}
	if len(raw) != cryptoutils.KeyLengthDouble {
		return nil, fmt.Errorf("%w: %d bytes", cryptoutils.ErrInvalidKeyLength, len(raw))
	}

	clear := make([]byte, len(raw))
	cryptoutils.NewECBDecrypter(h.cipher).CryptBlocks(clear, raw)

	return clear, nil
}

// DecryptPINBlock unwraps the terminal PIN key and 3DES-ECB decrypts the
// eight-byte PIN block, returning it as 16 hex characters.
func (h *HSM) DecryptPINBlock(pinBlockHex, tpkHex string) (string, error) {
	tpk, err := h.UnwrapKey(tpkHex)
	if err != nil {
		return "", err
	}

	raw, err := cryptoutils.B2Raw([]byte(pinBlockHex))
	if err != nil {
		return "", err
	}
	if len(raw) != pinBlockRawLength {
		return "", fmt.Errorf("%w: pin block must be 8 bytes, got %d", cryptoutils.ErrLengthMismatch, len(raw))
	}

	block, err := des.NewTripleDESCipher(cryptoutils.PrepareTripleDESKey(tpk))
	if err != nil {
		return "", err
	}
	clear := make([]byte, len(raw))
	block.Decrypt(clear, raw)

	return cryptoutils.Raw2Str(clear), nil
}
