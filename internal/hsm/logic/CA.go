package logic

import (
	"crypto/des"
	"errors"
	"fmt"
	"strconv"

	"github.com/andrei-cloud/thalessim/internal/errorcodes"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/message"
	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
	"github.com/rs/zerolog/log"
)

// iso0FormatCode is the only PIN block format the translation accepts.
const iso0FormatCode = "01"

var (
	// ErrUnsupportedTranslation reports differing source and destination
	// PIN block formats.
	ErrUnsupportedTranslation = errors.New("unsupported pin block translation")
	// ErrUnsupportedFormat reports a PIN block format other than ISO-0.
	ErrUnsupportedFormat = errors.New("unsupported pin block format")
	// ErrPinLengthExceeded reports a decrypted PIN longer than the request's
	// Maximum PIN Length field allows.
	ErrPinLengthExceeded = errors.New("pin length exceeds maximum")
)

// ExecuteCA translates a PIN block encrypted under the TPK to encryption
// under the destination key. Translation errors are fatal to the frame: the
// session driver logs them and writes no response.
func ExecuteCA(h *hsm.HSM, req *message.CARequest) (*message.Response, error) {
	if req.SourceFormat != req.DestFormat {
		return nil, fmt.Errorf(
			"%w: cannot translate pin block from format %s to format %s",
			ErrUnsupportedTranslation, req.SourceFormat, req.DestFormat,
		)
	}
	if req.SourceFormat != iso0FormatCode {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.SourceFormat)
	}

	clearBlock, err := h.DecryptPINBlock(req.SourcePINBlock, req.TPK.Hex)
	if err != nil {
		return nil, err
	}
	pinLength := clearBlock[:2]

	maxLen, err := strconv.Atoi(req.MaxPINLength)
	if err != nil {
		return nil, fmt.Errorf("invalid maximum pin length %q: %w", req.MaxPINLength, err)
	}
	decodedLen, err := strconv.ParseInt(pinLength, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid pin length nibble %q: %w", pinLength, err)
	}
	if int(decodedLen) > maxLen {
		return nil, fmt.Errorf("%w: %d > %d", ErrPinLengthExceeded, decodedLen, maxLen)
	}

	destKey, err := cryptoutils.B2Raw([]byte(req.DestKey.Hex))
	if err != nil {
		return nil, err
	}
	if len(destKey) != cryptoutils.KeyLengthDouble {
		return nil, fmt.Errorf(
			"%w: destination key must be 16 bytes, got %d",
			cryptoutils.ErrInvalidKeyLength, len(destKey),
		)
	}

	rawBlock, err := cryptoutils.B2Raw([]byte(clearBlock))
	if err != nil {
		return nil, err
	}
	block, err := des.NewTripleDESCipher(cryptoutils.PrepareTripleDESKey(destKey))
	if err != nil {
		return nil, err
	}
	translated := make([]byte, len(rawBlock))
	block.Encrypt(translated, rawBlock)

	log.Debug().
		Str("command", "CA").
		Str("pin_length", pinLength).
		Str("translated_block", cryptoutils.Raw2Str(translated)).
		Msg("pin block translated")

	resp := message.NewResponse(h.Header)
	resp.Set("Response Code", []byte("CB"))
	resp.Set("Error Code", []byte(errorcodes.Err00.CodeOnly()))
	resp.Set("PIN Length", []byte(pinLength))
	resp.Set("Destination PIN Block", cryptoutils.Raw2B(translated))
	resp.Set("Destination PIN Block format", []byte(req.DestFormat))

	return resp, nil
}
