package logic

import (
	"errors"

	"github.com/andrei-cloud/thalessim/internal/errorcodes"
	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
	"github.com/andrei-cloud/thalessim/pkg/pinblock"
)

// hsmErrorCode maps a pipeline failure to the closest Thales status code for
// diagnostics logs. On the wire every recoverable failure is reported as 01.
func hsmErrorCode(err error) errorcodes.HSMError {
	switch {
	case errors.Is(err, pinblock.ErrInvalidPinLength):
		return errorcodes.Err24
	case errors.Is(err, pinblock.ErrPinNonNumeric):
		return errorcodes.Err20
	case errors.Is(err, pinblock.ErrInvalidAccountNumber):
		return errorcodes.Err15
	case errors.Is(err, cryptoutils.ErrInvalidKeyLength):
		return errorcodes.Err27
	case errors.Is(err, cryptoutils.ErrMalformedHex):
		return errorcodes.Err15
	case errors.Is(err, cryptoutils.ErrInvalidPanLength):
		return errorcodes.Err15
	default:
		return errorcodes.Err01
	}
}
