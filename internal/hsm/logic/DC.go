package logic

import (
	"errors"
	"fmt"

	"github.com/andrei-cloud/thalessim/internal/errorcodes"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/message"
	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
	"github.com/andrei-cloud/thalessim/pkg/pinblock"
	"github.com/rs/zerolog/log"
)

var errPVVMismatch = errors.New("pvv mismatch")

// ExecuteDC verifies a PIN against its Visa PVV. Validation failures and
// mismatches both yield an Error Code 01 response on the same frame.
func ExecuteDC(h *hsm.HSM, req *message.DCRequest) *message.Response {
	resp := message.NewResponse(h.Header)
	resp.Set("Response Code", []byte("DD"))

	code := errorcodes.Err00
	if err := verifyPIN(h, req); err != nil {
		log.Warn().
			Err(err).
			Str("command", "DC").
			Str("status", hsmErrorCode(err).Error()).
			Msg("pin verification failed")
		code = errorcodes.Err01
	}
	resp.Set("Error Code", []byte(code.CodeOnly()))

	return resp
}

func verifyPIN(h *hsm.HSM, req *message.DCRequest) error {
	clearBlock, err := h.DecryptPINBlock(req.PINBlock, req.TPK.Hex)
	if err != nil {
		return err
	}

	pin, err := pinblock.ExtractISO0(clearBlock, req.AccountNumber)
	if err != nil {
		return err
	}

	pvv, err := cryptoutils.GetVisaPVV(req.AccountNumber, req.PVKI, pin, req.PVK.Hex)
	if err != nil {
		return err
	}

	if pvv != req.PVV {
		return fmt.Errorf("%w: calculated %s, received %s", errPVVMismatch, pvv, req.PVV)
	}

	return nil
}
