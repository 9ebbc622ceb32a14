package logic

import (
	"github.com/andrei-cloud/thalessim/internal/errorcodes"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/message"
	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
	"github.com/rs/zerolog/log"
)

// ExecuteCY verifies a card verification value. Validation failures and
// mismatches both yield an Error Code 01 response on the same frame.
func ExecuteCY(h *hsm.HSM, req *message.CYRequest) *message.Response {
	resp := message.NewResponse(h.Header)
	resp.Set("Response Code", []byte("CZ"))

	code := errorcodes.Err00
	cvv, err := cryptoutils.GetVisaCVV(req.PAN, req.ExpiryDate, req.ServiceCode, req.CVK.Hex)
	switch {
	case err != nil:
		log.Warn().
			Err(err).
			Str("command", "CY").
			Str("status", hsmErrorCode(err).Error()).
			Msg("cvv calculation failed")
		code = errorcodes.Err01
	case cvv != req.CVV:
		log.Debug().
			Str("command", "CY").
			Str("calculated", cvv).
			Str("received", req.CVV).
			Msg("cvv mismatch")
		code = errorcodes.Err01
	}
	resp.Set("Error Code", []byte(code.CodeOnly()))

	return resp
}
