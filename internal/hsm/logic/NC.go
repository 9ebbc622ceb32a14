package logic

import (
	"github.com/andrei-cloud/thalessim/internal/errorcodes"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/message"
	"github.com/rs/zerolog/log"
)

const lmkCheckValueLength = 16

// ExecuteNC answers the diagnostics command with the LMK check value and the
// firmware version.
func ExecuteNC(h *hsm.HSM) *message.Response {
	kcv := h.KCV(lmkCheckValueLength)
	log.Debug().
		Str("command", "NC").
		Str("kcv", kcv).
		Str("firmware", h.FirmwareVersion).
		Msg("diagnostics data")

	resp := message.NewResponse(h.Header)
	resp.Set("Response Code", []byte("ND"))
	resp.Set("Error Code", []byte(errorcodes.Err00.CodeOnly()))
	resp.Set("LMK Check Value", []byte(kcv))
	resp.Set("Firmware Version", []byte(h.FirmwareVersion))

	return resp
}
