// Package logic implements the command handlers: each takes the HSM context
// and a typed request and builds the response.
package logic

import (
	"fmt"

	"github.com/andrei-cloud/thalessim/internal/errorcodes"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/message"
	"github.com/rs/zerolog/log"
)

// Dispatch routes a decoded request to its command handler. A nil error with
// a response is the normal path; an error means the frame is dropped and no
// response is written.
func Dispatch(h *hsm.HSM, req message.Request) (*message.Response, error) {
	switch r := req.(type) {
	case *message.NCRequest:
		return ExecuteNC(h), nil
	case *message.DCRequest:
		return ExecuteDC(h, r), nil
	case *message.CARequest:
		return ExecuteCA(h, r)
	case *message.CYRequest:
		return ExecuteCY(h, r), nil
	case *message.UnknownRequest:
		log.Warn().Str("command", r.Code).Msg("unsupported command code")

		resp := message.NewResponse(h.Header)
		resp.Set("Response Code", []byte("ZZ"))
		resp.Set("Error Code", []byte(errorcodes.Err00.CodeOnly()))

		return resp, nil
	default:
		return nil, fmt.Errorf("unhandled request type %T", req)
	}
}
