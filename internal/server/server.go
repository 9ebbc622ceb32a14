// Package server wraps the anet TCP server and drives the command pipeline:
// de-framed payloads go through the codec and dispatcher, built responses go
// back on the same connection in request order.
package server

import (
	"fmt"
	"sync/atomic"
	"time"

	anetserver "github.com/andrei-cloud/anet/server"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/hsm/logic"
	"github.com/andrei-cloud/thalessim/internal/logging"
	"github.com/andrei-cloud/thalessim/internal/message"
)

// logAdapter implements the anet logger on top of zerolog.
type logAdapter struct{}

func (l logAdapter) Print(v ...any) {
	log.Info().Msg(fmt.Sprint(v...))
}

func (l logAdapter) Printf(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func (l logAdapter) Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func (l logAdapter) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

// Server handles HSM frames over TCP. The transport owns the two-byte
// big-endian length framing; the handler sees de-framed payloads.
type Server struct {
	address     string
	srv         *anetserver.Server
	hsmSvc      *hsm.HSM
	activeConns int32
}

// NewServer configures a Server listening on the given address with the
// provided HSM context.
func NewServer(address string, hsmSvc *hsm.HSM) (*Server, error) {
	cfg := &anetserver.ServerConfig{
		MaxConns:        100,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     0 * time.Second, // disable idle connection closure.
		ShutdownTimeout: 5 * time.Second,
		Logger:          logAdapter{},
	}

	s := &Server{
		address: address,
		hsmSvc:  hsmSvc,
	}
	srv, err := anetserver.NewServer(address, anetserver.HandlerFunc(s.handle), cfg)
	if err != nil {
		return nil, fmt.Errorf("server setup failed: %w", err)
	}
	s.srv = srv

	return s, nil
}

// Start begins listening for connections and processing frames.
func (s *Server) Start() error {
	log.Info().
		Str("address", s.address).
		Str("lmk_kcv", s.hsmSvc.KCV(6)).
		Str("firmware", s.hsmSvc.FirmwareVersion).
		Str("header", string(s.hsmSvc.Header)).
		Msg("server started")

	return s.srv.Start()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	return s.srv.Stop()
}

// handle processes one de-framed payload. A nil response with an error drops
// the frame: the client receives nothing and the connection stays open.
func (s *Server) handle(conn *anetserver.ServerConn, data []byte) ([]byte, error) {
	client := conn.Conn.RemoteAddr().String()
	atomic.AddInt32(&s.activeConns, 1)
	defer atomic.AddInt32(&s.activeConns, -1)

	requestID := uuid.NewString()
	start := time.Now()

	req, err := message.DecodePayload(data, s.hsmSvc.Header)
	if err != nil {
		log.Error().
			Str("event", "decode_error").
			Str("client_ip", client).
			Str("request_id", requestID).
			Err(err).
			Msg("dropping malformed frame")

		return nil, err
	}

	logging.LogRequest(client, requestID, req.CommandCode(), data)
	if fields := req.Fields(); fields != nil {
		log.Debug().
			Str("request_id", requestID).
			Str("command", req.CommandCode()).
			Msg("request fields:\n" + message.Trace(fields))
	}

	resp, err := logic.Dispatch(s.hsmSvc, req)
	if err != nil {
		log.Error().
			Str("event", "command_error").
			Str("client_ip", client).
			Str("request_id", requestID).
			Str("command", req.CommandCode()).
			Err(err).
			Msg("command failed, skipping response")

		return nil, err
	}

	payload := resp.Payload()
	logging.LogResponse(client, requestID, req.CommandCode(), string(resp.Get("Response Code")), payload)
	log.Debug().
		Str("request_id", requestID).
		Str("duration", time.Since(start).String()).
		Msg("response fields:\n" + resp.Trace())

	return payload, nil
}
