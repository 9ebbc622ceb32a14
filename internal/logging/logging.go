// Package logging configures zerolog and provides the structured frame logs.
package logging

import (
	"encoding/hex"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the zerolog logger with the specified debug mode and
// output format.
func InitLogger(debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		})
	} else {
		log.Logger = base
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// LogRequest logs a received frame with structured fields.
func LogRequest(clientIP, requestID, command string, requestData []byte) {
	log.Info().
		Str("event", "request_received").
		Str("client_ip", clientIP).
		Str("request_id", requestID).
		Str("command", command).
		Str("request_hex", hex.EncodeToString(requestData)).
		Msg("received command")
}

// LogResponse logs a sent response with structured fields.
func LogResponse(clientIP, requestID, command, responseCommand string, responseData []byte) {
	log.Info().
		Str("event", "response_sent").
		Str("client_ip", clientIP).
		Str("request_id", requestID).
		Str("command", command).
		Str("response_command", responseCommand).
		Str("response_hex", hex.EncodeToString(responseData)).
		Msg("sent response")
}
