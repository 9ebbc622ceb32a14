package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()

	return buf.String(), err
}

func TestPinblockCommand_Generate(t *testing.T) {
	output, err := executeCommand(
		rootCmd,
		"pinblock",
		"--pin", "1234",
		"--account", "881123456789",
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "0412BCEEDCBA9876") {
		t.Fatalf("expected generated block in output, got %q", output)
	}
}

func TestPinblockCommand_Extract(t *testing.T) {
	output, err := executeCommand(
		rootCmd,
		"pinblock",
		"--extract",
		"--pinblock", "0412BCEEDCBA9876",
		"--account", "881123456789",
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "1234") {
		t.Fatalf("expected extracted pin in output, got %q", output)
	}
}

func TestPinblockCommand_MissingArguments(t *testing.T) {
	extract = false
	pinblockHex = ""
	accountNumber = ""

	_, err := executeCommand(rootCmd, "pinblock", "--pin", "1234", "--account", "")
	if err == nil {
		t.Fatalf("expected an error, got none")
	}
}

func TestPinblockCommand_BadPinLength(t *testing.T) {
	_, err := executeCommand(
		rootCmd,
		"pinblock",
		"--pin", "123456789",
		"--account", "881123456789",
	)
	if err == nil || !strings.Contains(err.Error(), "invalid pin length") {
		t.Fatalf("expected invalid pin length error, got %v", err)
	}
}
