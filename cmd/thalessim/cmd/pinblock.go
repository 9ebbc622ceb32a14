package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/thalessim/pkg/pinblock"
)

var (
	pin           string
	accountNumber string
	extract       bool
	pinblockHex   string
)

// pinblockCmd represents the pinblock command.
var pinblockCmd = &cobra.Command{
	Use:   "pinblock",
	Short: "Generate an ISO format 0 PIN block or extract the PIN from one",
	Long: `Generate a clear ISO 9564-1 format 0 PIN block from a PIN and the
twelve-digit account number field, or extract the clear PIN from a block
using the --extract flag.`,
	Example: `  # Generate an ISO format 0 PIN block
  thalessim pinblock --pin 1234 --account 881123456789

  # Extract the PIN from a PIN block
  thalessim pinblock --extract --pinblock 0412BCEEDCBA9876 --account 881123456789`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if extract {
			if pinblockHex == "" || accountNumber == "" {
				return errors.New("pinblock and account are required for extraction")
			}

			result, err := pinblock.ExtractISO0(pinblockHex, accountNumber)
			if err != nil {
				return err
			}

			cmd.Printf("pin extracted: %s\n", result)

			return nil
		}

		if pin == "" || accountNumber == "" {
			return errors.New("pin and account are required")
		}

		result, err := pinblock.EncodeISO0(pin, accountNumber)
		if err != nil {
			return err
		}

		cmd.Printf("pin block generated: %s\n", result)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(pinblockCmd)

	pinblockCmd.Flags().StringVar(&pin, "pin", "", "PIN number (4-8 digits)")
	pinblockCmd.Flags().
		StringVar(&accountNumber, "account", "", "12 right-most PAN digits excluding the check digit")
	pinblockCmd.Flags().BoolVar(&extract, "extract", false, "extract clear PIN from PIN block")
	pinblockCmd.Flags().
		StringVar(&pinblockHex, "pinblock", "", "PIN block hex string to extract PIN from")
}
