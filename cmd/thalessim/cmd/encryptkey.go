package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei-cloud/thalessim/internal/config"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/pkg/cryptoutils"
)

var encryptKeyCmd = &cobra.Command{
	Use:   "encryptkey",
	Short: "Encrypt a clear key under the LMK",
	Long: `Encrypt a clear double-length key under the LMK and print the U-tagged
wrapped key together with its Key Check Value. The output is accepted by the
DC and CA commands as a TPK field.`,
	Example: `  thalessim encryptkey --key 0123456789ABCDEFFEDCBA9876543210`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		clearKeyHex, _ := cmd.Flags().GetString("key")
		lmkHex, _ := cmd.Flags().GetString("lmk")
		fixParity, _ := cmd.Flags().GetBool("fix-parity")

		if lmkHex == "" {
			lmkHex = config.Get().HSM.LMK
		}

		clearKey, err := cryptoutils.B2Raw([]byte(clearKeyHex))
		if err != nil {
			return fmt.Errorf("invalid key format: %w", err)
		}
		if len(clearKey) != cryptoutils.KeyLengthDouble {
			return fmt.Errorf(
				"%w: key must be %d bytes, got %d",
				cryptoutils.ErrInvalidKeyLength, cryptoutils.KeyLengthDouble, len(clearKey),
			)
		}

		if fixParity {
			clearKey = cryptoutils.FixKeyParity(clearKey)
		} else if !cryptoutils.CheckKeyParity(clearKey) {
			cmd.PrintErrln("warning: key parity is not odd; use --fix-parity to adjust")
		}

		hsmInstance, err := hsm.New(lmkHex, nil)
		if err != nil {
			return fmt.Errorf("invalid lmk: %w", err)
		}

		wrapped, err := hsmInstance.EncryptUnderLMK(clearKey)
		if err != nil {
			return err
		}

		kcv, err := cryptoutils.KeyCV(cryptoutils.Raw2Str(clearKey), 6)
		if err != nil {
			return err
		}

		cmd.Printf("Encrypted Key: U%s\n", cryptoutils.Raw2Str(wrapped))
		cmd.Printf("KCV: %s\n", kcv)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptKeyCmd)

	encryptKeyCmd.Flags().String("key", "", "clear double-length key in hex")
	encryptKeyCmd.Flags().String("lmk", "", "LMK in hex (defaults to the configured LMK)")
	encryptKeyCmd.Flags().Bool("fix-parity", false, "force odd parity on the clear key before wrapping")

	if err := encryptKeyCmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}
}
