package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andrei-cloud/thalessim/internal/config"
	"github.com/andrei-cloud/thalessim/internal/hsm"
	"github.com/andrei-cloud/thalessim/internal/logging"
	"github.com/andrei-cloud/thalessim/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HSM simulator server",
	Long:  `Start the HSM simulator to process host commands over TCP.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()

		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("lmk") {
			cfg.HSM.LMK, _ = cmd.Flags().GetString("lmk")
		}
		if cmd.Flags().Changed("header") {
			cfg.HSM.Header, _ = cmd.Flags().GetString("header")
		}

		debug, _ := cmd.Flags().GetBool("debug")
		logLevel, _ := cmd.Root().PersistentFlags().GetString("log-level")
		logFormat, _ := cmd.Root().PersistentFlags().GetString("log-format")
		logging.InitLogger(debug || logLevel == "debug", logFormat == "human")

		hsmInstance, err := hsm.New(cfg.HSM.LMK, []byte(cfg.HSM.Header))
		if err != nil {
			return fmt.Errorf("failed to initialize HSM instance: %w", err)
		}

		serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv, err := server.NewServer(serverAddr, hsmInstance)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		if err := srv.Start(); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		stopChan := make(chan os.Signal, 1)
		signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-stopChan
		log.Info().Msgf("signal %v received, shutting down server", sig)

		return srv.Stop()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "interface to listen on (all by default)")
	serveCmd.Flags().Int("port", 1500, "TCP port to listen on")
	serveCmd.Flags().String("lmk", hsm.DefaultLMKHex, "local master key in hex")
	serveCmd.Flags().String("header", "", "message header expected on every frame")
	serveCmd.Flags().Bool("debug", false, "enable debug tracing of frames and fields")
}
