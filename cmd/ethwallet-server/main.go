// Command ethwallet-server exposes wallet generation as a local HTTP API.
// The keystore password is prompted once at startup.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/AlexZinkM/eth-paper-wallet/ethereum"
	"github.com/AlexZinkM/eth-paper-wallet/internal/api"
	"github.com/AlexZinkM/eth-paper-wallet/internal/config"
	"github.com/AlexZinkM/eth-paper-wallet/internal/handler"
	"github.com/AlexZinkM/eth-paper-wallet/internal/imaging"
	"github.com/AlexZinkM/eth-paper-wallet/internal/logging"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	if err := logging.Init(config.GetLogLevel()); err != nil {
		return err
	}
	defer logging.Sync()

	if err := config.PromptForPassword(config.EncryptPasswordLabel, true); err != nil {
		return err
	}
	defer config.ClearPassword()

	exporter := ethereum.NewExporter(
		config.GetOutputDir(),
		imaging.NewEncoder(config.GetQRSize(), config.GetIdenticonSize()),
	)
	walletHandler, err := handler.NewWalletHandler(ethereum.NewGenerator(), exporter, config.GetPasswordBytes, config.GetMaxBatch())
	if err != nil {
		return err
	}

	addr := "127.0.0.1:" + config.GetPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.SetupRouter(walletHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.L().Info("listening", zap.String("addr", addr), zap.String("output_dir", config.GetOutputDir()))
	return srv.ListenAndServe()
}
