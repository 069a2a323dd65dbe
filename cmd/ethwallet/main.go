// Command ethwallet interactively generates Ethereum wallets: keystore file,
// QR codes, identicon and a plain text backup per wallet.
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/eth-paper-wallet/ethereum"
	"github.com/AlexZinkM/eth-paper-wallet/internal/cli"
	"github.com/AlexZinkM/eth-paper-wallet/internal/config"
	"github.com/AlexZinkM/eth-paper-wallet/internal/imaging"
	"github.com/AlexZinkM/eth-paper-wallet/internal/logging"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.Init(config.GetLogLevel()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logging.Sync()

	exporter := ethereum.NewExporter(
		config.GetOutputDir(),
		imaging.NewEncoder(config.GetQRSize(), config.GetIdenticonSize()),
	)

	app := cli.NewApp(ethereum.NewGenerator(), exporter, os.Stdin, os.Stdout, promptPassword, config.GetMaxBatch())
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
		logging.Sync()
		os.Exit(1)
	}
}

func promptPassword(confirm bool) ([]byte, error) {
	if err := config.PromptForPassword(config.EncryptPasswordLabel, confirm); err != nil {
		return nil, err
	}
	defer config.ClearPassword()
	return config.GetPasswordBytes()
}
