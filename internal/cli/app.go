package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/AlexZinkM/eth-paper-wallet/ethereum"
	"github.com/AlexZinkM/eth-paper-wallet/internal/config"

	"github.com/fatih/color"
)

const menu = `
  1) Generate one wallet
  2) Generate several wallets
  3) Rebuild wallet from private key
  4) Exit
`

var (
	green  = color.New(color.FgGreen).SprintFunc()
	amber  = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	header = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// PasswordPrompt asks for the keystore password; confirm requests it twice
type PasswordPrompt func(confirm bool) ([]byte, error)

// App is the interactive wallet generator
type App struct {
	generator *ethereum.Generator
	exporter  *ethereum.Exporter
	in        *bufio.Reader
	out       io.Writer
	password  PasswordPrompt
	maxBatch  int
}

// NewApp wires the interactive front end
func NewApp(generator *ethereum.Generator, exporter *ethereum.Exporter, in io.Reader, out io.Writer, password PasswordPrompt, maxBatch int) *App {
	return &App{
		generator: generator,
		exporter:  exporter,
		in:        bufio.NewReader(in),
		out:       out,
		password:  password,
		maxBatch:  maxBatch,
	}
}

// Run shows the menu, performs the chosen action and returns.
func (a *App) Run() error {
	fmt.Fprintln(a.out, header("Ethereum paper wallet generator"))
	fmt.Fprint(a.out, menu)

	choice, err := config.PromptLine(a.in, a.out, "Select an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.generate(1)
	case "2":
		count, err := config.PromptForCount(a.in, a.out, a.maxBatch)
		if err != nil {
			return err
		}
		return a.generate(count)
	case "3":
		return a.rebuild()
	case "4", "q", "exit":
		return nil
	default:
		return fmt.Errorf("unknown option %q", choice)
	}
}

func (a *App) generate(count int) error {
	password, err := a.password(true)
	if err != nil {
		return err
	}
	defer clear(password)

	_, err = a.generator.GenerateBatch(password, count, ethereum.WithOnWallet(func(index int, w *ethereum.Wallet) error {
		defer w.Wipe()
		art, err := a.exporter.Export(w, index)
		if err != nil {
			return err
		}
		a.display(index, count, w, art)
		return nil
	}))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %d wallet(s) written to %s\n", green("done:"), count, a.exporter.Dir())
	return nil
}

func (a *App) rebuild() error {
	keyHex, err := config.PromptLine(a.in, a.out, "Private key (64 hex characters): ")
	if err != nil {
		return err
	}
	password, err := a.password(true)
	if err != nil {
		return err
	}
	defer clear(password)

	w, err := a.generator.ImportPrivateKey(keyHex, password)
	if err != nil {
		return err
	}
	defer w.Wipe()

	art, err := a.exporter.Export(w, 0)
	if err != nil {
		return err
	}
	a.display(0, 1, w, art)
	return nil
}

func (a *App) display(index, count int, w *ethereum.Wallet, art *ethereum.Artifacts) {
	fmt.Fprintf(a.out, "\n%s\n", bold(fmt.Sprintf("Wallet %d/%d", index+1, count)))
	fmt.Fprintf(a.out, "Private Key: %s\n", amber(w.PrivateKeyHex()))
	fmt.Fprintf(a.out, "Public Key : %s\n", w.PublicKeyHex())
	fmt.Fprintf(a.out, "Keccak Hash: %s\n", w.PublicKeyHashHex())
	fmt.Fprintf(a.out, "Address    : %s\n", green(w.Address))
	fmt.Fprintf(a.out, "Saved to   : %s\n", art.Dir)
}

// ErrorMessage formats err for the terminal
func ErrorMessage(err error) string {
	if se, ok := ethereum.IsStageError(err); ok {
		return fmt.Sprintf("%s %s failed for wallet %d: %v", red("error:"), se.Stage, se.Index+1, se.Err)
	}
	return fmt.Sprintf("%s %v", red("error:"), err)
}
