package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	EncryptPasswordLabel = "Enter a password to encrypt your private key: "
	DecryptPasswordLabel = "Keystore password: "
)

var passwordBytes []byte

// promptOutput receives the prompt labels
var promptOutput io.Writer = os.Stderr

// ReadPasswordFunc reads one hidden line from the terminal
var ReadPasswordFunc = func() ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// PromptForPassword prints label and reads the keystore password from the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// With confirm set the password must be typed twice.
func PromptForPassword(label string, confirm bool) error {
	raw, err := readHidden(label)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	if confirm {
		again, err := readHidden("Repeat password: ")
		if err != nil {
			clear(raw)
			return err
		}
		match := bytes.Equal(raw, again)
		clear(again)
		if !match {
			clear(raw)
			return errors.New("passwords do not match")
		}
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

func readHidden(label string) ([]byte, error) {
	fmt.Fprint(promptOutput, label)
	defer fmt.Fprintln(promptOutput)

	raw, err := ReadPasswordFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return raw, nil
}

// SetPassword stores a copy of password in memory, replacing any previous one.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// ClearPassword wipes the stored password
func ClearPassword() {
	clear(passwordBytes)
	passwordBytes = nil
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// PromptLine prints label and returns the next trimmed line from r.
func PromptLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptForCount asks how many wallets to generate; the answer must be in [1, limit].
func PromptForCount(r *bufio.Reader, w io.Writer, limit int) (int, error) {
	line, err := PromptLine(r, w, fmt.Sprintf("How many wallets to generate (1-%d)? ", limit))
	if err != nil {
		return 0, err
	}
	return ParseCount(line, limit)
}

// ParseCount parses a wallet count and checks it is in [1, limit].
func ParseCount(s string, limit int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid wallet count %q: must be a number", s)
	}
	if n < 1 || n > limit {
		return 0, fmt.Errorf("invalid wallet count %d: must be between 1 and %d", n, limit)
	}
	return n, nil
}
