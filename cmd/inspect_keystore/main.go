// Decrypts a keystore file with a prompted password and prints its address.
// Usage: go run ./cmd/inspect_keystore path/to/keystore.json
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/eth-paper-wallet/internal/config"
	"github.com/AlexZinkM/eth-paper-wallet/internal/crypto"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect_keystore <keystore.json>")
		os.Exit(2)
	}

	record, err := crypto.ReadKeystoreFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := config.PromptForPassword(config.DecryptPasswordLabel, false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	password, err := config.GetPasswordBytes()
	config.ClearPassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	key, err := crypto.DecryptKeystore(record, password)
	clear(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decrypt failed:", err)
		os.Exit(1)
	}
	address, err := crypto.AddressFromPrivateKey(key)
	clear(key[:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("id:     ", record.ID)
	fmt.Println("address:", address)
	fmt.Printf("kdf:     %s n=%d r=%d p=%d\n", record.Crypto.KDF,
		record.Crypto.KDFParams.N, record.Crypto.KDFParams.R, record.Crypto.KDFParams.P)
}
