// Command hashpassword prints a bcrypt hash suitable for MASTER_PASSWORD_HASH.
//
// Usage:
//
//	hashpassword 'my secret'
//	echo 'my secret' | hashpassword
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/finance-tracker/ledger/internal/integration/adapters"
)

func main() {
	password, err := readPassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hash, err := adapters.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func readPassword() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password given")
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("no password given")
	}
	return password, nil
}
