// Command hash-generator prints the bcrypt hash of a shared secret, ready to
// be used as GPROXY_AUTH_SHARED_SECRET_HASH when the proxy runs in server
// mode.
//
// The secret is taken from the first argument, or read from stdin when no
// argument is given:
//
//	echo -n "my secret" | hash-generator -cost 12
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// minSecretLength matches the shortest credential the proxy accepts.
const minSecretLength = 20

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := readSecret(fs.Args(), stdin)
	if err != nil {
		return err
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("secret must be at least %d characters", minSecretLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), *cost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	_, err = fmt.Fprintln(stdout, string(hash))
	return err
}

func readSecret(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
