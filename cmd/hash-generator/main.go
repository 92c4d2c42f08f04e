// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for inserting users into the users table by hand.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

var errNoPasswords = errors.New("no passwords given")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt work factor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errNoPasswords
	}

	hasher := auth.NewBcryptHasher(*cost)
	for _, password := range fs.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hashing %q: %w", password, err)
		}
		fmt.Fprintf(stdout, "Password: %s\nHash: %s\n\n", password, hash)
	}
	return nil
}
