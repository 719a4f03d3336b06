// Command hash-generator prints a bcrypt hash for a password so the first
// Admin account can be inserted directly into the users table.
//
//	echo -n 's3cret!' | hash-generator --cost 12
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
)

func main() {
	flags := pflag.NewFlagSet("hash-generator", pflag.ContinueOnError)
	cost := flags.Int("cost", 10, "bcrypt cost, same range as AUTH_BCRYPT_COST")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(os.Stdin, os.Stdout, *cost); err != nil {
		fmt.Fprintln(os.Stderr, "hash-generator:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, cost int) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")

	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := auth.NewBcrypt(cost).Hash(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
