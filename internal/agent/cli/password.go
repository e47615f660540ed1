package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword читает пароль, если он не передан флагом.
//
//   - fromStdin=true: весь STDIN (для скриптов);
//   - иначе интерактивно, без эха. Если stdin не терминал — ошибка.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := bytes.TrimRight(b, "\r\n")
		if len(pw) == 0 {
			return "", errors.New("empty password on stdin")
		}
		return string(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password or --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

// passwordFlags — --password и --password-stdin, общие для signup и login.
type passwordFlags struct {
	value     string
	fromStdin bool
}

func (p *passwordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.value, "password", "", "password (prompted when omitted)")
	cmd.Flags().BoolVar(&p.fromStdin, "password-stdin", false, "read password from stdin")
}

func (p *passwordFlags) get(cmd *cobra.Command) (string, error) {
	if p.value != "" {
		return p.value, nil
	}
	return ReadPassword(cmd, p.fromStdin)
}
