package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ncobase/blogclient/ecode"
	"github.com/spf13/cobra"
)

// prompter reads missing flag values from the command's input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

// value returns preset, or asks for label when it is empty.
func (p *prompter) value(label, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		fmt.Fprintln(p.out)
		return "", ecode.Validation(ecode.FieldIsRequired(strings.ToLower(label)), nil)
	}
	return line, nil
}
