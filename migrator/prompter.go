package migrator

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
)

// Prompter asks the operator a yes/no question. Anything but an explicit
// yes counts as a decline.
type Prompter interface {
	Confirm(question string) (confirmed bool, err error)
}

type consolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) Prompter {
	return consolePrompter{in: bufio.NewReader(in), out: out}
}

func (p consolePrompter) Confirm(question string) (bool, error) {
	_, err := fmt.Fprintf(p.out, "%s [y/N]: ", question)
	if err != nil {
		return false, bosherr.WrapError(err, "Writing prompt")
	}

	answer, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, bosherr.WrapError(err, "Reading prompt answer")
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
