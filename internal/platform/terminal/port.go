package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Lines written to the user.
const (
	ContinueQuestion = "Do a question? Y/n: "
	RevealHint       = "Press Enter to get the correct answer"
	CorrectQuestion  = "Did you get it correct? Y/n: "
)

// Port reads answers from in and writes prompts to out.
type Port struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Port over in and out.
func New(in io.Reader, out io.Writer) *Port {
	return &Port{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// AskContinue asks whether to drill another prompt. Only an explicit yes
// continues; an empty line stops.
func (p *Port) AskContinue(ctx context.Context) (bool, error) {
	return p.askYes(ctx, ContinueQuestion)
}

// PresentPrompt shows prompt and waits for Enter.
func (p *Port) PresentPrompt(ctx context.Context, prompt string) error {
	if _, err := fmt.Fprintf(p.out, "\n%s\n%s", prompt, RevealHint); err != nil {
		return err
	}
	_, err := p.readLine(ctx)
	return err
}

// RevealAnswer shows the correct answer.
func (p *Port) RevealAnswer(ctx context.Context, answer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.out, "%s\n", answer)
	return err
}

// AskCorrect asks whether the user got the answer right.
func (p *Port) AskCorrect(ctx context.Context) (bool, error) {
	return p.askYes(ctx, CorrectQuestion)
}

func (p *Port) askYes(ctx context.Context, question string) (bool, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return false, err
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF is reported only once nothing
// is left.
func (p *Port) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
