// Package console is the line-oriented terminal front end for a round.
//
// It prints the commitment, reads the human's choice, shows the payoff grid
// on request and finally prints the result with the revealed key.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/lox/fairrps/internal/round"
	"github.com/lox/fairrps/internal/rules"
)

const (
	exitInput = "0"
	helpInput = "?"

	// maxLineLength bounds one line of input; longer lines are discarded
	maxLineLength = 4096
)

var errLineTooLong = errors.New("input line too long")

// Options configures a Console
type Options struct {
	NoColor bool
	Logger  *log.Logger
	// Program is the executable name used in the verification hint
	Program string
}

// Console handles human interaction for one round
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	styles  Styles
	logger  *log.Logger
	program string
}

// New creates a console reading from in and writing to out
func New(in io.Reader, out io.Writer, opts Options) *Console {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	program := opts.Program
	if program == "" {
		program = "fairrps"
	}

	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		styles:  NewStyles(lipgloss.NewRenderer(out), opts.NoColor),
		logger:  logger.WithPrefix("console"),
		program: program,
	}
}

// Play runs the prompt loop for r. It returns the result once the human
// picks a move, or nil if they exit (or input ends) first.
func (c *Console) Play(r *round.Round) (*round.Result, error) {
	c.printCommitment(r)

	for {
		c.printMenu(r.Moves())

		line, ok, err := c.readLine()
		if errors.Is(err, errLineTooLong) {
			c.logger.Debug("Discarded overlong input")
			c.println(c.styles.Error.Render("Invalid input. Please try again."))
			continue
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			c.logger.Debug("Input closed, abandoning round")
			return nil, c.abandon(r)
		}

		switch line {
		case helpInput:
			t, err := r.HelpTable()
			if err != nil {
				return nil, err
			}
			c.println(c.RenderTable(r.Moves(), t))
			continue
		case exitInput:
			return nil, c.abandon(r)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			c.logger.Debug("Unparseable input", "input", line)
			c.println(c.styles.Error.Render("Invalid input. Please try again."))
			continue
		}

		result, err := r.Submit(choice - 1)
		if errors.Is(err, rules.ErrInvalidMoveIndex) {
			c.println(c.styles.Error.Render("Invalid input. Please try again."))
			continue
		}
		if err != nil {
			return nil, err
		}

		c.printResult(result)
		return result, nil
	}
}

func (c *Console) abandon(r *round.Round) error {
	if err := r.Abandon(); err != nil {
		return err
	}
	c.println(c.styles.Info.Render("Goodbye!"))
	return nil
}

// readLine returns the next trimmed line; ok is false at end of input.
// A line longer than maxLineLength is consumed and reported as errLineTooLong.
func (c *Console) readLine() (string, bool, error) {
	fmt.Fprint(c.out, c.styles.Prompt.Render("Enter your move: "))

	var (
		sb      strings.Builder
		tooLong bool
		read    int
	)
	for {
		chunk, err := c.in.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			if sb.Len()+len(chunk) > maxLineLength {
				tooLong = true
				sb.Reset()
			} else {
				sb.Write(chunk)
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if read == 0 {
				c.println("")
				return "", false, nil
			}
		default:
			return "", false, fmt.Errorf("failed to read input: %w", err)
		}

		if tooLong {
			return "", true, errLineTooLong
		}
		return strings.TrimSpace(sb.String()), true, nil
	}
}

func (c *Console) printCommitment(r *round.Round) {
	c.println(c.styles.Title.Render("Rock Paper Scissors, provably fair"))
	c.println("")
	c.println("HMAC: " + c.styles.Digest.Render(r.Digest().String()))
	if r.Nonce() != "" {
		c.println("Nonce: " + c.styles.Digest.Render(r.Nonce()))
	}
}

func (c *Console) printMenu(ms *rules.MoveSet) {
	c.println("Available moves:")
	for i, name := range ms.Names() {
		c.println(fmt.Sprintf("%d - %s", i+1, name))
	}
	c.println(exitInput + " - exit")
	c.println(helpInput + " - help")
}

func (c *Console) printResult(res *round.Result) {
	c.println("Your move: " + c.styles.Move.Render(res.HumanMove))
	c.println("Computer move: " + c.styles.Move.Render(res.OpponentMove))

	verdict := "Result: You " + res.Outcome.String()
	switch res.Outcome {
	case rules.Win:
		c.println(c.styles.Success.Render(verdict))
	case rules.Lose:
		c.println(c.styles.Error.Render(verdict))
	default:
		c.println(c.styles.Warning.Render(verdict))
	}

	c.println("HMAC key: " + c.styles.Digest.Render(res.Key.String()))

	hint := fmt.Sprintf("Verify: %s verify %s --key %s --digest %s", c.program, res.OpponentMove, res.Key, res.Digest)
	if res.Nonce != "" {
		hint += " --nonce " + res.Nonce
	}
	c.println(c.styles.Info.Render(hint))

	// The key is raw bytes; openssl takes it as hexkey, not as a string
	message := res.OpponentMove
	if res.Nonce != "" {
		message = res.Nonce + ":" + message
	}
	c.println(c.styles.Info.Render(fmt.Sprintf("Or: printf %%s '%s' | openssl dgst -sha256 -mac HMAC -macopt hexkey:%s", message, res.Key)))
}

// RenderTable renders the payoff grid. Rows are the human's move, columns
// the computer's move.
func (c *Console) RenderTable(ms *rules.MoveSet, grid rules.Table) string {
	names := ms.Names()
	headers := append([]string{"You \\ PC"}, names...)

	rows := make([][]string, len(grid))
	for i, cells := range grid {
		row := make([]string, 0, len(cells)+1)
		row = append(row, names[i])
		for _, o := range cells {
			row = append(row, o.String())
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return c.styles.Header
			}
			if row < 0 || row >= len(grid) {
				return c.styles.Cell
			}
			switch grid[row][col-1] {
			case rules.Win:
				return c.styles.Cell.Foreground(lipgloss.Color("#96CEB4"))
			case rules.Lose:
				return c.styles.Cell.Foreground(lipgloss.Color("#FF6B6B"))
			default:
				return c.styles.Cell
			}
		})

	return t.Render() + "\n" + c.styles.Info.Render("Rows: your move. Columns: computer move. Cells: your result.")
}

// PrintTable writes the payoff grid for ms.
func (c *Console) PrintTable(ms *rules.MoveSet) {
	c.println(c.RenderTable(ms, rules.BuildTable(ms)))
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
