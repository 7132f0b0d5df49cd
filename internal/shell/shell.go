// Package shell runs the interactive command loop that edits a cart.
//
// Every field is read with a prompt, format and validate cycle that
// repeats until the input is accepted. There is no retry limit; only the
// end of input stops a prompt early.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/basket/internal/cart"
	"github.com/mesh-intelligence/basket/internal/validate"
	"github.com/mesh-intelligence/basket/pkg/types"
)

// Options configure a Shell. Zero values fall back to the defaults of
// types.DefaultConfig, time.Now and a no-op logger.
type Options struct {
	Currency     string
	ExportDir    string
	ExportFormat string
	Now          func() time.Time
	Logger       *zap.Logger
}

// maxLineBytes bounds one input line. A longer line is rejected like any
// other malformed input and the prompt repeats.
const maxLineBytes = 64 * 1024

var errLineTooLong = errors.New("input line too long")

// Shell reads commands from an input stream and applies them to a cart.
type Shell struct {
	in    *bufio.Reader
	out   io.Writer
	cart  *cart.Cart
	check func(types.Product) error
	log   *zap.Logger
	now   func() time.Time

	currency     string
	exportDir    string
	exportFormat string
}

// New returns a Shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, c *cart.Cart, opts Options) *Shell {
	defaults := types.DefaultConfig()
	if opts.Currency == "" {
		opts.Currency = defaults.Currency
	}
	if opts.ExportDir == "" {
		opts.ExportDir = defaults.ExportDir
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = defaults.ExportFormat
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Shell{
		in:           bufio.NewReader(in),
		out:          out,
		cart:         c,
		check:        validate.NewGate().Check,
		log:          opts.Logger.With(zap.String("session", sessionID())),
		now:          opts.Now,
		currency:     opts.Currency,
		exportDir:    opts.ExportDir,
		exportFormat: opts.ExportFormat,
	}
}

// Run loops over commands until T or the end of input. It returns an
// error only for failures the user cannot fix by typing, such as a failed
// export.
func (s *Shell) Run() error {
	s.println("The program has started.")
	s.log.Info("session started")

	for {
		line, err := s.readLine("Insert your next command (H for help): ")
		if errors.Is(err, errLineTooLong) {
			s.println("Command not recognised. Please try again.")
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		done, err := s.dispatch(strings.ToUpper(strings.TrimSpace(line)))
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			s.log.Error("command failed", zap.Error(err))
			return err
		}
		if done {
			break
		}
	}

	s.log.Info("session ended")
	s.println("Goodbye.")
	return nil
}

// readLine prints prompt and returns the next input line without its line
// ending. It returns io.EOF when the input is exhausted and errLineTooLong
// for a line over maxLineBytes. A last line without a newline is returned
// as is.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if err != nil && line == "" {
		fmt.Fprintln(s.out)
		return "", io.EOF
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) > maxLineBytes {
		return "", fmt.Errorf("%d bytes: %w", len(line), errLineTooLong)
	}
	return line, nil
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// sessionID returns a UUID v7 identifying one run of the shell in logs.
func sessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
