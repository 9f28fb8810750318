package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/at-ishikawa/wortkarte/internal/inference"
	"github.com/fatih/color"
)

var errEnd = errors.New("end")

// FlashcardCLI is the interactive menu over a flashcard store.
type FlashcardCLI struct {
	store        *flashcard.Store
	generator    inference.Client
	rng          *rand.Rand
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	correct      *color.Color
	wrong        *color.Color
}

func NewFlashcardCLI(
	store *flashcard.Store,
	generator inference.Client,
	rng *rand.Rand,
) *FlashcardCLI {
	return newFlashcardCLI(store, generator, rng, os.Stdin, os.Stdout)
}

func newFlashcardCLI(
	store *flashcard.Store,
	generator inference.Client,
	rng *rand.Rand,
	stdin io.Reader,
	stdout io.Writer,
) *FlashcardCLI {
	return &FlashcardCLI{
		store:        store,
		generator:    generator,
		rng:          rng,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		correct:      color.New(color.FgGreen),
		wrong:        color.New(color.FgRed),
	}
}

type Session interface {
	Session(context context.Context) error
}

// Run repeats session until it ends, fails, or the process is interrupted.
func (cli *FlashcardCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		cli.println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			if ctx.Err() != nil {
				cli.println("Received interrupt signal, exiting...")
				return nil
			}
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// RunMenu prints the banner and runs the menu until the user exits.
func (cli *FlashcardCLI) RunMenu(ctx context.Context) error {
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, "German Flashcard Tool")
	return cli.Run(ctx, cli)
}

// Session shows the menu once and dispatches the chosen action.
func (cli *FlashcardCLI) Session(ctx context.Context) error {
	cli.println("\nMenu:")
	cli.println("1. Enter a new German word")
	cli.println("2. Take a quiz")
	cli.println("3. Exit")

	choice, err := cli.prompt("Choose an option (1/2/3): ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		word, err := cli.prompt("Enter a new German word: ")
		if err != nil {
			return err
		}
		return cli.AddWord(ctx, word)
	case "2":
		return cli.Quiz(ctx)
	case "3":
		cli.println("Goodbye!")
		return errEnd
	default:
		cli.println("Invalid choice. Please enter 1, 2, or 3.")
		return nil
	}
}

// prompt prints message and reads one trimmed line.
// A final line without a newline is accepted; EOF with nothing read ends the session.
func (cli *FlashcardCLI) prompt(message string) (string, error) {
	cli.print(message)

	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		if line == "" {
			cli.println()
			return "", errEnd
		}
	}
	return strings.TrimSpace(line), nil
}

func (cli *FlashcardCLI) print(a ...any) {
	_, _ = fmt.Fprint(cli.stdoutWriter, a...)
}

func (cli *FlashcardCLI) println(a ...any) {
	_, _ = fmt.Fprintln(cli.stdoutWriter, a...)
}

func (cli *FlashcardCLI) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(cli.stdoutWriter, format, a...)
}
