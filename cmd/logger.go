package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// newLogger returns the console logger the CLI and the client log through.
// Output goes to stderr so --json output on stdout stays parseable.
func newLogger(verbose bool) zerolog.Logger {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isTerminal,
		TimeFormat: time.RFC3339,
	}

	output.FormatTimestamp = func(i interface{}) string {
		parse, _ := time.Parse(time.RFC3339, fmt.Sprint(i))
		return parse.Format("15:04:05")
	}

	output.FormatLevel = func(i interface{}) string {
		l := strings.ToUpper(fmt.Sprintf("%-5s", i))
		if !isTerminal {
			return "| " + l + " |"
		}

		switch i {
		case "debug":
			l = color.BlueString(l)
		case "info":
			l = color.GreenString(l)
		case "warn":
			l = color.YellowString(l)
		case "error", "fatal", "panic":
			l = color.RedString(l)
		}
		return "| " + l + " |"
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
