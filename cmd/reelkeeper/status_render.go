package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"

	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// statusPrinter formats labelled status lines, with ANSI color only when
// writing to a terminal.
type statusPrinter struct {
	colorize bool
}

func newStatusPrinter(w io.Writer) statusPrinter {
	return statusPrinter{colorize: shouldColorize(w)}
}

func (p statusPrinter) line(label string, kind statusKind, detail string) string {
	style := statusStyles[kind]
	text := fmt.Sprintf("%s%-*s [%s]", statusIndent, statusLabelWidth, label+":", style.label)
	if detail != "" {
		text += " " + detail
	}
	return p.paint(style.color, text)
}

func (p statusPrinter) section(title string) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	return []string{
		p.paint(ansiBlue, heading),
		p.paint(ansiBlue, strings.Repeat("-", len(heading))),
	}
}

func (p statusPrinter) paint(color, text string) string {
	if !p.colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
