package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

func colorizeStatus(w io.Writer, kind statusKind, msg string) string {
	if !shouldColorize(w) {
		return msg
	}
	switch kind {
	case statusOK:
		return text.Colors{text.FgGreen, text.Bold}.Sprint(msg)
	case statusWarn:
		return text.FgYellow.Sprint(msg)
	case statusError:
		return text.Colors{text.FgRed, text.Bold}.Sprint(msg)
	default:
		return text.Faint.Sprint(msg)
	}
}
