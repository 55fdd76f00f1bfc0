//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const progressWidth = 40

// termProgress draws a single line progress bar
type termProgress struct {
	out     io.Writer
	total   int
	percent int
}

func (tp *termProgress) Begin(total int) {
	tp.total = total
	tp.percent = -1
	tp.Update(0)
}

func (tp *termProgress) Update(current int) {
	if tp.total <= 0 {
		return
	}

	if current > tp.total {
		current = tp.total
	}

	percent := current * 100 / tp.total
	if percent == tp.percent {
		return
	}
	tp.percent = percent

	filled := percent * progressWidth / 100
	fmt.Fprintf(tp.out, "\r[%s%s] %3d%%", strings.Repeat("=", filled), strings.Repeat(" ", progressWidth-filled), percent)
}

func (tp *termProgress) End() {
	fmt.Fprintln(tp.out)
}

// isTerminal reports whether stderr can show a progress bar
func isTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
