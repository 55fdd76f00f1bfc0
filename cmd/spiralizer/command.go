//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// argScanner accumulates one shell-like word
type argScanner struct {
	token   []byte
	quote   byte // Active quote character, or 0
	escape  bool
	oct     int
	octLen  int
	started bool
}

var escapes = map[byte]byte{
	'b': '\b', 't': '\t', 'n': '\n', 'r': '\r', 'e': '\033',
}

func (as *argScanner) flushOct() {
	if as.octLen > 0 {
		as.token = append(as.token, byte(as.oct))
		as.oct = 0
		as.octLen = 0
	}
}

func (as *argScanner) escaped(c byte) {
	if c >= '0' && c <= '7' {
		as.oct = as.oct*8 + int(c-'0')
		as.octLen++
		if as.octLen == 3 {
			as.flushOct()
			as.escape = false
		}
		return
	}

	as.flushOct()
	if r, ok := escapes[c]; ok {
		c = r
	}
	as.token = append(as.token, c)
	as.escape = false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// ScanArgs is a bufio.SplitFunc for words with quoting, backslash escapes
// and three digit octal escapes.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	skip := 0
	for skip < len(data) && isSpace(data[skip]) {
		skip++
	}

	data = data[skip:]
	if len(data) == 0 {
		advance = skip
		return
	}

	as := &argScanner{}
	for here, c := range data {
		switch {
		case as.escape:
			as.escaped(c)
		case c == '\\':
			as.escape = true
		case as.quote != 0 && c == as.quote:
			as.quote = 0
		case as.quote == 0 && (c == '"' || c == '\''):
			as.quote = c
		case as.quote == 0 && isSpace(c):
			advance = skip + here
			token = as.token
			return
		default:
			as.token = append(as.token, c)
		}
	}

	if as.escape && as.octLen > 0 {
		as.flushOct()
		as.escape = false
	}

	if as.quote == 0 && !as.escape {
		advance = skip + len(data)
		if len(as.token) > 0 {
			token = as.token
		}
		return
	}

	if atEOF {
		err = fmt.Errorf("incomplete line: '%v' => '%v'", string(data), string(as.token))
	}

	return
}

// CommandExpand splits a command file into arguments, expanding
// environment variables in each.
func CommandExpand(reader io.Reader) (out []string, err error) {
	var words []string

	scanner := bufio.NewScanner(reader)
	scanner.Split(ScanArgs)
	for scanner.Scan() {
		words = append(words, os.ExpandEnv(scanner.Text()))
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	out = words
	return
}

// ExpandArgs replaces each '@file' argument with the words of that file
func ExpandArgs(args []string) (out []string, err error) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") || len(arg) == 1 {
			out = append(out, arg)
			continue
		}

		var file *os.File
		file, err = os.Open(arg[1:])
		if err != nil {
			return
		}

		var words []string
		words, err = CommandExpand(file)
		file.Close()
		if err != nil {
			err = errors.Wrapf(err, "%s", arg[1:])
			return
		}

		out = append(out, words...)
	}

	return
}
