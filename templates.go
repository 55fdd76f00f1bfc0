//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Conventional template block names
const (
	TemplateStart          = "start"
	TemplateFilamentChange = "filament_change"
	TemplateEnd            = "end"
)

// TemplateSource resolves a named block of literal control-program text
type TemplateSource interface {
	Template(name string) (lines []string, ok bool)
}

// Templates is an in-memory TemplateSource
type Templates map[string][]string

func (t Templates) Template(name string) (lines []string, ok bool) {
	lines, ok = t[name]
	return
}

// DirTemplates resolves a name to the file of that name in a directory,
// with or without a .gcode suffix.
type DirTemplates string

func (dir DirTemplates) Template(name string) (lines []string, ok bool) {
	if name == "" {
		return
	}

	for _, file := range []string{name, name + ".gcode"} {
		data, err := os.ReadFile(filepath.Join(string(dir), file))
		if err != nil {
			continue
		}
		lines = SplitLines(string(data))
		ok = true
		return
	}

	return
}

// TemplateChain tries each source in turn
type TemplateChain []TemplateSource

func (chain TemplateChain) Template(name string) (lines []string, ok bool) {
	for _, source := range chain {
		if source == nil {
			continue
		}
		lines, ok = source.Template(name)
		if ok {
			return
		}
	}

	return
}

// SplitLines splits text into lines, without line terminators
func SplitLines(text string) (lines []string) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return
}
