//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCommandExpand(t *testing.T) {
	table := map[string]struct {
		In    string
		Out   []string
		Error bool
	}{
		"words":  {`vase.ply spiral`, []string{"vase.ply", "spiral"}, false},
		"setenv": {`vase.ply ${MATERIAL}`, []string{"vase.ply", "pla"}, false},
		"oct":    {`\101`, []string{"A"}, false},
		"escape": {`hello\ you\e[7m\z\e[m\r\n\101`, []string{"hello you\033[7mz\033[m\r\nA"}, false},
		"quotes": {`"my vase.ply" 'and "quoted"'`, []string{"my vase.ply", "and \"quoted\""}, false},
		"quoted": {`"layer 'one'" "it\'s"`, []string{"layer 'one'", "it's"}, false},
		"multi": {`vase.ply
spiral --height 0.2 --filament-change 10,20
vase.gcode
`, []string{"vase.ply", "spiral", "--height", "0.2", "--filament-change", "10,20", "vase.gcode"}, false},
		"open": {`"unterminated`, nil, true},
	}

	os.Setenv("MATERIAL", "pla")

	for key, item := range table {
		reader := bytes.NewReader([]byte(item.In))
		args, err := CommandExpand(reader)
		if (err != nil) != item.Error {
			t.Errorf("%v: expected error %v, got %v", key, item.Error, err)
			continue
		}

		if err != nil {
			continue
		}

		if len(args) != len(item.Out) {
			t.Errorf("%v: expected len() %v, got %v", key, len(item.Out), len(args))
			continue
		}

		for n, arg := range args {
			if arg != item.Out[n] {
				t.Errorf("%v: expected [%v] %v, got %v", key, n, item.Out[n], arg)
				break
			}
		}
	}
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "job.args")
	err := os.WriteFile(file, []byte("spiral --height 0.3\ncheck\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	args, err := ExpandArgs([]string{"tube", "@" + file, "out.gcode", "@"})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"tube", "spiral", "--height", "0.3", "check", "out.gcode", "@"}
	if len(args) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
	for n := range expected {
		if args[n] != expected[n] {
			t.Errorf("[%d]: expected %v, got %v", n, expected[n], args[n])
		}
	}

	_, err = ExpandArgs([]string{"@" + filepath.Join(dir, "missing")})
	if err == nil {
		t.Errorf("expected error for a missing command file")
	}
}
