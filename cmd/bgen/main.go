package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/board"
	"github.com/xplshn/bgen/pkg/cli"
	"github.com/xplshn/bgen/pkg/codegen"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/typeChecker"
	"github.com/xplshn/bgen/pkg/util"
)

func main() {
	app := cli.NewApp("bgen")
	app.Synopsis = "[options] <workspace.json>"
	app.Description = "Generates mbed C++ programs from Blockly workspaces. Reads the workspace from stdin when no file is given."
	app.Authors = []string{"xplshn"}
	app.Repository = "<https://github.com/xplshn/bgen>"

	var (
		outFile    string
		boardName  string
		boardFiles []string
		listBoards bool
		dumpTypes  bool
		checksum   bool
	)

	fs := app.FlagSet
	fs.String(&outFile, "output", "o", "", "Write the generated program to <file> instead of stdout.", "file")
	fs.String(&boardName, "board", "b", board.Default().Key, "Select the target board profile.", "board")
	fs.List(&boardFiles, "boards", "", []string{}, "Load extra board profiles from a Starlark file.", "file.star")
	fs.Bool(&listBoards, "list-boards", "", false, "List the known board profiles and exit.")
	fs.Bool(&dumpTypes, "dump-types", "", false, "Print the inferred variable types and exit.")
	fs.Bool(&checksum, "checksum", "", false, "Print the xxhash of the generated program to stderr.")

	cfg := config.NewConfig()
	warningFlags, featureFlags := cfg.SetupFlagGroups(fs)

	app.Action = func(args []string) error {
		for _, file := range boardFiles {
			if _, err := board.LoadStarlark(file, nil); err != nil {
				util.Error("", "could not load boards from '%s': %v", file, err)
			}
		}

		if listBoards {
			for _, key := range board.Names() {
				p, _ := board.Lookup(key)
				fmt.Fprintf(app.Stdout, "%-16s %s\n", key, p.Name)
			}
			return nil
		}

		if err := cfg.SetBoard(boardName); err != nil {
			util.Error("", "%v", err)
		}
		cfg.ApplyFlagGroups(warningFlags, featureFlags)

		if len(args) > 1 {
			util.Error("", "expected at most one workspace file, got %d", len(args))
		}
		ws, err := readWorkspace(args)
		if err != nil {
			util.Error("", "%v", err)
		}

		res, err := codegen.NewGenerator(cfg).Generate(ws)
		if err != nil {
			reportFailure(err)
		}
		for _, a := range res.Warnings {
			util.Warn(cfg, a.Warning, a.BlockID, "%s", a.Message)
		}

		if dumpTypes {
			for _, name := range res.Types.Vars {
				t := res.Types.VarType(name)
				fmt.Fprintf(app.Stdout, "%-20s %-12s %s\n", name, t, typeChecker.CType(t))
			}
			return nil
		}

		if checksum {
			fmt.Fprintf(util.Output, "%016x\n", res.Digest)
		}
		return writeSource(app.Stdout, outFile, res)
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func readWorkspace(args []string) (*block.Workspace, error) {
	if len(args) == 0 || args[0] == "-" {
		return block.Decode(os.Stdin)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("could not read workspace '%s': %w", args[0], err)
	}
	defer f.Close()
	ws, err := block.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return ws, nil
}

// reportFailure prints a failed pass against the block that caused it and
// exits.
func reportFailure(err error) {
	var (
		unknown  *codegen.UnknownKindError
		shape    *codegen.ShapeError
		conflict *codegen.PinConflictError
	)
	switch {
	case errors.As(err, &unknown):
		util.Error(unknown.BlockID, "%v", err)
	case errors.As(err, &shape):
		util.Error(shape.BlockID, "%v", err)
	case errors.As(err, &conflict):
		var sb strings.Builder
		for _, c := range conflict.Conflicts {
			sb.WriteString("\n  " + c.Message())
		}
		util.Error("", "%d pin conflict(s):%s", len(conflict.Conflicts), sb.String())
	default:
		util.Error("", "%v", err)
	}
}

// writeSource writes the program to outFile, or to stdout when no file was
// given. An existing file with the same content is left untouched so build
// tools watching it do not rebuild.
func writeSource(stdout io.Writer, outFile string, res *codegen.Result) error {
	if outFile == "" {
		_, err := io.WriteString(stdout, res.Source)
		return err
	}
	if sum, err := hashFile(outFile); err == nil && sum == res.Digest {
		return nil
	}
	if err := os.WriteFile(outFile, []byte(res.Source), 0o644); err != nil {
		util.Error("", "could not write '%s': %v", outFile, err)
	}
	return nil
}

// hashFile computes the xxhash of a file's content
func hashFile(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
