// Command oocesk loads one or more source files written in the bundled
// surface language, locates the first class (in file/argument order) whose
// method table contains main, and runs it on the CESK machine.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"oocesk/cesk"
	"oocesk/lang"
)

var version = "0.1.0"

var (
	verbose bool
	debug   bool
)

// The messages of errNoMain and errUncaught are never printed: the RunE that
// returns them has already written the user-facing diagnostic to errOut,
// mirroring ralph-cc's newRootCmd pattern of reporting through the error
// writer and returning a plain sentinel so Execute's caller only needs to
// know success from failure.
var (
	errNoMain   = errors.New("no main class")
	errUncaught = errors.New("uncaught exception")
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr, os.Stdin)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer, in io.Reader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "oocesk",
		Short:         "oocesk runs programs on an object-oriented CESK abstract machine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the full error chain on failure")

	rootCmd.AddCommand(newRunCmd(out, errOut, in))
	rootCmd.AddCommand(newParseCmd(out, errOut))
	return rootCmd
}

func newRunCmd(out, errOut io.Writer, in io.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "load and execute one or more source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doRun(args, out, errOut, in)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "drive execution with the interactive step debugger")
	return cmd
}

func newParseCmd(out, errOut io.Writer) *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "parse source files and print the resulting classes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doParse(args, out, errOut, dump)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", true, "print each parsed class's statement chains")
	return cmd
}

// loadClasses parses every file in order into a shared Context, returning
// the first class (in argument order) whose method table contains main, or
// nil if none does.
func loadClasses(ctx *cesk.Context, filenames []string, errOut io.Writer) (*cesk.ClassDef, []*cesk.ClassDef, error) {
	var all []*cesk.ClassDef
	var mainClass *cesk.ClassDef

	for _, filename := range filenames {
		src, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(errOut, "oocesk: %s: %v\n", filename, err)
			return nil, nil, err
		}

		classes, err := lang.ParseSource(ctx, string(src))
		if err != nil {
			fmt.Fprintf(errOut, "oocesk: %s: %v\n", filename, err)
			return nil, nil, err
		}
		all = append(all, classes...)

		if mainClass == nil {
			for _, c := range classes {
				if _, ok := c.Methods["main"]; ok {
					mainClass = c
					break
				}
			}
		}
	}
	return mainClass, all, nil
}

func doRun(filenames []string, out, errOut io.Writer, in io.Reader) error {
	ctx := cesk.NewContext(out)
	mainClass, _, err := loadClasses(ctx, filenames, errOut)
	if err != nil {
		return err
	}
	if mainClass == nil {
		fmt.Fprintln(errOut, "oocesk: no class with a main method was found")
		return errNoMain
	}

	state, err := cesk.Initial(ctx, mainClass)
	if err != nil {
		reportRuntimeError(errOut, err)
		return err
	}

	var outcome *cesk.Outcome
	if debug {
		outcome, err = cesk.NewDebugger(ctx, state, in, out).Run()
	} else {
		outcome, err = cesk.Run(ctx, state)
	}
	if err != nil {
		reportRuntimeError(errOut, err)
		return err
	}

	if outcome.Kind == cesk.Uncaught {
		fmt.Fprintf(errOut, "oocesk: uncaught exception: %s\n", outcome.Value.ToPrint())
		return errUncaught
	}
	return nil
}

func doParse(filenames []string, out, errOut io.Writer, dump bool) error {
	ctx := cesk.NewContext(out)
	_, classes, err := loadClasses(ctx, filenames, errOut)
	if err != nil {
		return err
	}
	if dump {
		for _, c := range classes {
			lang.PrintClass(out, c)
		}
	}
	return nil
}

func reportRuntimeError(errOut io.Writer, err error) {
	if verbose {
		fmt.Fprintf(errOut, "oocesk: runtime error: %+v\n", err)
		return
	}
	fmt.Fprintf(errOut, "oocesk: runtime error: %v\n", err)
}
