package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"

	"github.com/lagoon-lang/lagoon/driver"
)

func main() {
	const (
		inputUsage   = "input file path"
		verboseUsage = "print evaluated values alongside the IR"
	)
	var inputPath string
	var verbose bool
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, verboseUsage)
	flag.BoolVar(&verbose, "v", false, verboseUsage+" (shorthand)")

	flag.Parse()

	if inputPath == "" {
		err := RunPrompt(verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		if err := RunFile(inputPath, verbose); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

var history = filepath.Join(xdg.DataHome, "lagoon", ".lagoon_history")

func RunPrompt(verbose bool) error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		if err := run("repl", input, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func RunFile(path string, verbose bool) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return run(filepath.Base(path), string(bytes), verbose)
}

func run(name, source string, verbose bool) error {
	pipeline := driver.NewPipeline()

	res, err := pipeline.Compile(name, source)
	if err != nil {
		return err
	}

	if verbose {
		// Evaluation is best effort: externs have no body to run, so
		// an eval failure must not suppress the IR that just compiled.
		values, err := pipeline.Interpret(source)
		for _, v := range values {
			fmt.Printf("=> %v\n", v)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	fmt.Print(res.Module.String())

	return nil
}
