/*
Mcfgparse recognizes and parses token sequences against a Multiple
Context-Free Grammar.

It reads a grammar written in the textual rule notation (see
internal/mcfgtext) from a file, then either runs once against a
command-line-supplied token sequence or starts an interactive session
reading one token sequence per line until EOF or the "QUIT" command.

Usage:

	mcfgparse [flags]

The flags are:

	-v, --version
		Give the current version of mcfgparse and then exit.

	--config FILE
		Load persistent defaults (grammar, start, cache, mode, max_steps,
		debug) from a TOML file. Any flag given explicitly on the command
		line overrides the corresponding config value.

	-g, --grammar FILE
		Use the provided file of textual MCFG rules. Defaults to "grammar.mcfg"
		in the current working directory.

	-s, --start SYMBOLS
		Comma-separated list of start nonterminals. Defaults to "S".

	--cache FILE
		Load a previously-saved binary grammar cache from FILE instead of
		re-parsing --grammar, if the file exists; otherwise parse --grammar
		and save the result to FILE for next time.

	-r, --recognize
		Only report acceptance; do not enumerate derivation trees.

	--max-steps N
		Cap the number of rule-application attempts per parse. Zero (the
		default) means unlimited.

	--debug
		Trace the agenda parser's axioms, pops, and derivations to stderr,
		each run tagged with a random identifier.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input lines, even if launched in
		a tty with stdin and stdout.

	-c, --tokens TOKENS
		Immediately run against the given whitespace-separated tokens and
		exit, instead of entering an interactive session.

	--describe
		Print a table summarizing the loaded grammar's nonterminals (arity,
		rule count) and exit.

Once an interactive session has started, each line of whitespace-separated
tokens is parsed against the grammar and the result printed. Type "QUIT" to
exit.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/mcfg/internal/gramio"
	"github.com/dekarrin/mcfg/internal/input"
	"github.com/dekarrin/mcfg/internal/mcfg"
	"github.com/dekarrin/mcfg/internal/mcfgtext"
	"github.com/dekarrin/mcfg/internal/version"
	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue loading or validating the grammar.
	ExitInitError

	// ExitRunError indicates an unsuccessful program execution due to a
	// problem while reading or processing input lines.
	ExitRunError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "grammar.mcfg", "The file of textual MCFG rules to load")
	startSyms   *string = pflag.StringP("start", "s", "S", "Comma-separated list of start nonterminals")
	cacheFile   *string = pflag.String("cache", "", "Binary grammar cache file to load from or save to")
	recognize   *bool   = pflag.BoolP("recognize", "r", false, "Only report acceptance; do not enumerate parse trees")
	maxSteps    *int    = pflag.Int("max-steps", 0, "Cap on rule-application attempts per parse; 0 is unlimited")
	debug       *bool   = pflag.Bool("debug", false, "Trace the agenda parser to stderr")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	tokensFlag  *string = pflag.StringP("tokens", "c", "", "Run once against the given whitespace-separated tokens and exit")
	describe    *bool   = pflag.Bool("describe", false, "Print a table summarizing the loaded grammar's nonterminals and exit")
	configFile  *string = pflag.String("config", "", "TOML file of persistent defaults for flags not given on the command line")
)

func isFlagSet(name string) bool {
	f := pflag.Lookup(name)
	return f != nil && f.Changed
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *configFile != "" {
		c, err := loadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		applyConfig(c)
	}

	start := strings.Split(*startSyms, ",")
	for i := range start {
		start[i] = strings.TrimSpace(start[i])
	}

	g, err := loadGrammar(*grammarFile, *cacheFile, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *describe {
		fmt.Println(g.Describe())
		return
	}

	mode := mcfg.ModeParse
	if *recognize {
		mode = mcfg.ModeRecognize
	}

	parser := &mcfg.AgendaParser{MaxSteps: *maxSteps, Debug: *debug}

	if *tokensFlag != "" {
		runLine(os.Stdout, g, parser, mode, *tokensFlag)
		return
	}

	if err := runSession(g, parser, mode); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitRunError
		return
	}
}

// loadGrammar loads a grammar either from the binary cache (if it exists)
// or by parsing the textual source, saving a fresh cache afterward when one
// was requested.
func loadGrammar(grammarPath, cachePath string, start []string) (*mcfg.Grammar, error) {
	if cachePath != "" {
		if _, err := os.Stat(cachePath); err == nil {
			g, err := gramio.Load(cachePath)
			if err != nil {
				return nil, fmt.Errorf("loading grammar cache: %w", err)
			}
			return g, nil
		}
	}

	src, err := os.ReadFile(grammarPath)
	if err != nil {
		return nil, fmt.Errorf("reading grammar file: %w", err)
	}

	g, err := mcfgtext.ParseGrammar(string(src), start...)
	if err != nil {
		return nil, fmt.Errorf("parsing grammar: %w", err)
	}

	if cachePath != "" {
		if err := gramio.Save(cachePath, g); err != nil {
			return nil, fmt.Errorf("saving grammar cache: %w", err)
		}
	}

	return g, nil
}

// runSession drives an interactive (or piped) read-eval-print loop over
// whitespace-separated token lines until EOF or a "QUIT" command.
func runSession(g *mcfg.Grammar, parser *mcfg.AgendaParser, mode mcfg.Mode) error {
	useReadline := !*forceDirect && isInteractive()

	var reader interface {
		ReadCommand() (string, error)
		Close() error
	}
	var err error
	if useReadline {
		reader, err = input.NewInteractiveReader()
		if err != nil {
			return fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		reader = input.NewDirectReader(os.Stdin)
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		if strings.EqualFold(strings.TrimSpace(line), "QUIT") {
			return nil
		}

		runLine(os.Stdout, g, parser, mode, line)
	}
}

func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// runLine tokenizes one line on whitespace, runs it against the grammar,
// and prints the outcome.
func runLine(w io.Writer, g *mcfg.Grammar, parser *mcfg.AgendaParser, mode mcfg.Mode, line string) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return
	}
	if *debug {
		parser.RunID = uuid.NewString()[:8]
	}

	result, err := parser.Run(g, tokens, mode)
	if err != nil {
		fmt.Fprintf(w, "ERROR: %s\n", err.Error())
		return
	}

	fmt.Fprintf(w, "accepted: %t\n", result.Accepted)
	if mode != mcfg.ModeParse {
		return
	}

	for i, t := range result.Trees {
		fmt.Fprintf(w, "tree %d:\n", i+1)
		fmt.Fprintln(w, rosed.Edit(t.String()).Wrap(78).String())
	}
}
