package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/notemark/internal/config"
	"github.com/jeduden/notemark/internal/discovery"
	"github.com/jeduden/notemark/internal/engine"
	fixpkg "github.com/jeduden/notemark/internal/fix"
	"github.com/jeduden/notemark/internal/lint"
	"github.com/jeduden/notemark/internal/log"
	"github.com/jeduden/notemark/internal/output"
	"github.com/jeduden/notemark/internal/rule"
	"github.com/jeduden/notemark/internal/rules"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/notemark/internal/rules/blockquotesyntax"
	_ "github.com/jeduden/notemark/internal/rules/excessblanklines"
	_ "github.com/jeduden/notemark/internal/rules/fullwidthimagebang"
	_ "github.com/jeduden/notemark/internal/rules/fullwidthlinkparens"
	_ "github.com/jeduden/notemark/internal/rules/headingincrement"
	_ "github.com/jeduden/notemark/internal/rules/headingsyntax"
	_ "github.com/jeduden/notemark/internal/rules/trailingwhitespace"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: notemark <command> [flags] [files...]

Commands:
  check     Lint Markdown notes
  fix       Auto-fix lint issues in place
  show      Print a note with syntax styling applied
  edit      Apply a formatting command to a note
  help      Show help for rules and topics
  init      Generate a default .notemark.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help
  -v, --version   Print version and exit

Run 'notemark <command> --help' for more information on a command.
`

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]
	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	case "--version", "-v", "version":
		printVersion()
		return 0
	}

	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "fix":
		return runFix(os.Args[2:])
	case "show":
		return runShow(os.Args[2:])
	case "edit":
		return runEdit(os.Args[2:])
	case "help":
		return runHelp(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "notemark: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("notemark %s\n", version)
}

// lintFlags are shared by check and fix.
type lintFlags struct {
	configPath string
	format     string
	noColor    bool
	quiet      bool
	verbose    bool
}

func (lf *lintFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&lf.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&lf.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&lf.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&lf.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&lf.verbose, "verbose", false, "Log progress to stderr")
}

// runCheck implements the "check" subcommand: lint files.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var lf lintFlags
	lf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notemark check [flags] [files...]\n\n"+
			"Lint Markdown notes.\n\n"+
			"Files can be paths, directories (walked recursively for *.md), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped; otherwise checks the notes\n"+
			"under the current directory matched by the config's files patterns.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(lf.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}

	runner := &engine.Runner{
		Config:           cfg,
		Rules:            rule.All(),
		StripFrontMatter: cfg.StripFrontMatter(),
		Log:              newLogger(lf.verbose),
	}

	if fs.NArg() == 0 && isStdinPipe() {
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "notemark: reading stdin: %v\n", err)
			return 2
		}
		result := runner.RunSource("<stdin>", source)
		return report(result.Diagnostics, result.Errors, lf)
	}

	files, err := resolveFiles(fs.Args(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		return 0
	}

	result := runner.Run(files)
	return report(result.Diagnostics, result.Errors, lf)
}

// runFix implements the "fix" subcommand: auto-fix lint issues in place.
func runFix(args []string) int {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	var lf lintFlags
	lf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notemark fix [flags] [files...]\n\n"+
			"Auto-fix lint issues in Markdown notes.\n\n"+
			"Files can be paths, directories (walked recursively for *.md), or glob patterns.\n"+
			"Stdin is not supported (files must be writable).\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 && isStdinPipe() {
		fmt.Fprintf(os.Stderr, "notemark: cannot fix stdin in place\n")
		return 2
	}

	cfg, err := loadConfig(lf.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}

	files, err := resolveFiles(fs.Args(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		return 0
	}

	fixer := &fixpkg.Fixer{
		Config:           cfg,
		Rules:            rule.All(),
		StripFrontMatter: cfg.StripFrontMatter(),
		Log:              newLogger(lf.verbose),
	}

	result := fixer.Fix(files)
	return report(result.Diagnostics, result.Errors, lf)
}

// report prints errors and diagnostics and returns the exit code: 0 when
// clean, 1 when diagnostics remain, 2 when only errors occurred.
func report(diags []lint.Diagnostic, errs []error, lf lintFlags) int {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", e)
	}

	if len(errs) > 0 && len(diags) == 0 {
		return 2
	}

	if !lf.quiet && len(diags) > 0 {
		lr := lipgloss.NewRenderer(os.Stderr)
		if lf.noColor {
			lr.SetColorProfile(termenv.Ascii)
		}
		formatter, err := output.New(lf.format, lr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
			return 2
		}

		if err := formatter.Format(os.Stderr, diags); err != nil {
			fmt.Fprintf(os.Stderr, "notemark: error writing output: %v\n", err)
			return 2
		}
	}

	if len(diags) > 0 {
		return 1
	}
	return 0
}

// resolveFiles expands file arguments, or discovers notes under the
// current directory when there are none.
func resolveFiles(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		return discovery.Discover(discovery.Options{
			Patterns: cfg.Files,
			BaseDir:  ".",
			Skip:     cfg.IsIgnored,
		})
	}
	return lint.ResolveFilesWithOpts(args, lint.ResolveOpts{Exclude: cfg.Ignore})
}

// runInit implements the "init" subcommand: generate .notemark.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notemark init\n\n"+
			"Generate a default %s config file in the current directory.\n", config.FileName)
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "notemark: init takes no arguments\n")
		return 2
	}

	if _, err := os.Stat(config.FileName); err == nil {
		fmt.Fprintf(os.Stderr, "notemark: %s already exists\n", config.FileName)
		return 2
	}

	data, err := yaml.Marshal(config.DumpDefaults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(config.FileName, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "notemark: writing %s: %v\n", config.FileName, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "notemark: created %s\n", config.FileName)
	return 0
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

func newLogger(verbose bool) *log.Logger {
	return &log.Logger{Enabled: verbose, W: os.Stderr, Prefix: "notemark: "}
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return config.Merge(defaults, loaded), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil || discovered == "" {
		return config.Merge(defaults, nil), nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, err
	}

	return config.Merge(defaults, loaded), nil
}

const helpUsageText = `Usage: notemark help <topic>

Topics:
  rule [id|name]   Show rule documentation
`

// runHelp implements the "help" subcommand.
func runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "rule":
		return runHelpRule(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "notemark: help: unknown topic %q\n", args[0])
		return 2
	}
}

// runHelpRule implements "help rule [id|name]".
func runHelpRule(args []string) int {
	if len(args) == 0 {
		return listAllRules()
	}
	return showRule(args[0])
}

func listAllRules() int {
	infos, err := rules.ListRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}

	for _, r := range infos {
		fmt.Printf("%-6s %-24s %s\n", r.ID, r.Name, r.Description)
	}
	return 0
}

func showRule(query string) int {
	content, err := rules.LookupRule(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}
	fmt.Print(content)
	return 0
}
