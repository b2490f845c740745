package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	flag "github.com/spf13/pflag"

	"github.com/jeduden/notemark/internal/config"
	"github.com/jeduden/notemark/internal/edit"
	"github.com/jeduden/notemark/internal/highlight"
	"github.com/jeduden/notemark/internal/render"
)

// runShow implements the "show" subcommand: print a note with the styling
// an editor would apply at the given cursor.
func runShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var (
		configPath string
		cursor     int
		selEnd     int
		search     string
		match      int
		readOnly   bool
		noColor    bool
		verbose    bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.IntVar(&cursor, "cursor", 0, "Byte offset of the cursor or selection start")
	fs.IntVar(&selEnd, "selection-end", -1, "Byte offset of the selection end (default: the cursor)")
	fs.StringVarP(&search, "search", "s", "", "Highlight case-insensitive matches of this text")
	fs.IntVar(&match, "match", 0, "Index of the current search match")
	fs.BoolVar(&readOnly, "read-only", false, "Render every marker compact")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVar(&verbose, "verbose", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notemark show [flags] [file]\n\n"+
			"Print a note with syntax styling applied. Reads stdin when no file is given.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	source, err := readInput(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}
	show := cfg.Show
	if show == nil {
		show = &config.ShowCfg{}
	}

	lr := lipgloss.NewRenderer(os.Stdout)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
	}
	theme, err := render.DefaultTheme(lr).WithColors(show.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}

	if selEnd < 0 {
		selEnd = cursor
	}
	text := string(source)
	spans := highlight.Annotate(text, highlight.Options{
		Selection:    highlight.Range{Start: cursor, End: selEnd},
		ReadOnly:     readOnly || show.ReadOnly,
		Search:       search,
		CurrentMatch: match,
	})
	newLogger(verbose).Printf("show: %d bytes, %d spans", len(text), len(spans))

	fmt.Print(render.New(lr, theme).Render(text, spans))
	return 0
}

// wrapCommands maps edit commands to the inline delimiter they toggle.
var wrapCommands = map[string]string{
	"bold":          edit.Bold,
	"italic":        edit.Italic,
	"strikethrough": edit.Strikethrough,
	"underline":     edit.Underline,
	"highlight":     edit.Highlight,
	"code":          edit.Code,
}

const editUsageText = `Usage: notemark edit <command> [flags] [file]

Apply a formatting command to the selection and print the result.
Reads stdin when no file is given.

Commands:
  bold, italic, strikethrough, underline, highlight, code
            Toggle the inline delimiter around the selection
  header    Set the cursor line's header level (--level, 0 removes)
  quote     Toggle "> " on the selected lines
  indent    Add a tab to the selected lines
  outdent   Remove a tab from the selected lines

Flags:
`

// runEdit implements the "edit" subcommand.
func runEdit(args []string) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	var (
		start   int
		end     int
		level   int
		write   bool
		verbose bool
	)

	fs.IntVar(&start, "start", 0, "Byte offset of the selection start")
	fs.IntVar(&end, "end", -1, "Byte offset of the selection end (default: --start)")
	fs.IntVar(&level, "level", 1, "Header level for the header command")
	fs.BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	fs.BoolVar(&verbose, "verbose", false, "Log the resulting selection to stderr")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, editUsageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	command, files := fs.Arg(0), fs.Args()[1:]
	if write && len(files) == 0 {
		fmt.Fprintf(os.Stderr, "notemark: edit --write needs a file\n")
		return 2
	}

	source, err := readInput(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}

	if end < 0 {
		end = start
	}
	out, sel, err := applyEdit(command, string(source), edit.Range{Start: start, End: end}, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}
	newLogger(verbose).Printf("edit %s: selection %d-%d", command, sel.Start, sel.End)

	if !write {
		fmt.Print(out)
		return 0
	}

	info, err := os.Stat(files[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "notemark: %v\n", err)
		return 2
	}
	if err := os.WriteFile(files[0], []byte(out), info.Mode().Perm()); err != nil {
		fmt.Fprintf(os.Stderr, "notemark: writing %s: %v\n", files[0], err)
		return 2
	}
	return 0
}

func applyEdit(command, text string, sel edit.Range, level int) (string, edit.Range, error) {
	switch command {
	case "header":
		return edit.Header(text, sel, level)
	case "quote":
		out, s := edit.Quote(text, sel)
		return out, s, nil
	case "indent":
		out, s := edit.Indent(text, sel)
		return out, s, nil
	case "outdent":
		out, s := edit.Outdent(text, sel)
		return out, s, nil
	}
	delim, ok := wrapCommands[command]
	if !ok {
		return "", sel, fmt.Errorf("edit: unknown command %q", command)
	}
	out, s := edit.Wrap(text, sel, delim)
	return out, s, nil
}

// readInput reads the single named file, or stdin when none is named and
// input is piped.
func readInput(files []string) ([]byte, error) {
	switch len(files) {
	case 0:
		if !isStdinPipe() {
			return nil, errors.New("no input: name a file or pipe text to stdin")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	case 1:
		return os.ReadFile(files[0])
	default:
		return nil, fmt.Errorf("expected one file, got %d", len(files))
	}
}
