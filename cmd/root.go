// Package cmd implements the CLI command structure for barry.
package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/barry-go/internal/assistant"
	"github.com/nibzard/barry-go/internal/config"
	"github.com/nibzard/barry-go/internal/logging"
	"github.com/nibzard/barry-go/internal/storage"
	"github.com/nibzard/barry-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams; tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the barry CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("barry", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No arguments starts a chat session.
	subcommand := "chat"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	cfg := cws.Config
	switch subcommand {
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch subcommand {
	case "chat":
		return chatCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// chatCommand runs the line-oriented session on stdin and stdout.
func chatCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	a, closeLog, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	return ui.RunREPL(ctx, stdin, stdout, a)
}

// tuiCommand runs the session in the terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("barry tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inline := fs.Bool("inline", false, "Render inline instead of using the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	a, closeLog, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	return ui.RunTUI(ctx, a, ui.WithTitle(cfg.Name), ui.WithAltScreen(!*inline))
}

// exportCommand writes the stored tasks as JSON.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("barry export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := newStore(cfg, warnLogger(cfg, stderr))
	if err != nil {
		return err
	}

	if *output == "" {
		return store.Export(stdout)
	}

	// The target is written only once the export has succeeded.
	var buf bytes.Buffer
	if err := store.Export(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(*output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Fprintf(stderr, "Exported tasks to %s\n", *output)
	return nil
}

// tailCommand prints the latest session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("barry tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.LogDir == "" {
		return fmt.Errorf("log_dir is empty; session logs go to stderr")
	}
	logDir, err := logging.LogDir(cfg.LogDir, cfg.DataFile)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// openSession sets up logging and storage and loads the task list. The
// returned func closes the session log.
func openSession(cfg *config.Config) (*assistant.Assistant, func(), error) {
	logger, closeLog := sessionLogger(cfg)
	store, err := newStore(cfg, logger)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return assistant.New(store, logger), closeLog, nil
}

// sessionLogger logs to a per-session file under cfg.LogDir, or to stderr at
// warn level when no log directory is configured or it cannot be created.
func sessionLogger(cfg *config.Config) (*log.Logger, func()) {
	if cfg.LogDir == "" {
		return warnLogger(cfg, stderr), func() {}
	}

	session, err := logging.NewSessionLog(cfg.LogDir, cfg.DataFile)
	if err != nil {
		logger := warnLogger(cfg, stderr)
		logger.Warn("session log unavailable, logging to stderr", "err", err)
		return logger, func() {}
	}

	logger := newLogger(cfg, session.Writer())
	logger.Debug("session log opened", "path", session.LogPath)
	return logger, func() { session.Close() }
}

// newLogger builds a logger from cfg.
func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	opts := logging.DefaultOptions()
	opts.ReportTimestamp = cfg.LogTimestamps
	opts.ReportCaller = cfg.LogCaller
	if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
		opts.Level = level
	}
	if formatter, err := logging.ParseFormatter(cfg.LogFormat); err == nil {
		opts.Formatter = formatter
	}
	return logging.New(w, opts)
}

// warnLogger is newLogger with the level raised to at least warn, for output
// that shares a stream with the user's terminal.
func warnLogger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := newLogger(cfg, w)
	if logger.GetLevel() < log.WarnLevel {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

func newStore(cfg *config.Config, logger *log.Logger) (*storage.Storage, error) {
	policy, err := storage.ParseCorruptPolicy(cfg.CorruptPolicy)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataFile, storage.WithPolicy(policy), storage.WithLogger(logger)), nil
}

// doctorCommand checks the config, the data file and the log directory.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("barry doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := cws.Config

	fmt.Fprintln(stdout, "Barry Doctor")
	fmt.Fprintln(stdout, "============")
	fmt.Fprintln(stdout)

	allOK := true

	// Config
	fmt.Fprintln(stdout, "Config:")
	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(stdout, "  File: %s\n", file)
	} else {
		fmt.Fprintln(stdout, "  File: none (using defaults)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stdout, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ Valid")
	}
	if *verbose {
		fields := make([]string, 0, len(cws.Sources))
		for field := range cws.Sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(stdout, "    %s: %s\n", field, cws.Sources[field])
		}
	}
	fmt.Fprintln(stdout)

	// Data file
	fmt.Fprintf(stdout, "Data file: %s\n", cfg.DataFile)
	if !checkDataFile(cfg.DataFile, *verbose) {
		allOK = false
	}
	fmt.Fprintln(stdout)

	// Logs
	fmt.Fprintf(stdout, "Log dir: %s\n", cfg.LogDir)
	if cfg.LogDir == "" {
		fmt.Fprintln(stdout, "  ⚠️  Empty (warnings go to stderr)")
	} else if logDir, err := logging.LogDir(cfg.LogDir, cfg.DataFile); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else if latest, err := logging.FindLatestLog(logDir); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else if latest == "" {
		fmt.Fprintln(stdout, "  ⚠️  No session logs yet")
	} else {
		fmt.Fprintf(stdout, "  ✅ Latest: %s\n", latest)
	}
	fmt.Fprintln(stdout)

	if cws.ConfigFile() == "" && *verbose {
		fmt.Fprintln(stdout, "Example config (save as barry.toml):")
		fmt.Fprintln(stdout)
		fmt.Fprint(stdout, config.ExampleConfig())
		fmt.Fprintln(stdout)
	}

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. Barry may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkDataFile reports whether the data file decodes, without repairing it.
func checkDataFile(path string, verbose bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first run)")
			return true
		}
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is a directory")
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		return false
	}
	tasks, err := storage.Decode(data)
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Corrupt: %v\n", err)
		return false
	}
	fmt.Fprintf(stdout, "  ✅ OK (%d tasks)\n", len(tasks))
	if verbose {
		for i, t := range tasks {
			fmt.Fprintf(stdout, "    %d. %s\n", i+1, t)
		}
	}
	return true
}

// versionCommand shows version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "barry version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Barry - a personal task assistant")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  barry [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat          Chat on stdin/stdout (default command)")
	fmt.Fprintln(w, "  tui           Chat in the terminal UI")
	fmt.Fprintln(w, "  export        Write tasks as JSON")
	fmt.Fprintln(w, "  doctor        Check config, data file and logs")
	fmt.Fprintln(w, "  tail          Show the latest session log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TUI Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -inline")
	fmt.Fprintln(w, "        Render inline instead of using the alternate screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Write to file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v")
	fmt.Fprintln(w, "        Show value sources, tasks and an example config")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "In a session, type 'help' to list the task commands.")
}
