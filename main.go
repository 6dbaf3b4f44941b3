// Package main implements the gate-check CLI tool for running quality gates
// with dependency-aware concurrency and a secured tool execution boundary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/EmundoT/gate-check/cmd"
	"github.com/EmundoT/gate-check/internal/core"
	"github.com/EmundoT/gate-check/internal/gates"
	"github.com/EmundoT/gate-check/internal/tui"
	"github.com/EmundoT/gate-check/internal/types"
	"github.com/EmundoT/gate-check/internal/version"
	"github.com/EmundoT/gate-check/pkg/toolexec"
)

// Version information is managed in internal/version package
// GoReleaser injects version info directly via ldflags

// parseCommonFlags extracts common non-interactive flags from args
// Returns: flags, verbose, remainingArgs
func parseCommonFlags(args []string) (core.NonInteractiveFlags, bool, []string) {
	flags := core.NonInteractiveFlags{}
	verbose := false
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--yes", "-y":
			flags.Yes = true
		case "--quiet", "-q":
			flags.Mode = core.OutputQuiet
		case "--json":
			flags.Mode = core.OutputJSON
		case "--verbose", "-v":
			verbose = true
		case "--no-color":
			// lipgloss/termenv honor NO_COLOR at render time.
			os.Setenv("NO_COLOR", "1")
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, verbose, remaining
}

// newLogger builds the zap logger: console output when verbose, no-op
// otherwise so normal runs stay quiet on stderr.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// pickCallback chooses interactive vs non-interactive UI output.
func pickCallback(flags core.NonInteractiveFlags) core.UICallback {
	if flags.Yes || flags.Mode != core.OutputNormal {
		return tui.NewNonInteractiveTUICallback(flags)
	}
	return tui.NewTUICallback()
}

// pickTracker chooses how run progress is rendered.
func pickTracker(flags core.NonInteractiveFlags) tui.ProgressTracker {
	if flags.Mode != core.OutputNormal {
		return tui.NewNoOpProgressTracker()
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return tui.NewBubbletaeProgressTracker(0, "Running gates")
	}
	return tui.NewTextProgressTracker(0, "Running gates")
}

func main() {
	if len(os.Args) < 2 {
		tui.PrintHelp()
		os.Exit(0)
	}

	command := os.Args[1]

	// Handle help flags
	if command == "--help" || command == "-h" || command == "help" {
		tui.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if command == "--version" || command == "version" {
		fmt.Printf("gate-check %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
		os.Exit(0)
	}

	root, err := os.Getwd()
	if err != nil {
		tui.PrintError("Error", "cannot determine working directory: "+err.Error())
		os.Exit(1)
	}

	flags, verbose, args := parseCommonFlags(os.Args[2:])
	logger := newLogger(verbose)
	defer logger.Sync() //nolint:errcheck

	runner := toolexec.NewRunner(logger)
	registry := core.NewRegistry(logger)
	gates.RegisterAll(registry, runner)
	configStore := core.NewFileConfigStore(root)

	// Ctrl+C kills every tracked child before the process exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		runner.TerminateAll()
		os.Exit(130)
	}()

	switch command {
	case "init":
		runInit(root, registry, configStore)

	case "run":
		os.Exit(runGates(ctx, root, registry, logger, configStore, flags, args))

	case "list":
		runList(registry, flags)

	case "status":
		os.Exit(runStatus(root, registry, configStore, flags))

	case "watch":
		callback := pickCallback(flags)
		if !configStore.Exists() {
			callback.ShowError("Not Initialized", core.ErrNotInitialized.Error())
			os.Exit(core.ExitConfigError)
		}
		err := core.WatchConfig(configStore, func() error {
			code := runGates(ctx, root, registry, logger, configStore, flags, nil)
			if code != core.ExitSuccess {
				return fmt.Errorf("gates failed (exit %d)", code)
			}
			return nil
		})
		if err != nil {
			callback.ShowError("Watch Failed", err.Error())
			os.Exit(1)
		}

	case "install-hooks":
		callback := pickCallback(flags)
		installer := core.NewHookInstaller(root, callback)
		if err := installer.InstallAll(); err != nil {
			callback.ShowError("Hook Installation Failed", err.Error())
			os.Exit(core.CLIExitCodeForError(err))
		}

	case "uninstall-hooks":
		callback := pickCallback(flags)
		installer := core.NewHookInstaller(root, callback)
		if err := installer.Uninstall(); err != nil {
			callback.ShowError("Hook Removal Failed", err.Error())
			os.Exit(core.CLIExitCodeForError(err))
		}

	case "tools":
		runTools(flags)

	case "completion":
		// Generate shell completion script
		if len(os.Args) < 3 {
			tui.PrintError("Usage", "gate-check completion <shell>\nSupported shells: bash, zsh, fish, powershell")
			os.Exit(core.ExitInvalidArguments)
		}

		shell := os.Args[2]
		var script string

		switch shell {
		case "bash":
			script = cmd.GenerateBashCompletion()
		case "zsh":
			script = cmd.GenerateZshCompletion()
		case "fish":
			script = cmd.GenerateFishCompletion()
		case "powershell":
			script = cmd.GeneratePowerShellCompletion()
		default:
			tui.PrintError("Invalid Shell", fmt.Sprintf("'%s' is not supported. Use: bash, zsh, fish, or powershell", shell))
			os.Exit(core.ExitInvalidArguments)
		}

		fmt.Println(script)

	default:
		tui.PrintError("Unknown Command", fmt.Sprintf("'%s' is not a valid gate-check command", command))
		fmt.Println()
		tui.PrintHelp()
		os.Exit(core.ExitInvalidArguments)
	}
}

// runInit drives the interactive wizard and writes gates.yml.
func runInit(root string, registry *core.Registry, configStore *core.FileConfigStore) {
	if configStore.Exists() {
		callback := tui.NewTUICallback()
		if !callback.AskConfirmation("gates.yml already exists", "Overwrite with a fresh configuration?") {
			fmt.Println("Cancelled.")
			os.Exit(1)
		}
	}

	cfg := tui.RunInitWizard(root, registry)
	if err := configStore.Save(*cfg); err != nil {
		tui.PrintError("Initialization Failed", err.Error())
		os.Exit(core.ExitConfigError)
	}
	tui.PrintSuccess("Wrote " + configStore.Path())
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  gate-check run             # Run the default profile")
	fmt.Println("  gate-check install-hooks   # Wire gates into git hooks")
}

// runGates executes the run verb and returns the process exit code.
func runGates(ctx context.Context, root string, registry *core.Registry, logger *zap.Logger, configStore *core.FileConfigStore, flags core.NonInteractiveFlags, args []string) int {
	opts := types.RunOptions{}
	var requested []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--fail-fast":
			opts.FailFast = true
		case arg == "--fix":
			opts.AutoFix = true
		case arg == "--workers":
			if i+1 >= len(args) {
				tui.PrintError("Invalid Flag", "--workers requires a number")
				return core.ExitInvalidArguments
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				tui.PrintError("Invalid Flag", fmt.Sprintf("--workers requires a positive number, got: %s", args[i+1]))
				return core.ExitInvalidArguments
			}
			opts.Workers = n
			i++
		case strings.HasPrefix(arg, "--"):
			tui.PrintError("Invalid Flag", fmt.Sprintf("unknown flag %q for run", arg))
			return core.ExitInvalidArguments
		default:
			requested = append(requested, arg)
		}
	}

	cfg, err := configStore.Load()
	if err != nil {
		if flags.Mode == core.OutputJSON {
			return core.EmitCLIError(core.ErrCodeConfigError, err.Error(), core.ExitConfigError)
		}
		tui.PrintError("Config Error", err.Error())
		return core.ExitConfigError
	}

	// Config supplies defaults the flags did not set.
	if !opts.FailFast {
		opts.FailFast = cfg.FailFast
	}
	if opts.Workers == 0 {
		opts.Workers = cfg.Workers
	}
	if len(requested) == 0 {
		alias := cfg.DefaultAlias
		if alias == "" {
			alias = core.AliasCommit
		}
		requested = []string{alias}
	}

	executor := core.NewExecutor(registry, logger)
	tracker := pickTracker(flags)
	cb := tui.RunCallbacks(tracker)

	unknown := false
	userUnknown := cb.OnUnknownName
	cb.OnUnknownName = func(name string) {
		unknown = true
		if userUnknown != nil && flags.Mode == core.OutputNormal {
			userUnknown(name)
		}
	}

	summary := executor.Execute(ctx, requested, &cfg, root, opts, cb)

	if summary.AllPassed() {
		tracker.Complete()
	} else {
		tracker.Fail(fmt.Errorf("gate failures"))
	}

	if flags.Mode == core.OutputJSON {
		core.EmitCLISuccess(summary)
	} else if flags.Mode == core.OutputNormal {
		printSummary(summary)
	}

	switch {
	case unknown && len(summary.Results) == 0:
		return core.ExitInvalidArguments
	case summary.AllPassed():
		return core.ExitSuccess
	default:
		return core.ExitGatesFailed
	}
}

// printSummary renders the per-status counts and failure details.
func printSummary(summary *types.ExecutionSummary) {
	counts := summary.Counts()
	fmt.Println()
	fmt.Println(tui.StyleTitle(fmt.Sprintf("Run %s finished in %s", summary.RunID[:8], summary.Duration.Round(time.Millisecond))))
	fmt.Printf("  passed: %d  failed: %d  warned: %d  skipped: %d  n/a: %d  error: %d\n",
		counts[types.StatusPassed], counts[types.StatusFailed], counts[types.StatusWarned],
		counts[types.StatusSkipped], counts[types.StatusNotApplicable], counts[types.StatusError])

	for _, r := range summary.Results {
		if !r.Status.IsFailure() {
			continue
		}
		fmt.Println()
		tui.PrintError(r.Key.String(), strings.TrimSpace(r.Output+"\n"+r.ErrorMessage))
		if r.FixSuggestion != "" {
			tui.PrintInfo("  fix: " + r.FixSuggestion)
		}
	}

	if summary.AllPassed() {
		fmt.Println()
		tui.PrintSuccess("All gates passed")
	}
}

// runList prints registered gates and profiles.
func runList(registry *core.Registry, flags core.NonInteractiveFlags) {
	keys := registry.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	aliases := registry.Aliases()

	if flags.Mode == core.OutputJSON {
		aliasMap := make(map[string][]string, len(aliases))
		for _, alias := range aliases {
			members, _ := registry.AliasKeys(alias)
			for _, key := range members {
				aliasMap[alias] = append(aliasMap[alias], key.String())
			}
		}
		core.EmitCLISuccess(map[string]interface{}{
			"gates":    keys,
			"profiles": aliasMap,
		})
		return
	}

	fmt.Println(tui.StyleTitle("Registered Gates:"))
	for _, key := range keys {
		line := "  " + key.String()
		if def, ok := registry.Definition(key); ok {
			if len(def.DependsOn) > 0 {
				depStrs := make([]string, len(def.DependsOn))
				for i, dep := range def.DependsOn {
					depStrs[i] = dep.String()
				}
				line += "  (after " + strings.Join(depStrs, ", ") + ")"
			}
			if def.SupportsFix {
				line += "  [fixable]"
			}
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println(tui.StyleTitle("Profiles:"))
	sort.Strings(aliases)
	for _, alias := range aliases {
		members, _ := registry.AliasKeys(alias)
		memberStrs := make([]string, len(members))
		for i, key := range members {
			memberStrs[i] = key.String()
		}
		fmt.Printf("  %-8s %s\n", alias, strings.Join(memberStrs, ", "))
	}
}

// runStatus prints the per-gate enabled/applicable view for this project.
func runStatus(root string, registry *core.Registry, configStore *core.FileConfigStore, flags core.NonInteractiveFlags) int {
	cfg, err := configStore.Load()
	if err != nil {
		if flags.Mode == core.OutputJSON {
			return core.EmitCLIError(core.ErrCodeConfigError, err.Error(), core.ExitConfigError)
		}
		tui.PrintError("Config Error", err.Error())
		return core.ExitConfigError
	}

	service := core.NewStatusService(registry)
	rows := service.Report(&cfg, root)

	if flags.Mode == core.OutputJSON {
		core.EmitCLISuccess(map[string]interface{}{"gates": rows})
		return core.ExitSuccess
	}

	fmt.Println(tui.StyleTitle("Gate Status:"))
	for _, row := range rows {
		state := "enabled"
		if !row.Enabled {
			state = "disabled"
		}
		line := fmt.Sprintf("  %-22s %-8s", row.Key, state)
		if !row.Applicable {
			line += " (" + row.SkipReason + ")"
		}
		fmt.Println(line)
	}
	return core.ExitSuccess
}

// runTools reports allowlist membership and installation state for every
// executable the security boundary will permit.
func runTools(flags core.NonInteractiveFlags) {
	names := toolexec.AllowedExecutables()

	if flags.Mode == core.OutputJSON {
		tools := make([]map[string]interface{}, 0, len(names))
		for _, name := range names {
			tools = append(tools, map[string]interface{}{
				"name":      name,
				"installed": toolexec.IsInstalled(name),
			})
		}
		core.EmitCLISuccess(map[string]interface{}{"tools": tools})
		return
	}

	fmt.Println(tui.StyleTitle("Allowlisted Tools:"))
	for _, name := range names {
		mark := "✗ not installed"
		if toolexec.IsInstalled(name) {
			mark = "✔ installed"
		}
		fmt.Printf("  %-16s %s\n", name, mark)
	}
}

