package tui

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/EmundoT/gate-check/internal/core"
	"github.com/EmundoT/gate-check/internal/projdetect"
	"github.com/EmundoT/gate-check/internal/types"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleCard    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("238"))
)

func check(err error) {
	if err != nil {
		fmt.Println("Aborted.")
		os.Exit(1)
	}
}

// GateCatalog is what the init wizard needs to know about available
// gates, decoupled from the registry type.
type GateCatalog interface {
	Keys() []types.GateKey
	Aliases() []string
}

// RunInitWizard walks the user through producing an initial gates.yml
// configuration. Gates applicable to the detected toolchains are
// pre-selected; everything unselected lands in disabled_gates.
func RunInitWizard(root string, catalog GateCatalog) *types.Config {
	detected := projdetect.Detect(root)

	fmt.Println(styleCard.Render(fmt.Sprintf("Initializing gate-check in %s", root)))
	if tcs := detected.Toolchains(); len(tcs) > 0 {
		fmt.Println(styleDim.Render(fmt.Sprintf("Detected toolchains: %s", joinToolchains(tcs))))
	} else {
		fmt.Println(styleDim.Render("No toolchain markers detected; all gates offered"))
	}

	keys := catalog.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var opts []huh.Option[string]
	var preselected []string
	for _, key := range keys {
		opt := huh.NewOption(key.String(), key.String())
		if gateMatchesDetection(key, detected) {
			opt = opt.Selected(true)
			preselected = append(preselected, key.String())
		}
		opts = append(opts, opt)
	}

	selected := preselected
	err := huh.NewMultiSelect[string]().
		Title("Gates to Enable").
		Description("Space to toggle, Enter to confirm").
		Options(opts...).
		Value(&selected).
		Height(14).
		Run()
	check(err)

	enabled := make(map[string]bool, len(selected))
	for _, s := range selected {
		enabled[s] = true
	}
	var disabled []string
	for _, key := range keys {
		if !enabled[key.String()] {
			disabled = append(disabled, key.String())
		}
	}

	defaultAlias := core.AliasCommit
	aliases := catalog.Aliases()
	sort.Strings(aliases)
	var aliasOpts []huh.Option[string]
	for _, alias := range aliases {
		aliasOpts = append(aliasOpts, huh.NewOption(alias, alias))
	}
	if len(aliasOpts) > 0 {
		err = huh.NewSelect[string]().
			Title("Default Profile").
			Description("Used by 'gate-check run' with no arguments").
			Options(aliasOpts...).
			Value(&defaultAlias).
			Run()
		check(err)
	}

	workersStr := strconv.Itoa(core.DefaultWorkers)
	err = huh.NewInput().
		Title("Parallel Workers").
		Description("Maximum gates running at once").
		Value(&workersStr).
		Validate(func(s string) error {
			n, convErr := strconv.Atoi(s)
			if convErr != nil || n < 1 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		}).
		Run()
	check(err)
	workers, _ := strconv.Atoi(workersStr)

	failFast := false
	err = huh.NewConfirm().
		Title("Fail Fast?").
		Description("Stop scheduling new gates after the first failure").
		Value(&failFast).
		Run()
	check(err)

	return &types.Config{
		DisabledGates: disabled,
		Workers:       workers,
		FailFast:      failFast,
		DefaultAlias:  defaultAlias,
	}
}

// gateMatchesDetection pre-selects a gate whose category clearly belongs
// to a detected toolchain. Gates without a toolchain affinity (such as
// secret scanners) are always pre-selected.
func gateMatchesDetection(key types.GateKey, info *projdetect.Info) bool {
	switch key.Name() {
	case "gofmt", "govet", "gotest", "gocover", "dupl":
		return info.Has(projdetect.ToolchainGo)
	case "black", "ruff", "mypy", "pytest":
		return info.Has(projdetect.ToolchainPython)
	default:
		return true
	}
}

func joinToolchains(tcs []projdetect.Toolchain) string {
	out := ""
	for i, tc := range tcs {
		if i > 0 {
			out += ", "
		}
		out += string(tc)
	}
	return out
}

// PrintError displays an error message with styling to the terminal.
func PrintError(title, msg string) { fmt.Println(styleErr.Render("✖ " + title)); fmt.Println(msg) }

// PrintSuccess displays a success message with styling to the terminal.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintInfo displays an informational message to the terminal.
func PrintInfo(msg string) {
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(msg))
}

// PrintWarning displays a warning message with styling to the terminal.
func PrintWarning(title, msg string) { fmt.Println(styleWarn.Render("! " + title)); fmt.Println(msg) }

// StyleTitle applies title styling to the given text string.
func StyleTitle(text string) string { return styleTitle.Render(text) }

// PrintHelp displays usage information for gate-check commands.
func PrintHelp() {
	fmt.Println(styleTitle.Render("gate-check v1.0"))
	fmt.Println("Run quality gates concurrently with dependency ordering and a secured tool boundary")
	fmt.Println("\nCommands:")
	fmt.Println("  init                Create gates.yml (interactive wizard)")
	fmt.Println("  run [options] [gate|alias ...]")
	fmt.Println("                      Run gates (default: configured default profile)")
	fmt.Println("    --fail-fast       Stop scheduling new gates after the first failure")
	fmt.Println("    --fix             Attempt auto-fix before each validating run")
	fmt.Println("    --workers <N>     Number of parallel workers (default: 4)")
	fmt.Println("    --json            Emit the run summary as JSON")
	fmt.Println("    --quiet, -q       Suppress progress output, exit code only")
	fmt.Println("    --verbose, -v     Show debug logging")
	fmt.Println("    --no-color        Disable styled output")
	fmt.Println("  list                Show registered gates and profiles")
	fmt.Println("  status              Show per-gate enabled/applicable state for this project")
	fmt.Println("  watch               Watch gates.yml and re-run the default profile on change")
	fmt.Println("  install-hooks       Install managed git hooks (pre-commit, pre-push)")
	fmt.Println("  uninstall-hooks     Remove managed git hooks")
	fmt.Println("  tools               Show allowlisted executables and whether each is installed")
	fmt.Println("  completion <shell>  Generate shell completion script (bash/zsh/fish/powershell)")
	fmt.Println("  version             Print version information")
	fmt.Println("\nExamples:")
	fmt.Println("  gate-check init")
	fmt.Println("  gate-check run")
	fmt.Println("  gate-check run commit")
	fmt.Println("  gate-check run format:gofmt lint:govet")
	fmt.Println("  gate-check run pr --fail-fast")
	fmt.Println("  gate-check run format:gofmt --fix")
	fmt.Println("  gate-check run full --workers 8 --json")
	fmt.Println("  gate-check status")
	fmt.Println("  gate-check watch")
	fmt.Println("  gate-check install-hooks")
	fmt.Println("  gate-check completion bash > /etc/bash_completion.d/gate-check")
	fmt.Println("\nNavigation:")
	fmt.Println("  Use arrow keys to navigate, Enter to select")
	fmt.Println("  Press Ctrl+C to cancel at any time")
}
