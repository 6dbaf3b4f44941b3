// Package cmd provides CLI utilities for gate-check
package cmd

import (
	"fmt"
	"strings"
)

// Commands available in gate-check
var commands = []string{
	"init",
	"run",
	"list",
	"status",
	"watch",
	"install-hooks",
	"uninstall-hooks",
	"tools",
	"completion",
	"version",
	"help",
}

// GenerateBashCompletion generates bash completion script
func GenerateBashCompletion() string {
	return fmt.Sprintf(`# bash completion for gate-check
_gate_check_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Commands
    opts="%s"

    # Command-specific options
    case "${prev}" in
        run)
            opts="commit pr full --fail-fast --fix --workers --json --quiet -q --verbose -v --no-color"
            ;;
        list|status|tools)
            opts="--quiet -q --json"
            ;;
        completion)
            opts="bash zsh fish powershell"
            ;;
        init|watch|install-hooks|uninstall-hooks)
            opts=""
            ;;
    esac

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
}

complete -F _gate_check_completions gate-check
`, strings.Join(commands, " "))
}

// GenerateZshCompletion generates zsh completion script
func GenerateZshCompletion() string {
	cmdList := make([]string, len(commands))
	for i, cmd := range commands {
		desc := getCommandDescription(cmd)
		cmdList[i] = fmt.Sprintf("    '%s:%s'", cmd, desc)
	}

	return fmt.Sprintf(`#compdef gate-check

_gate_check() {
    local -a commands
    commands=(
%s
    )

    _arguments -C \
        '1: :->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                run)
                    _arguments \
                        '--fail-fast[Stop scheduling after first failure]' \
                        '--fix[Attempt auto-fix before validating]' \
                        '--workers[Parallel workers]:count:' \
                        '--json[JSON output]' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--verbose[Debug logging]' \
                        '-v[Debug logging]' \
                        '--no-color[Disable styled output]'
                    ;;
                list|status|tools)
                    _arguments \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish powershell)'
                    ;;
            esac
            ;;
    esac
}

_gate_check "$@"
`, strings.Join(cmdList, "\n"))
}

// GenerateFishCompletion generates fish completion script
func GenerateFishCompletion() string {
	var completions []string

	// Add command completions
	for _, cmd := range commands {
		desc := getCommandDescription(cmd)
		completions = append(completions, fmt.Sprintf("complete -c gate-check -f -n '__fish_use_subcommand' -a '%s' -d '%s'", cmd, desc))
	}

	// Add flag completions
	completions = append(completions, "# run command flags")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l fail-fast -d 'Stop scheduling after first failure'")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l fix -d 'Attempt auto-fix before validating'")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l workers -d 'Parallel workers' -r")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l json -d 'JSON output'")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l quiet -s q -d 'Minimal output'")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l verbose -s v -d 'Debug logging'")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from run' -l no-color -d 'Disable styled output'")

	completions = append(completions, "# list/status/tools flags")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from list status tools' -l quiet -s q -d 'Minimal output'")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from list status tools' -l json -d 'JSON output'")

	completions = append(completions, "# completion command shells")
	completions = append(completions, "complete -c gate-check -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish powershell'")

	return strings.Join(completions, "\n")
}

// GeneratePowerShellCompletion generates PowerShell completion script
func GeneratePowerShellCompletion() string {
	cmdArray := make([]string, len(commands))
	for i, cmd := range commands {
		cmdArray[i] = fmt.Sprintf("'%s'", cmd)
	}

	return fmt.Sprintf(`# PowerShell completion for gate-check
Register-ArgumentCompleter -Native -CommandName gate-check -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @(%s)

    $line = $commandAst.ToString()
    $tokens = $line.Split(' ')

    if ($tokens.Count -eq 2) {
        # Complete command
        $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
    elseif ($tokens.Count -gt 2) {
        $subcommand = $tokens[1]

        switch ($subcommand) {
            'run' {
                @('--fail-fast', '--fix', '--workers', '--json', '--quiet', '-q', '--verbose', '-v', '--no-color') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            { $_ -in 'list','status','tools' } {
                @('--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'completion' {
                @('bash', 'zsh', 'fish', 'powershell') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
        }
    }
}
`, strings.Join(cmdArray, ", "))
}

// getCommandDescription returns a short description for a command
func getCommandDescription(cmd string) string {
	descriptions := map[string]string{
		"init":            "Create gates.yml interactively",
		"run":             "Run gates or a profile",
		"list":            "List registered gates and profiles",
		"status":          "Show per-gate enabled/applicable state",
		"watch":           "Re-run gates on config changes",
		"install-hooks":   "Install managed git hooks",
		"uninstall-hooks": "Remove managed git hooks",
		"tools":           "Show allowlisted executables",
		"completion":      "Generate shell completion script",
		"version":         "Print version information",
		"help":            "Show help information",
	}

	if desc, ok := descriptions[cmd]; ok {
		return desc
	}
	return ""
}
