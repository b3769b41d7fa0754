// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/snapdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for snapdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_snapdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff pick completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--key -k --subkey -s --order -d --delimiter --output -o --where -w --color -c --previous -p --titles -t --padding --exit-code --profile --region"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text html json yaml csv" -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        diff)
            if [[ $cur == -* ]]; then
                COMPREPLY=( $(compgen -W "$common" -- "$cur") )
            else
                COMPREPLY=( $(compgen -f -- "$cur") )
            fi
            ;;
        pick)
            if [[ $cur == -* ]]; then
                COMPREPLY=( $(compgen -W "$common --pattern" -- "$cur") )
            else
                COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            fi
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _snapdiff snapdiff
`

const zshCompletionScript = `#compdef snapdiff

_snapdiff() {
  local -a cmds
  cmds=(
    'diff:compare two snapshots'
    'pick:choose two snapshots from a directory and compare them'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-k --key)'{-k,--key}'[primary key column]:column'
  '(-s --subkey)'{-s,--subkey}'[secondary key column]:column'
  '(-d --order)'{-d,--order}'[ordering column]:column'
  '--delimiter[field delimiter]:delimiter'
  '(-o --output)'{-o,--output}'[output format]:format:(text html json yaml csv)'
  '(-w --where)'{-w,--where}'[filter expression]:expression'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-p --previous)'{-p,--previous}'[show old rows]'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--padding[column padding]:padding'
  '--exit-code[exit 1 when snapshots differ]'
  '--profile[AWS profile]:profile'
  '--region[AWS region]:region'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'snapdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C $common '1:OLD:_files' '2:NEW:_files'
      ;;
    pick)
      _arguments -C $common '--pattern[snapshot glob]:glob' '::DIR:_directories'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _snapdiff snapdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := stdout(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: snapdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "snapdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
