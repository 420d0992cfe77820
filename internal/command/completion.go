// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/diskcache/internal/meta"
)

const bashCompletionScript = `# bash completion for diskcache
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_diskcache()
{
    local cur prev group
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local common="--app -a --color -c --no-color --output -o --titles -t --no-titles"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "cache settings completion --help --version" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    group=${COMP_WORDS[1]}
    if [[ ${COMP_CWORD} -eq 2 ]]; then
        case "$group" in
        cache)
            COMPREPLY=( $(compgen -W "exists get set delete list stores --tldr" -- "$cur") )
            ;;
        settings)
            COMPREPLY=( $(compgen -W "show get save --path -p --tldr" -- "$cur") )
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
        esac
        return 0
    fi

    local opts="$common"
    case "$group:${COMP_WORDS[2]}" in
    cache:list)
        opts="$common --filter -f"
        ;;
    settings:show)
        opts="$common --no-warn"
        ;;
    settings:save)
        opts="$common --dry-run -n --save-flags"
        ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
    return 0
}

complete -F _diskcache diskcache
`

const zshCompletionScript = `#compdef diskcache

_diskcache() {
  local -a groups
  groups=(
    'cache:read and write cached entries'
    'settings:load and save persisted options'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --app)'{-a,--app}'[application name]:app'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'diskcache commands' groups
    return
  fi

  case $words[2] in
    cache)
      if (( CURRENT == 3 )); then
        _values 'cache command' exists get set delete list stores
        return
      fi
      _arguments -C $common \
        '(-f --filter)'{-f,--filter}'[filter expressions]:filter' \
        '*:argument:'
      ;;
    settings)
      if (( CURRENT == 3 )); then
        _values 'settings command' show get save
        return
      fi
      _arguments -C \
        $common \
        '(-p --path)'{-p,--path}'[settings file]:file:_files' \
        '--no-warn[do not warn when missing]' \
        '(-n --dry-run)'{-n,--dry-run}'[show diff only]' \
        '--save-flags[persist global flags]' \
        '*:assignment:'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _diskcache diskcache
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := Writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: diskcache completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "diskcache completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
