package main

import (
	"errors"
	"fmt"
	"strings"
)

const replHelp = `basket is a small shopping-list editor with commands for basic
list manipulation, undo/redo, and reconciling local edits into the list.

 add  <value>          - Add an item
 rm   <query>           - Remove an item
 edit <query> [value]   - Change an item's value; omit value to edit in $EDITOR
 done <query>           - Toggle an item's done flag
 mv   <query> <pos>     - Move an item to position (0-based, clamps to end)
 ls   [query]           - List items, query restricts to a fuzzy match
 find <query>           - Alias of ls with a query
 cp   <query>           - Copy an item's value to the clipboard

 undo                   - Undo the most recent local change
 redo                   - Redo the most recently undone change
 commit                 - Reconcile local changes into the list now

 help                   - This help
 exit                   - Exit the repl, saving changes

Common Arguments:
  query: an item's "<agent>:<local>" id, or a fuzzy match against its value
`

const normalPrompt = "(%s)> "

var errExit = errors.New("exit")

type repl struct {
	ctx *uiContext

	prompt string
}

func (r *repl) run() error {
	r.prompt = promptColor.Sprintf(normalPrompt, r.ctx.shortFilename)

	for {
		line, err := r.ctx.prompt(r.prompt)
		switch err {
		case ErrInterrupt:
			return err
		case ErrEnd:
			return nil
		case nil:
			// Allow through
		default:
			return err
		}

		line = strings.TrimSpace(line)
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		cmd := args[0]
		// edit's value may contain spaces, so it alone keeps the raw split.
		if cmd == "edit" {
			args = strings.SplitN(line, " ", 3)[1:]
		} else {
			args = args[1:]
		}

		replCommand, ok := replCmds[cmd]
		if !ok {
			fmt.Println(`unknown command, try "help"`)
			continue
		}

		err = replCommand(r, args)
		if err == errExit {
			return nil
		} else if err != nil {
			return err
		}

		r.ctx.in.AddHistory(line)
	}
}

var replCmds = map[string]func(r *repl, args []string) error{
	"add": func(r *repl, args []string) error {
		if len(args) < 1 {
			errColor.Println("syntax: add <value>")
			return nil
		}
		return r.ctx.add(strings.Join(args, " "))
	},

	"rm": func(r *repl, args []string) error {
		if len(args) < 1 {
			errColor.Println("syntax: rm <query>")
			return nil
		}
		return r.ctx.remove(args[0])
	},

	"edit": func(r *repl, args []string) error {
		switch len(args) {
		case 0:
			errColor.Println("syntax: edit <query> [value]")
			return nil
		case 1:
			return r.ctx.editInEditor(args[0])
		default:
			return r.ctx.edit(args[0], args[1])
		}
	},

	"done": func(r *repl, args []string) error {
		if len(args) < 1 {
			errColor.Println("syntax: done <query>")
			return nil
		}
		return r.ctx.toggle(args[0])
	},

	"mv": func(r *repl, args []string) error {
		if len(args) < 2 {
			errColor.Println("syntax: mv <query> <position>")
			return nil
		}
		return r.ctx.move(args[0], parseIndex(args[1], 0))
	},

	"ls": func(r *repl, args []string) error {
		query := ""
		if len(args) != 0 {
			query = args[0]
		}
		return r.ctx.list(query)
	},

	"find": func(r *repl, args []string) error {
		if len(args) < 1 {
			errColor.Println("syntax: find <query>")
			return nil
		}
		return r.ctx.list(args[0])
	},

	"cp": func(r *repl, args []string) error {
		if len(args) < 1 {
			errColor.Println("syntax: cp <query>")
			return nil
		}
		return r.ctx.copyToClipboard(args[0])
	},

	"undo": func(r *repl, args []string) error {
		return r.ctx.undo()
	},

	"redo": func(r *repl, args []string) error {
		return r.ctx.redo()
	},

	"commit": func(r *repl, args []string) error {
		return r.ctx.commit()
	},

	"help": func(r *repl, args []string) error {
		fmt.Print(replHelp)
		return nil
	},

	"exit": func(r *repl, args []string) error {
		return errExit
	},
}
