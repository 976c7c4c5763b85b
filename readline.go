// +build linux darwin

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/chzyer/readline"
)

type completer func(string) []string

func setupLineEditor(u *uiContext) error {
	var err error
	u.in, err = newReadlineEditor(u.out, entryCompleter(u))
	return err
}

type readlineEditor struct {
	currentPrompt    string
	promptNeedsReset bool
	instance         *readline.Instance
	out              io.Writer
}

func newReadlineEditor(out io.Writer, fn completer) (readlineEditor, error) {
	instance, err := readline.NewEx(readlineConfig(out, fn))
	if err != nil {
		return readlineEditor{}, err
	}

	return readlineEditor{instance: instance, out: out}, nil
}

func readlineConfig(out io.Writer, entryCompleter completer) *readline.Config {
	var completer readline.AutoCompleter
	if entryCompleter != nil {
		completer = readlineAutocompleter(entryCompleter)
	}

	return &readline.Config{
		Prompt: "> ",

		AutoComplete: completer,

		HistoryFile:            "",
		HistoryLimit:           1000,
		DisableAutoSaveHistory: true,

		InterruptPrompt: "interrupt",
		EOFPrompt:       "exit",

		Stdin:  os.Stdin,
		Stdout: out,
		Stderr: os.Stderr,

		UniqueEditLine: false,
	}
}

// Line implements LineEditor.Line
func (r readlineEditor) Line(prompt string) (string, error) {
	if r.currentPrompt != prompt || r.promptNeedsReset {
		r.currentPrompt = prompt
		r.promptNeedsReset = false
		r.instance.SetPrompt(prompt)
	}

	s, err := r.instance.Readline()
	switch err {
	case nil:
		return s, nil
	case io.EOF:
		r.promptNeedsReset = true
		return "", ErrEnd
	case readline.ErrInterrupt:
		return "", ErrInterrupt
	default:
		return "", err
	}
}

// LineHidden implements LineEditor.LineHidden
func (r readlineEditor) LineHidden(prompt string) (string, error) {
	byt, err := r.instance.ReadPassword(prompt)
	switch err {
	case nil:
		return string(byt), nil
	case io.EOF:
		r.promptNeedsReset = true
		return "", ErrEnd
	case readline.ErrInterrupt:
		return "", ErrInterrupt
	default:
		return "", err
	}
}

// AddHistory adds a line to history
func (r readlineEditor) AddHistory(line string) {
	err := r.instance.SaveHistory(line)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to save history line:", err)
	}
}

// SetEntryCompleter sets a completion function for entries.
func (r readlineEditor) SetEntryCompleter(entryCompleter func(string) []string) {
	r.instance.SetConfig(readlineConfig(r.out, entryCompleter))
}

// entryCompleter completes against the session replica's current item
// values, so tab-completion always reflects this session's own edits.
func entryCompleter(u *uiContext) func(string) []string {
	return func(s string) []string {
		if u == nil || u.replica == nil {
			return nil
		}

		items := u.replica.Items()
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Value
		}
		sort.Strings(names)
		return names
	}
}

func readlineAutocompleter(entryCompleter func(string) []string) readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("add"),
		readline.PcItem("rm", readline.PcItemDynamic(entryCompleter)),
		readline.PcItem("edit", readline.PcItemDynamic(entryCompleter)),
		readline.PcItem("done", readline.PcItemDynamic(entryCompleter)),
		readline.PcItem("mv", readline.PcItemDynamic(entryCompleter)),
		readline.PcItem("ls"),
		readline.PcItem("find"),
		readline.PcItem("cp", readline.PcItemDynamic(entryCompleter)),
		readline.PcItem("undo"),
		readline.PcItem("redo"),
		readline.PcItem("commit"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// Close the readline editor
func (r readlineEditor) Close() error {
	return r.instance.Close()
}
