package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/aarondl/basket/list"
	"github.com/aarondl/basket/osutil"

	"github.com/atotto/clipboard"
	uuidpkg "github.com/gofrs/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// add introduces value at the tail of the list. Adding an identical value
// twice coalesces onto the existing item instead of creating a duplicate.
func (u *uiContext) add(value string) error {
	item := u.replica.Add(value)
	printItem(u.out, item)
	return nil
}

// remove deletes the item matching query.
func (u *uiContext) remove(query string) error {
	id, ok, err := u.findOne(query)
	if err != nil || !ok {
		return err
	}

	return u.replica.Remove(id)
}

// edit changes the value of the item matching query.
func (u *uiContext) edit(query, value string) error {
	id, ok, err := u.findOne(query)
	if err != nil || !ok {
		return err
	}

	_, err = u.replica.Edit(id, list.ItemUpdate{Value: &value})
	return err
}

// editInEditor opens the item matching query's value in $EDITOR, the way
// bpass's edit command does for long entry values, rather than taking the
// new value inline. The scratch file is named with a fresh random uuid so
// concurrent sessions never collide on it, and is always removed afterward.
func (u *uiContext) editInEditor(query string) error {
	id, ok, err := u.findOne(query)
	if err != nil || !ok {
		return err
	}

	item, found := findItemByID(u.replica.Items(), id)
	if !found {
		return list.NotFoundError{ID: id}
	}

	fuuid, err := uuidpkg.NewV4()
	if err != nil {
		return err
	}
	fname := filepath.Join(os.TempDir(), "basket"+fuuid.String()+".txt")

	if err := ioutil.WriteFile(fname, []byte(item.Value), 0600); err != nil {
		return fmt.Errorf("failed to write scratch file: %w", err)
	}
	defer os.Remove(fname)

	if err := osutil.RunEditor(fname); err != nil {
		return fmt.Errorf("editor exited with an error: %w", err)
	}

	newValue, err := ioutil.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("failed to read scratch file: %w", err)
	}

	value := string(newValue)
	if len(value) == 0 {
		infoColor.Println("empty value, not saving")
		return nil
	}

	_, err = u.replica.Edit(id, list.ItemUpdate{Value: &value})
	return err
}

// toggle flips the done flag of the item matching query.
func (u *uiContext) toggle(query string) error {
	id, ok, err := u.findOne(query)
	if err != nil || !ok {
		return err
	}

	current, found := findItemByID(u.replica.Items(), id)
	if !found {
		return list.NotFoundError{ID: id}
	}

	done := !current.Done
	_, err = u.replica.Edit(id, list.ItemUpdate{Done: &done})
	return err
}

// move relocates the item matching query to position, clamping to the end
// of the list if position runs past it.
func (u *uiContext) move(query string, position int) error {
	id, ok, err := u.findOne(query)
	if err != nil || !ok {
		return err
	}

	return u.replica.Move(id, position)
}

// list prints every item, optionally restricted to a fuzzy query.
func (u *uiContext) list(query string) error {
	items := u.replica.Items()
	if len(query) != 0 {
		items = fuzzyFilterItems(items, query)
	}

	if len(items) == 0 {
		infoColor.Println("(empty)")
		return nil
	}

	for _, item := range items {
		printItem(u.out, item)
	}
	return nil
}

func fuzzyFilterItems(items []list.Item, query string) []list.Item {
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.Value
	}

	matches := fuzzy.RankFindFold(query, values)
	sort.Sort(matches)

	filtered := make([]list.Item, len(matches))
	for i, m := range matches {
		filtered[i] = items[m.OriginalIndex]
	}
	return filtered
}

func findItemByID(items []list.Item, id list.ID) (list.Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return list.Item{}, false
}

func printItem(out io.Writer, item list.Item) {
	mark := " "
	if item.Done {
		mark = "x"
	}

	value := valueColor.Sprint(item.Value)
	if item.Done {
		value = doneColor.Sprint(item.Value)
	}

	fmt.Fprintf(out, "[%s] %s %s\n", mark, idColor.Sprint(item.ID.String()), value)
}

// copyToClipboard copies the value of the item matching query.
func (u *uiContext) copyToClipboard(query string) error {
	id, ok, err := u.findOne(query)
	if err != nil || !ok {
		return err
	}

	item, found := findItemByID(u.replica.Items(), id)
	if !found {
		return list.NotFoundError{ID: id}
	}
	return clipboard.WriteAll(item.Value)
}

// undo reverts the most recent local change.
func (u *uiContext) undo() error {
	return u.replica.Undo()
}

// redo re-applies the most recently undone local change.
func (u *uiContext) redo() error {
	return u.replica.Redo()
}

// commit reconciles the session's replica into the root without ending the
// session, letting a long-running REPL periodically publish its changes.
func (u *uiContext) commit() error {
	changes := u.replica.ChangesToCommit()
	if len(changes) <= 1 {
		return nil
	}

	committed, err := u.root.Commit(changes)
	if err != nil {
		return err
	}
	return u.replica.ApplyCommit(committed)
}

func parseIndex(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
