package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/aarondl/basket/list"

	"github.com/atotto/clipboard"
	"github.com/gookit/color"
	colorable "github.com/mattn/go-colorable"
)

type uiContext struct {
	// Input
	in LineEditor
	// Output
	out io.Writer

	created       bool
	filename      string
	shortFilename string

	root    *list.Root
	replica *list.Replica
}

var version = "unknown"

func main() {
	var r repl
	var err error

	parseCli()

	if versionCmd.Used {
		fmt.Println("basket version", version)
		return
	}

	ctx := new(uiContext)
	if flagNoColor {
		color.Disable = true
		ctx.out = os.Stdout
	} else {
		writer := colorable.NewColorable(os.Stdout)
		color.Writer = writer
		ctx.out = writer
	}

	if err = setupLineEditor(ctx); err != nil {
		fmt.Printf("failed to setup line editor: %+v\n", err)
		goto Exit
	}

	ctx.filename, err = filepath.Abs(flagFile)
	if err != nil {
		fmt.Printf("failed to find the absolute path to: %q\n", flagFile)
		os.Exit(1)
	}
	ctx.shortFilename = shortPath(ctx.filename)
	r = repl{ctx: ctx}

	if err = ctx.loadList(); err != nil {
		errColor.Printf("failed to open file: %+v\n", err)
		goto Exit
	}

	if err = r.run(); err != nil {
		if err == ErrInterrupt {
			fmt.Println("exiting, did not save file")
			goto Exit
		}
		fmt.Printf("error occurred: %+v\n", err)
		goto Exit
	}

	if err = ctx.saveList(); err != nil {
		fmt.Printf("failed to save file: %+v\n", err)
		goto Exit
	}

Exit:
	if !flagNoClearClip {
		if err = clipboard.WriteAll(""); err != nil {
			fmt.Println("failed to clear the clipboard")
		}
	}

	if err = ctx.in.Close(); err != nil {
		fmt.Println("failed to close terminal properly:", err)
	}

	if err != nil {
		os.Exit(1)
	}
}

// loadList opens flagFile, creating a fresh named root if it does not yet
// exist, and forks a replica to edit for the duration of this session.
func (u *uiContext) loadList() error {
	check, err := os.Stat(flagFile)
	if err != nil {
		if os.IsNotExist(err) {
			u.created = true
		} else {
			return err
		}
	} else if check.IsDir() {
		return errors.New("given file name is a directory")
	}

	if u.created {
		infoColor.Printf("Creating new list: %s\n", u.filename)
		u.root = list.NewRoot(flagListName)
	} else {
		payload, err := ioutil.ReadFile(flagFile)
		if err != nil {
			return err
		}

		u.root = new(list.Root)
		if err := json.Unmarshal(payload, u.root); err != nil {
			return err
		}
	}

	u.replica = u.root.Snapshot()
	return nil
}

// saveList reconciles the session's replica back into the root and writes
// the root's full log to disk.
func (u *uiContext) saveList() error {
	changes := u.replica.ChangesToCommit()
	if len(changes) > 1 {
		committed, err := u.root.Commit(changes)
		if err != nil {
			return err
		}
		if err := u.replica.ApplyCommit(committed); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(u.root, "", "  ")
	if err != nil {
		return err
	}

	return ioutil.WriteFile(flagFile, data, 0600)
}

func shortPath(filename string) string {
	parts := strings.Split(filename, string(filepath.Separator))
	if len(parts) == 1 {
		return filename
	}

	var newParts []string
	for _, p := range parts[:len(parts)-1] {
		if len(p) == 0 {
			newParts = append(newParts, p)
			continue
		}
		newParts = append(newParts, string(p[0]))
	}
	newParts = append(newParts, parts[len(parts)-1])

	return strings.Join(newParts, string(filepath.Separator))
}
