package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aarondl/basket/list"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

func (u *uiContext) prompt(prompt string) (string, error) {
	line, err := u.in.Line(prompt)
	if err != nil {
		return "", err
	}

	return line, nil
}

// findOne resolves query to a single item id. query may be the item's exact
// "<agent>:<local>" id form, or a fuzzy match against current item values;
// if no single item matches, an explanatory message is printed and a zero
// id with a nil error is returned, mirroring bpass's findOne.
func (u *uiContext) findOne(query string) (list.ID, bool, error) {
	if id, err := list.ParseID(query); err == nil {
		for _, item := range u.replica.Items() {
			if item.ID == id {
				return id, true, nil
			}
		}
	}

	items := u.replica.Items()
	values := make([]string, len(items))
	for i, item := range items {
		values[i] = item.Value
	}

	matches := fuzzy.RankFindFold(query, values)
	sort.Sort(matches)

	switch len(matches) {
	case 0:
		errColor.Printf("No matches for query (%q)\n", query)
		return list.ID{}, false, nil
	case 1:
		return items[matches[0].OriginalIndex].ID, true, nil
	}

	for _, m := range matches {
		if m.Target == query {
			return items[m.OriginalIndex].ID, true, nil
		}
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Target
	}
	errColor.Printf("Multiple matches for query (%q):", query)
	fmt.Print("\n  ")
	fmt.Println(strings.Join(names, "\n  "))

	return list.ID{}, false, nil
}
