// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"sort"
	"strings"
	"testing"
)

func TestLookupKnownIds(t *testing.T) {
	t.Parallel()

	for _, id := range Ids() {
		i, ok := Lookup(id)
		if !ok {
			t.Errorf("Lookup(%d) not found", id)
			continue
		}
		if i.Id() != id {
			t.Errorf("Lookup(%d).Id() = %d", id, i.Id())
		}
		if i.Summary() == "" {
			t.Errorf("issue %d has an empty summary", id)
		}
		if len(i.Suggestions()) == 0 {
			t.Errorf("issue %d has no suggestions", id)
		}
	}
}

func TestLookupUnknownId(t *testing.T) {
	t.Parallel()

	if _, ok := Lookup(Id(9999)); ok {
		t.Error("Lookup() found an unknown id")
	}
}

func TestIdsSorted(t *testing.T) {
	t.Parallel()

	ids := Ids()
	if len(ids) == 0 {
		t.Fatal("Ids() is empty")
	}
	if !sort.SliceIsSorted(ids, func(a, b int) bool { return ids[a] < ids[b] }) {
		t.Errorf("Ids() not sorted: %v", ids)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	i, ok := Lookup(ScriptNotFoundId)
	if !ok {
		t.Fatal("ScriptNotFoundId missing from catalog")
	}
	text := i.Render()
	if !strings.HasPrefix(text, i.Summary()) {
		t.Errorf("Render() does not start with the summary:\n%s", text)
	}
	if !strings.Contains(text, "• ") {
		t.Errorf("Render() has no bulleted suggestions:\n%s", text)
	}
}

func TestSuggestionsCopied(t *testing.T) {
	t.Parallel()

	i, _ := Lookup(CheckFailedId)
	s := i.Suggestions()
	s[0] = "mutated"
	if i.Suggestions()[0] == "mutated" {
		t.Error("Suggestions() returns the catalog's backing slice")
	}
}
