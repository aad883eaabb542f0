package pathtrie

import "testing"

func TestInsertLookup(t *testing.T) {
	var tr Trie[int]
	tr.Insert([]byte("/a/b"), 1)
	tr.Insert([]byte("/a/c"), 2)
	tr.Insert([]byte("/a"), 3)
	tr.Insert([]byte(""), 4)

	cases := []struct {
		key  string
		want int
		ok   bool
	}{
		{"/a/b", 1, true},
		{"/a/c", 2, true},
		{"/a", 3, true},
		{"", 4, true},
		{"/a/b/c", 0, false},
		{"/x", 0, false},
	}
	for _, c := range cases {
		got, ok := tr.Lookup([]byte(c.key))
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("Lookup(%q) = (%d, %t); want (%d, %t)", c.key, got, ok, c.want, c.ok)
		}
	}
}

func TestInsertReplace(t *testing.T) {
	var tr Trie[string]
	tr.Insert([]byte("/a"), "first")
	tr.Insert([]byte("/a"), "second")
	got, ok := tr.Lookup([]byte("/a"))
	if !ok || got != "second" {
		t.Errorf("Lookup(/a) = (%q, %t); want (\"second\", true)", got, ok)
	}
}

func TestInsertSharedPrefixSplit(t *testing.T) {
	var tr Trie[int]
	tr.Insert([]byte("/alpha"), 1)
	tr.Insert([]byte("/alphabet"), 2)
	tr.Insert([]byte("/alpine"), 3)

	for key, want := range map[string]int{"/alpha": 1, "/alphabet": 2, "/alpine": 3} {
		got, ok := tr.Lookup([]byte(key))
		if !ok || got != want {
			t.Errorf("Lookup(%q) = (%d, %t); want (%d, true)", key, got, ok, want)
		}
	}
	if _, ok := tr.Lookup([]byte("/alph")); ok {
		t.Errorf("Lookup(/alph) unexpectedly found a value")
	}
}

func TestWalkVisitsEveryKeyOnce(t *testing.T) {
	var tr Trie[int]
	keys := []string{"/a", "/a/b", "/a/c", "/b", ""}
	for i, k := range keys {
		tr.Insert([]byte(k), i)
	}

	seen := make(map[string]int)
	tr.Walk(func(key []byte, value int) bool {
		seen[string(key)] = value
		return true
	})
	if len(seen) != len(keys) {
		t.Fatalf("Walk visited %d keys, want %d", len(seen), len(keys))
	}
	for i, k := range keys {
		if seen[k] != i {
			t.Errorf("Walk value for %q = %d, want %d", k, seen[k], i)
		}
	}
}

func TestWalkAbortsOnFalse(t *testing.T) {
	var tr Trie[int]
	tr.Insert([]byte("/a"), 1)
	tr.Insert([]byte("/b"), 2)
	tr.Insert([]byte("/c"), 3)

	count := 0
	tr.Walk(func(key []byte, value int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("Walk visited %d keys after abort signal, want 1", count)
	}
}

func TestLookupMissingOnEmptyTrie(t *testing.T) {
	var tr Trie[int]
	if _, ok := tr.Lookup([]byte("/anything")); ok {
		t.Errorf("Lookup on empty trie unexpectedly found a value")
	}
}
