package main

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
)

func TestTreeOrder(t *testing.T) {
	t.Parallel()
	tree := newEntryTree()
	for _, name := range []string{"b.txt", "a/x.txt", "c/", "a/y.txt", "a/deep/z.txt"} {
		tree.add(name, false)
	}
	root, err := tree.ReadDir("")
	if err != nil {
		t.Error("root", err)
	}
	expected := []Entry{{Name: "b.txt"}, {Name: "a", Dir: true}, {Name: "c", Dir: true}}
	if !reflect.DeepEqual(root, expected) {
		t.Error("root", root)
	}
	sub, err := tree.ReadDir("a")
	if err != nil {
		t.Error("a", err)
	}
	expected = []Entry{{Name: "x.txt"}, {Name: "y.txt"}, {Name: "deep", Dir: true}}
	if !reflect.DeepEqual(sub, expected) {
		t.Error("a", sub)
	}
	empty, err := tree.ReadDir("c")
	if err != nil || len(empty) != 0 {
		t.Error("c", empty, err)
	}
}

func TestTreeErrors(t *testing.T) {
	t.Parallel()
	tree := newEntryTree()
	tree.add("b.txt", false)
	if _, err := tree.ReadDir("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Error("not exist", err)
	}
	if _, err := tree.ReadDir("b.txt"); !errors.Is(err, ErrNotDirectory) {
		t.Error("not dir", err)
	}
}

func TestTreeClean(t *testing.T) {
	t.Parallel()
	tree := newEntryTree()
	tree.add("./x/../y.txt", false)
	tree.add("/abs.txt", false)
	tree.add("win\\file.txt", false)
	tree.add("", false)
	tree.add("y.txt/inner", false)
	root, _ := tree.ReadDir(".")
	expected := []Entry{{Name: "y.txt"}, {Name: "abs.txt"}, {Name: "win", Dir: true}}
	if !reflect.DeepEqual(root, expected) {
		t.Error("root", root)
	}
}

func TestTreeFresh(t *testing.T) {
	t.Parallel()
	tree := newEntryTree()
	tree.add("a.txt", false)
	first, _ := tree.ReadDir("")
	first[0].Name = "changed"
	second, _ := tree.ReadDir("")
	if second[0].Name != "a.txt" {
		t.Error("shared slice", second)
	}
}
