package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
)

type entryNode struct {
	name     string
	dir      bool
	children []*entryNode
	index    map[string]*entryNode
}

func newDirNode(name string) *entryNode {
	return &entryNode{name: name, dir: true, index: make(map[string]*entryNode)}
}

// entryTree keeps archive paths in the order they were stored. Parent
// directories that have no entry of their own appear where their first
// child does.
type entryTree struct {
	root *entryNode
}

func newEntryTree() *entryTree {
	return &entryTree{root: newDirNode("")}
}

func splitName(name string) []string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean("/" + name)
	if name == "/" {
		return nil
	}
	return strings.Split(name[1:], "/")
}

func (t *entryTree) add(name string, dir bool) {
	if strings.HasSuffix(name, "/") {
		dir = true
	}
	parts := splitName(name)
	if len(parts) == 0 {
		return
	}
	cur := t.root
	for i, p := range parts {
		last := i == len(parts)-1
		child, ok := cur.index[p]
		if !ok {
			if last && !dir {
				child = &entryNode{name: p}
			} else {
				child = newDirNode(p)
			}
			cur.index[p] = child
			cur.children = append(cur.children, child)
		} else if !child.dir {
			slog.Debug("path conflict", "name", name, "part", p)
			return
		}
		cur = child
	}
}

func (t *entryTree) find(dir string) (*entryNode, error) {
	cur := t.root
	for _, p := range splitName(dir) {
		child, ok := cur.index[p]
		if !ok {
			return nil, fmt.Errorf("%s: %w", dir, fs.ErrNotExist)
		}
		cur = child
	}
	if !cur.dir {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return cur, nil
}

func (t *entryTree) ReadDir(dir string) ([]Entry, error) {
	node, err := t.find(dir)
	if err != nil {
		return nil, err
	}
	res := make([]Entry, 0, len(node.children))
	for _, c := range node.children {
		res = append(res, Entry{Name: c.name, Dir: c.dir})
	}
	return res, nil
}
