package resolve

import "testing"

func TestExtractImportPath(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{`{ foo } from "./foo"`, "./foo", true},
		{`* as x from '../lib/x'`, "../lib/x", true},
		{`default from   "react"`, "react", true},
		{`"./side-effect"`, "./side-effect", true},
		{`'./styles.css'`, "./styles.css", true},
		{`require("./x")`, "", false},
		{`./bare`, "", false},
		{``, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractImportPath(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExtractImportPath(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"./foo.ts":      "foo",
		"src/a.tsx":     "src/a",
		"lib/x.js":      "lib/x",
		"lib/x.jsx":     "lib/x",
		"lib/x.test.ts": "lib/x.test",
		"lib/x.d.ts":    "lib/x.d",
		"styles.css":    "styles.css",
		"././a":         "./a",
		"a.ts.ts":       "a.ts",
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPathHelpers(t *testing.T) {
	tests := []struct {
		path, filename, parent, dir string
	}{
		{"src/lib/utils.ts", "utils.ts", "lib", "src/lib"},
		{"utils.ts", "utils.ts", "", ""},
		{"a/b", "b", "a", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Filename(tt.path); got != tt.filename {
				t.Errorf("Filename = %q, want %q", got, tt.filename)
			}
			if got := ParentFolder(tt.path); got != tt.parent {
				t.Errorf("ParentFolder = %q, want %q", got, tt.parent)
			}
			if got := Dir(tt.path); got != tt.dir {
				t.Errorf("Dir = %q, want %q", got, tt.dir)
			}
		})
	}
	if !IsIndexFile("src/index.tsx") || IsIndexFile("src/index.css") || IsIndexFile("src/reindex.ts") {
		t.Error("IsIndexFile misclassified")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		importer, imp, want string
	}{
		{"src/a.ts", "./b", "src/b"},
		{"src/a.ts", "../lib/c", "lib/c"},
		{"src/deep/a.ts", "./../x/./y", "src/x/y"},
		{"a.ts", "../../z", "z"},
		{"a.ts", "./b", "b"},
		{"src/a.ts", "/abs/path", "abs/path"},
		{"src/a.ts", ".hidden", ".hidden"},
	}
	for _, tt := range tests {
		t.Run(tt.importer+"+"+tt.imp, func(t *testing.T) {
			if got := Join(tt.importer, tt.imp); got != tt.want {
				t.Errorf("Join(%q, %q) = %q, want %q", tt.importer, tt.imp, got, tt.want)
			}
		})
	}
}

func TestIndexResolve(t *testing.T) {
	idx := NewIndex([]string{
		"src/a.ts",
		"src/b.ts",
		"src/components/index.tsx",
		"a/foo.ts",
		"b/foo.ts",
		"lib/helpers.js",
	})

	tests := []struct {
		name     string
		module   string
		importer string
		want     string
		wantOK   bool
	}{
		{"relative sibling", `{ b } from "./b"`, "src/a.ts", "src/b.ts", true},
		{"with extension", `x from "./b.ts"`, "src/a.ts", "src/b.ts", true},
		{"directory index", `{ Button } from "./components"`, "src/a.ts", "src/components/index.tsx", true},
		{"basename fallback", `h from "../../vendor/helpers"`, "src/a.ts", "lib/helpers.js", true},
		{"relative beats basename", `{ foo } from "./foo"`, "b/main.ts", "b/foo.ts", true},
		{"relative beats basename other dir", `{ foo } from "./foo"`, "a/main.ts", "a/foo.ts", true},
		{"absolute", `x from "/src/b"`, "lib/helpers.js", "src/b.ts", true},
		{"external package", `React from "react"`, "src/a.ts", "", false},
		{"self import", `x from "./a"`, "src/a.ts", "", false},
		{"unknown", `x from "./nope"`, "src/a.ts", "", false},
		{"unparseable", `import("./b")`, "src/a.ts", "", false},
		{"side effect", `"./b"`, "src/a.ts", "src/b.ts", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Resolve(tt.module, tt.importer)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q, %q) = %q, %v; want %q, %v", tt.module, tt.importer, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewIndex_BasenameFirstWins(t *testing.T) {
	idx := NewIndex([]string{"x/util.ts", "y/util.ts"})
	if got, _ := idx.Lookup("util"); got != "x/util.ts" {
		t.Errorf("Lookup(util) = %q, want first inserted x/util.ts", got)
	}
	if got, _ := idx.Lookup("y/util"); got != "y/util.ts" {
		t.Errorf("Lookup(y/util) = %q", got)
	}
}

func TestNewIndex_FullPathNotOverwrittenByBasename(t *testing.T) {
	// "util" is a top-level file's full normalized path; a later nested
	// util.ts must not take over the key.
	idx := NewIndex([]string{"util.ts", "deep/util.ts"})
	if got, _ := idx.Lookup("util"); got != "util.ts" {
		t.Errorf("Lookup(util) = %q, want util.ts", got)
	}
}
