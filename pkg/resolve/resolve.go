// Package resolve maps raw import text to the file it refers to.
//
// The analyzer reports imports as unparsed source text, so resolution is a
// textual heuristic with a fixed precedence order:
//
//  1. the normalized path resolved against the importer's directory
//  2. the same path with "/index" appended
//  3. the last path segment, matched against file basenames
//
// Only relative ("./", "../", ".") and root-absolute ("/") imports are
// considered; anything else is treated as an external package. A miss is an
// expected outcome and is reported as ok == false, never as an error.
package resolve

import (
	"regexp"
	"strings"
)

var (
	fromPattern   = regexp.MustCompile(`from\s+["']([^"']+)["']`)
	directPattern = regexp.MustCompile(`^["']([^"']+)["']$`)
	extPattern    = regexp.MustCompile(`\.(ts|tsx|js|jsx)$`)
	indexPattern  = regexp.MustCompile(`^index\.(ts|tsx|js|jsx)$`)
)

// ExtractImportPath isolates the quoted path in `... from "<path>"` or in a
// bare quoted side-effect import. ok is false for any other shape.
func ExtractImportPath(moduleText string) (string, bool) {
	if m := fromPattern.FindStringSubmatch(moduleText); m != nil {
		return m[1], true
	}
	if m := directPattern.FindStringSubmatch(moduleText); m != nil {
		return m[1], true
	}
	return "", false
}

// NormalizePath strips one leading "./" and one trailing .ts/.tsx/.js/.jsx
// extension.
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "./")
	return StripExt(p)
}

// StripExt removes one trailing .ts/.tsx/.js/.jsx extension.
func StripExt(p string) string {
	if loc := extPattern.FindStringIndex(p); loc != nil {
		return p[:loc[0]]
	}
	return p
}

// Filename returns the last "/"-separated segment of p, or p itself when
// that segment is empty.
func Filename(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 || i == len(p)-1 {
		return p
	}
	return p[i+1:]
}

// ParentFolder returns the name of the directory directly containing p, or
// "" for a top-level path.
func ParentFolder(p string) string {
	parts := strings.Split(p, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// Dir returns everything before the last "/" of p, or "" when p has none.
func Dir(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// IsIndexFile reports whether p names an index.ts/.tsx/.js/.jsx file.
func IsIndexFile(p string) bool {
	return indexPattern.MatchString(Filename(p))
}

// IsLocal reports whether an import path refers to a file in the codebase
// rather than an external package.
func IsLocal(importPath string) bool {
	return strings.HasPrefix(importPath, ".") || strings.HasPrefix(importPath, "/")
}

// Join resolves importPath against the importer's path.
//
// "./" and "../" paths are applied segment by segment to the importer's
// directory: "." is skipped, ".." pops (popping past the root is a no-op),
// anything else is appended. "/" paths lose their leading slash. Any other
// path is returned unchanged.
func Join(importer, importPath string) string {
	switch {
	case strings.HasPrefix(importPath, "./"), strings.HasPrefix(importPath, "../"):
		var parts []string
		for _, s := range strings.Split(Dir(importer), "/") {
			if s != "" {
				parts = append(parts, s)
			}
		}
		for _, s := range strings.Split(importPath, "/") {
			switch s {
			case ".":
			case "..":
				if len(parts) > 0 {
					parts = parts[:len(parts)-1]
				}
			default:
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "/")
	case strings.HasPrefix(importPath, "/"):
		return importPath[1:]
	default:
		return importPath
	}
}

// Index is a lookup table from normalized paths and bare basenames to file
// paths. It is immutable once built and safe for concurrent use.
type Index struct {
	byKey map[string]string
}

// NewIndex builds the lookup table for paths. Full normalized paths are
// inserted first, later duplicates overwriting earlier ones; each
// basename-without-extension is added only if the key is not yet taken.
func NewIndex(paths []string) *Index {
	idx := &Index{byKey: make(map[string]string, len(paths)*2)}
	for _, p := range paths {
		idx.byKey[NormalizePath(p)] = p
		base := StripExt(Filename(p))
		if _, taken := idx.byKey[base]; !taken {
			idx.byKey[base] = p
		}
	}
	return idx
}

// Lookup returns the file for a normalized path, applying the precedence
// exact, then "/index", then last segment.
func (idx *Index) Lookup(normalized string) (string, bool) {
	if p, ok := idx.byKey[normalized]; ok {
		return p, true
	}
	if p, ok := idx.byKey[normalized+"/index"]; ok {
		return p, true
	}
	if p, ok := idx.byKey[normalized[strings.LastIndex(normalized, "/")+1:]]; ok {
		return p, true
	}
	return "", false
}

// Resolve maps moduleText, found in the file importer, to the path of a
// known file. Self-imports and unresolvable or external imports report
// ok == false.
func (idx *Index) Resolve(moduleText, importer string) (string, bool) {
	importPath, ok := ExtractImportPath(moduleText)
	if !ok || !IsLocal(importPath) {
		return "", false
	}
	target, ok := idx.Lookup(NormalizePath(Join(importer, importPath)))
	if !ok || target == importer {
		return "", false
	}
	return target, true
}
