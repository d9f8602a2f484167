// Package manifest lists the supporting files a translated descriptor refers to.
// Copying the files is left to the caller.
package manifest

import (
	"path"
	"slices"
	"strings"
)

// FileType is the kind of a supporting file.
type FileType string

const (
	Script FileType = "script"
	Image  FileType = "image"
)

// File is one manifest record.
type File struct {
	Type FileType `json:"type" yaml:"type"`
	Name string   `json:"name" yaml:"name"`
}

// Set collects files without duplicates.
type Set struct {
	files map[File]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{files: make(map[File]struct{})}
}

// AddScript records a script or cloud-init file under scripts/.
func (s *Set) AddScript(name string) {
	s.add(Script, "scripts", name)
}

// AddImage records a VDU image under images/.
func (s *Set) AddImage(name string) {
	s.add(Image, "images", name)
}

func (s *Set) add(t FileType, dir, name string) {
	if name == "" {
		return
	}

	s.files[File{Type: t, Name: path.Join(dir, path.Base(name))}] = struct{}{}
}

// Len returns the number of distinct files.
func (s *Set) Len() int {
	return len(s.files)
}

// Files returns the records sorted by type, then name.
func (s *Set) Files() []File {
	out := make([]File, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}

	slices.SortFunc(out, func(a, b File) int {
		if c := strings.Compare(string(a.Type), string(b.Type)); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return out
}
