// pkg/recipe/recipe.go
package recipe

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/libcairo/pkg/build"
	"github.com/arc-language/libcairo/pkg/dependency"
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/location"
)

// Document is the declarative part of a descriptor as stored in a recipe file
type Document struct {
	Name         string          `toml:"name"`
	Source       Location        `toml:"source"`
	Release      *Location       `toml:"release,omitempty"`
	Options      library.Options `toml:"options"`
	Dependencies []string        `toml:"dependencies"`
}

// Location is a tagged LibraryLocation; Kind selects which fields apply
type Location struct {
	Kind    location.Kind `toml:"kind"`
	URL     string        `toml:"url,omitempty"`
	Archive string        `toml:"archive,omitempty"`
	Sources string        `toml:"sources,omitempty"`
	Tag     string        `toml:"tag,omitempty"`
	Branch  string        `toml:"branch,omitempty"`
	Commit  string        `toml:"commit,omitempty"`
	Dir     string        `toml:"dir,omitempty"`
}

// FromLibrary captures the declarative part of lib
func FromLibrary(lib library.Library) (*Document, error) {
	source, err := FromLocation(lib.Location())
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Name:         lib.Name(),
		Source:       source,
		Options:      lib.Options(),
		Dependencies: lib.Dependencies().Names(),
	}

	if release := lib.ReleaseLocation(); release != nil && release != lib.Location() {
		rel, err := FromLocation(release)
		if err != nil {
			return nil, err
		}
		doc.Release = &rel
	}

	return doc, nil
}

// FromLocation converts a location to its recipe form
func FromLocation(loc location.Location) (Location, error) {
	switch l := loc.(type) {
	case *location.TarURL:
		return Location{Kind: location.KindTar, URL: l.URL, Archive: string(l.Archive), Sources: l.Sources}, nil
	case *location.Git:
		return Location{Kind: location.KindGit, URL: l.URL, Tag: l.Tag, Branch: l.Branch, Commit: l.Commit}, nil
	case *location.Path:
		return Location{Kind: location.KindPath, Dir: l.Dir}, nil
	default:
		return Location{}, fmt.Errorf("%w: unsupported location %T", build.ErrConfiguration, loc)
	}
}

// Location converts the recipe form back to a location
func (l Location) Location() (location.Location, error) {
	switch l.Kind {
	case location.KindTar:
		if l.URL == "" {
			return nil, fmt.Errorf("%w: tar location without url", build.ErrConfiguration)
		}
		t := location.NewTarURL(l.URL).WithSources(l.Sources)
		if l.Archive != "" {
			t.WithArchive(location.Archive(l.Archive))
		}
		return t, nil
	case location.KindGit:
		if l.URL == "" {
			return nil, fmt.Errorf("%w: git location without url", build.ErrConfiguration)
		}
		return &location.Git{URL: l.URL, Tag: l.Tag, Branch: l.Branch, Commit: l.Commit}, nil
	case location.KindPath:
		if l.Dir == "" {
			return nil, fmt.Errorf("%w: path location without dir", build.ErrConfiguration)
		}
		return location.NewPath(l.Dir), nil
	default:
		return nil, fmt.Errorf("%w: unknown location kind %q", build.ErrConfiguration, l.Kind)
	}
}

// ResolveDependencies returns descriptors for the named dependencies, in order
func (d *Document) ResolveDependencies() (library.Dependencies, error) {
	var deps library.Dependencies
	for _, name := range d.Dependencies {
		lib, ok := dependency.ByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown dependency %q", build.ErrConfiguration, name)
		}
		deps = deps.Push(lib)
	}
	return deps, nil
}

// Encode renders lib as a TOML recipe
func Encode(lib library.Library) ([]byte, error) {
	doc, err := FromLibrary(lib)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding recipe: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a TOML recipe
func Decode(data []byte) (*Document, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing recipe: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: recipe without name", build.ErrConfiguration)
	}
	return &doc, nil
}
