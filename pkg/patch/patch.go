// pkg/patch/patch.go
package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/arc-language/libcairo/pkg/build"
)

// LedgerFileName is the file, kept at the root of a source tree, that records
// which files of the tree are currently patched
const LedgerFileName = ".libcairo-patches.yaml"

// BackupSuffix is appended to a file name to form its backup
const BackupSuffix = ".bak"

// Transform rewrites the content of a source file
type Transform func(contents string) string

// ledger is the on-disk form of the patch states
type ledger struct {
	Files map[string]State `yaml:"files"`
}

// Patcher applies text transforms to the files of one source tree so that
// re-running a build always patches pristine content.
//
// Each file moves between two states: Pristine and Patched. Apply writes the
// backup before recording Patched and only then rewrites the file, so a build
// interrupted at any point leaves a tree that Reset can restore.
// A Patcher is not safe for concurrent use; builds of one tree must be serialized.
type Patcher struct {
	root   string
	states map[string]State
	logger logrus.FieldLogger
}

// Open loads the patch ledger of the tree rooted at root
func Open(root string, logger logrus.FieldLogger) (*Patcher, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty source root", build.ErrConfiguration)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &Patcher{
		root:   filepath.Clean(root),
		states: make(map[string]State),
		logger: logger,
	}

	data, err := os.ReadFile(p.ledgerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading patch ledger: %w", err)
	}

	var l ledger
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing patch ledger %s: %w", p.ledgerPath(), err)
	}
	for name, state := range l.Files {
		p.states[name] = state
	}

	return p, nil
}

// Root returns the source tree the patcher manages
func (p *Patcher) Root() string {
	return p.root
}

// BackupPath returns where the pristine content of path is kept
func BackupPath(path string) string {
	return path + BackupSuffix
}

// State reports whether path is currently patched
func (p *Patcher) State(path string) State {
	key, err := p.key(path)
	if err != nil {
		return Pristine
	}
	return p.states[key]
}

// Apply transforms the file at path. If the file is already patched it is
// first restored from its backup, so the transform always sees pristine content.
func (p *Patcher) Apply(path string, transform Transform) error {
	key, err := p.key(path)
	if err != nil {
		return err
	}

	if p.states[key] == Patched {
		if err := p.Reset(path); err != nil {
			return err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := writeFileAtomic(BackupPath(path), original, info.Mode().Perm()); err != nil {
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	if err := p.transition(key, Patched); err != nil {
		return err
	}

	patched := transform(string(original))
	if err := writeFileAtomic(path, []byte(patched), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing patched %s: %w", path, err)
	}

	p.logger.Debugf("✓ Patched %s", key)
	return nil
}

// Reset restores path from its backup. Pristine files are left alone.
func (p *Patcher) Reset(path string) error {
	key, err := p.key(path)
	if err != nil {
		return err
	}
	if p.states[key] != Patched {
		return nil
	}

	backup := BackupPath(path)
	info, err := os.Stat(backup)
	if err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	original, err := os.ReadFile(backup)
	if err != nil {
		return fmt.Errorf("reading backup of %s: %w", path, err)
	}
	if err := writeFileAtomic(path, original, info.Mode().Perm()); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}

	if err := p.transition(key, Pristine); err != nil {
		return err
	}

	p.logger.Debugf("Restored %s", key)
	return nil
}

// ResetAll restores every patched file of the tree
func (p *Patcher) ResetAll() error {
	for _, key := range p.Patched() {
		if err := p.Reset(p.path(key)); err != nil {
			return err
		}
	}
	return nil
}

// Patched lists the patched files relative to the root, sorted
func (p *Patcher) Patched() []string {
	var keys []string
	for key, state := range p.states {
		if state == Patched {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (p *Patcher) transition(key string, to State) error {
	previous, known := p.states[key]
	if to == Pristine {
		delete(p.states, key)
	} else {
		p.states[key] = to
	}

	if err := p.save(); err != nil {
		if known {
			p.states[key] = previous
		} else {
			delete(p.states, key)
		}
		return err
	}
	return nil
}

func (p *Patcher) save() error {
	data, err := yaml.Marshal(&ledger{Files: p.states})
	if err != nil {
		return fmt.Errorf("marshaling patch ledger: %w", err)
	}
	if err := os.MkdirAll(p.root, 0755); err != nil {
		return fmt.Errorf("creating source root: %w", err)
	}
	if err := writeFileAtomic(p.ledgerPath(), data, 0644); err != nil {
		return fmt.Errorf("writing patch ledger: %w", err)
	}
	return nil
}

func (p *Patcher) ledgerPath() string {
	return filepath.Join(p.root, LedgerFileName)
}

// key validates path and returns its ledger key
func (p *Patcher) key(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: could not get file name of an empty path", build.ErrConfiguration)
	}
	clean := filepath.Clean(path)
	name := filepath.Base(clean)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: could not get file name of %q", build.ErrConfiguration, path)
	}
	if filepath.Dir(clean) == clean {
		return "", fmt.Errorf("%w: could not get parent folder of %q", build.ErrConfiguration, path)
	}

	rel, err := filepath.Rel(p.root, clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(clean), nil
	}
	return filepath.ToSlash(rel), nil
}

func (p *Patcher) path(key string) string {
	native := filepath.FromSlash(key)
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(p.root, native)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
