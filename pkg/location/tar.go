// pkg/location/tar.go
package location

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/arc-language/libcairo/pkg/build"
)

// Archive is the compression of a tarball
type Archive string

const (
	ArchiveNone Archive = "none"
	ArchiveXz   Archive = "xz"
	ArchiveGz   Archive = "gz"
	ArchiveZstd Archive = "zst"
)

// ArchiveFromName guesses the compression from an archive file name
func ArchiveFromName(name string) Archive {
	switch {
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return ArchiveXz
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return ArchiveGz
	case strings.HasSuffix(name, ".tar.zst"):
		return ArchiveZstd
	default:
		return ArchiveNone
	}
}

// TarURL is a tarball downloaded over HTTP
type TarURL struct {
	URL     string  // Where to download the archive from
	Archive Archive // Compression of the archive
	Sources string  // Directory inside the archive holding the sources

	client *Client
}

// NewTarURL creates a tarball location, guessing its compression from the URL
func NewTarURL(rawURL string) *TarURL {
	return &TarURL{
		URL:     rawURL,
		Archive: ArchiveFromName(rawURL),
	}
}

// WithArchive sets the compression explicitly
func (t *TarURL) WithArchive(a Archive) *TarURL {
	t.Archive = a
	return t
}

// WithSources sets the directory inside the archive holding the sources
func (t *TarURL) WithSources(dir string) *TarURL {
	t.Sources = dir
	return t
}

// WithClient sets the HTTP client used to download the archive
func (t *TarURL) WithClient(c *Client) *TarURL {
	t.client = c
	return t
}

func (t *TarURL) Kind() Kind { return KindTar }

func (t *TarURL) String() string { return t.URL }

// fileName is the name the archive is cached under
func (t *TarURL) fileName() string {
	if u, err := url.Parse(t.URL); err == nil && u.Path != "" {
		if name := path.Base(u.Path); name != "/" && name != "." {
			return name
		}
	}
	return "archive.tar"
}

// EnsureSources downloads the archive into <sources-root>/.downloads,
// extracts it and moves the Sources directory to dir
func (t *TarURL) EnsureSources(ctx context.Context, dir string, bc *build.Context) error {
	ok, err := populated(dir)
	if err != nil {
		return unavailable(t, err)
	}
	if ok {
		bc.Logger().Debugf("Sources already present in %s", dir)
		return nil
	}

	archivePath := filepath.Join(bc.SourcesRoot(), ".downloads", t.fileName())
	if err := t.download(ctx, archivePath, bc); err != nil {
		return unavailable(t, err)
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return unavailable(t, fmt.Errorf("creating %s: %w", parent, err))
	}
	staging, err := os.MkdirTemp(parent, ".extract-*")
	if err != nil {
		return unavailable(t, fmt.Errorf("creating staging directory: %w", err))
	}
	defer os.RemoveAll(staging)

	bc.Logger().Infof("Extracting %s", archivePath)
	count, err := extractTar(archivePath, staging, t.Archive)
	if err != nil {
		return unavailable(t, err)
	}

	sources := filepath.Join(staging, filepath.FromSlash(t.Sources))
	if _, err := os.Stat(sources); err != nil {
		return unavailable(t, fmt.Errorf("archive has no %q directory", t.Sources))
	}
	// os.Rename refuses to replace an existing, even empty, directory on some platforms
	if err := os.RemoveAll(dir); err != nil {
		return unavailable(t, err)
	}
	if err := os.Rename(sources, dir); err != nil {
		return unavailable(t, fmt.Errorf("moving sources: %w", err))
	}

	bc.Logger().Infof("✓ Extracted %d files to %s", count, dir)
	return nil
}

func (t *TarURL) download(ctx context.Context, dest string, bc *build.Context) error {
	if _, err := os.Stat(dest); err == nil {
		bc.Logger().Debugf("Using cached archive %s", dest)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".part-*")
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	partial := f.Name()
	defer os.Remove(partial)

	client := t.client
	if client == nil {
		client = DefaultClient
	}

	bc.Logger().Infof("Downloading %s", t.URL)
	if err := client.Download(ctx, t.URL, f); err != nil {
		f.Close()
		return fmt.Errorf("downloading %s: %w", t.URL, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(partial, dest)
}

// decompress wraps r according to the archive compression
func decompress(r io.Reader, a Archive) (io.ReadCloser, error) {
	switch a {
	case ArchiveNone, "":
		return io.NopCloser(r), nil
	case ArchiveXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		return io.NopCloser(xr), nil
	case ArchiveGz:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return gr, nil
	case ArchiveZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", a)
	}
}

// extractTar unpacks the archive at src into dest and returns the number of files written
func extractTar(src, dest string, a Archive) (int, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	rc, err := decompress(f, a)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return 0, err
	}

	tr := tar.NewReader(rc)
	fileCount := 0

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fileCount, fmt.Errorf("reading tar entry: %w", err)
		}

		target, err := entryPath(root, hdr.Name)
		if err != nil {
			return fileCount, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fileCount, fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if err := checkLinkTarget(root, target, hdr.Linkname); err != nil {
				return fileCount, err
			}
			if err := prepare(target); err != nil {
				return fileCount, err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fileCount, fmt.Errorf("creating symlink: %w", err)
			}
		case tar.TypeLink:
			source, err := entryPath(root, hdr.Linkname)
			if err != nil {
				return fileCount, err
			}
			if err := prepare(target); err != nil {
				return fileCount, err
			}
			if err := os.Link(source, target); err != nil {
				return fileCount, fmt.Errorf("creating hard link: %w", err)
			}
			fileCount++
		case tar.TypeReg:
			if err := prepare(target); err != nil {
				return fileCount, err
			}

			perm := os.FileMode(0644)
			if hdr.Mode&0111 != 0 {
				perm = 0755
			}

			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
			if err != nil {
				return fileCount, fmt.Errorf("creating file %s: %w", target, err)
			}
			_, err = io.Copy(out, tr)
			out.Close()
			if err != nil {
				return fileCount, fmt.Errorf("writing file %s: %w", target, err)
			}
			fileCount++
		default:
			// Devices, fifos and global pax headers are not part of source tarballs
		}
	}

	return fileCount, nil
}

// entryPath resolves an archive entry name inside root. Names that leave root
// are rejected; symlinked parent directories are resolved within root.
func entryPath(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || escapes(clean) {
		return "", fmt.Errorf("%w: archive entry %q escapes the extraction directory", build.ErrConfiguration, name)
	}

	parent, err := securejoin.SecureJoin(root, filepath.Dir(clean))
	if err != nil {
		return "", fmt.Errorf("resolving archive entry %q: %w", name, err)
	}
	return filepath.Join(parent, filepath.Base(clean)), nil
}

// checkLinkTarget rejects symlinks pointing outside root
func checkLinkTarget(root, link, linkname string) error {
	target := filepath.FromSlash(linkname)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || escapes(rel) {
		return fmt.Errorf("%w: archive symlink %s -> %q escapes the extraction directory",
			build.ErrConfiguration, link, linkname)
	}
	return nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// prepare creates the parent of target and removes an existing entry, so a
// write never follows a symlink left by an earlier entry
func prepare(target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if info, err := os.Lstat(target); err == nil && !info.IsDir() {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("replacing %s: %w", target, err)
		}
	}
	return nil
}
