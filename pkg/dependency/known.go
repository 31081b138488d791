// pkg/dependency/known.go
package dependency

import (
	"github.com/arc-language/libcairo/pkg/library"
	"github.com/arc-language/libcairo/pkg/location"
)

// Names of the libraries in cairo's dependency chain
const (
	PixmanName   = "pixman"
	FreetypeName = "freetype"
	PNGName      = "libpng"
	ZlibName     = "zlib"
)

// Zlib is the compression library used by libpng and freetype
func Zlib() *Autotools {
	return NewAutotools(ZlibName,
		location.NewTarURL("https://zlib.net/fossils/zlib-1.2.13.tar.gz").
			WithSources("zlib-1.2.13"),
	).WithStaticArgs("--static")
}

// PNG is libpng, used by cairo and freetype
func PNG() *Autotools {
	return NewAutotools(PNGName,
		location.NewTarURL("https://download.sourceforge.net/libpng/libpng-1.6.39.tar.xz").
			WithSources("libpng-1.6.39"),
	).
		WithDependencies(Zlib()).
		WithStaticArgs("--enable-static", "--disable-shared")
}

// Freetype is the font rasterizer cairo renders text with
func Freetype() *Autotools {
	return NewAutotools(FreetypeName,
		location.NewTarURL("https://download.savannah.gnu.org/releases/freetype/freetype-2.13.0.tar.xz").
			WithSources("freetype-2.13.0"),
	).
		WithDependencies(PNG(), Zlib()).
		WithConfigureArgs("--with-png=yes", "--with-zlib=yes", "--with-harfbuzz=no", "--with-brotli=no").
		WithStaticArgs("--enable-static", "--disable-shared")
}

// Pixman is the low-level pixel manipulation library cairo draws with
func Pixman() *Autotools {
	return NewAutotools(PixmanName,
		location.NewTarURL("https://cairographics.org/releases/pixman-0.40.0.tar.gz").
			WithSources("pixman-0.40.0"),
	).
		WithConfigureArgs("--disable-gtk", "--disable-libpng").
		WithStaticArgs("--enable-static", "--disable-shared")
}

// ByName returns the known dependency with the given name
func ByName(name string) (library.Library, bool) {
	switch name {
	case PixmanName:
		return Pixman(), true
	case FreetypeName:
		return Freetype(), true
	case PNGName:
		return PNG(), true
	case ZlibName:
		return Zlib(), true
	default:
		return nil, false
	}
}
