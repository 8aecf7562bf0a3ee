package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/woozymasta/redwoodmap/internal/mapdoc"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// ErrNoRegions is returned when a document has no embedded regions block.
var ErrNoRegions = errors.New("document has no regions block")

// WriteError reports a failure to persist a rendered document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write seals the document, renders it and stores it at path.
// The file is written to a temporary sibling and renamed into place,
// so on failure no partial artifact is left behind.
func Write(doc *mapdoc.Document, path string, opts Options) error {
	doc.Seal()

	data, err := Render(doc, opts)
	if err != nil {
		return err
	}

	if err := writeAtomic(path, data); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Int("overlays", len(doc.Overlays())).
		Msg("Map document written")

	return nil
}

func writeAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Report prints the completion message in English and German.
func Report(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w,
		"Map has been saved as '%s'. Open the file in a browser to view the map.\n"+
			"Karte wurde als '%s' gespeichert. Öffnen Sie die Datei in einem Browser, um die Karte anzuzeigen.\n",
		path, path)

	return err
}

// ExtractFeatures reads the region overlays back out of a rendered document.
// Only the script element carrying the regions id is considered, text
// elsewhere in the page is ignored.
func ExtractFeatures(doc []byte) (*geojson.FeatureCollection, error) {
	idx := bytes.Index(doc, []byte("<script "+regionsScriptAttr))
	if idx < 0 {
		return nil, ErrNoRegions
	}

	rest := doc[idx:]
	start := bytes.IndexByte(rest, '>')
	if start < 0 {
		return nil, ErrNoRegions
	}
	rest = rest[start+1:]

	end := bytes.Index(rest, []byte("</script>"))
	if end < 0 {
		return nil, ErrNoRegions
	}

	fc, err := geojson.UnmarshalFeatureCollection(bytes.TrimSpace(rest[:end]))
	if err != nil {
		return nil, fmt.Errorf("parse regions: %w", err)
	}

	return fc, nil
}
