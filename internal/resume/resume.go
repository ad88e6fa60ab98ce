package resume

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"github.com/amishk599/careerforge/internal/model"
)

// AllowedTypes is the file picker's filter hint. It only narrows what the
// picker lists; Describe accepts anything.
var AllowedTypes = []string{".pdf"}

// Describe stats path and fills in what the upload panel shows about it. A
// file that is not a readable PDF is still described, with Pages left at 0.
func Describe(path string) (model.SelectedFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.SelectedFile{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return model.SelectedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return model.SelectedFile{}, fmt.Errorf("%s is a directory", path)
	}

	file := model.SelectedFile{
		Path: abs,
		Name: filepath.Base(abs),
		Size: info.Size(),
	}

	if mt, err := mimetype.DetectFile(abs); err == nil {
		file.MIME = mt.String()
	}
	if file.MIME == "application/pdf" {
		file.Pages = countPages(abs)
	}
	return file, nil
}

func countPages(path string) (pages int) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}
