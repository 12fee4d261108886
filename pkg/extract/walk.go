package extract

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Eligible reports whether a file name looks like an archive download:
// a .json file that is neither an AppleDouble "._" companion nor an error dump.
func Eligible(name string) bool {
	return strings.HasSuffix(name, ".json") &&
		!strings.HasPrefix(name, "._") &&
		!strings.Contains(strings.ToLower(name), "error")
}

// Walk returns the eligible archive files under root in lexical order.
func Walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if Eligible(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
