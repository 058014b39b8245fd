// Package archive packages exporter output directories into zip files.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ZipDir writes every regular file under srcDir into a new archive at
// zipPath, storing paths relative to srcDir. Entries are added in
// lexicographic path order so archives are reproducible across runs.
func ZipDir(zipPath, srcDir string) error {
	var files []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(files)

	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addFile(zw, srcDir, path); err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func addFile(zw *zip.Writer, srcDir, path string) error {
	rel, err := filepath.Rel(srcDir, path)
	if err != nil {
		return err
	}

	w, err := zw.Create(filepath.ToSlash(rel))
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
