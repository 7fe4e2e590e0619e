package source

import (
	"archive/zip"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// Zip is a zipped feed. Tables may sit at the root of the archive or inside a single
// top level folder.
type Zip struct {
	Path string
}

func (z *Zip) String() string {
	return z.Path
}

func (z *Zip) ReadFiles(names []string) (map[string]string, error) {
	archive, err := zip.OpenReader(z.Path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	return readArchive(&archive.Reader, names)
}

func readArchive(archive *zip.Reader, names []string) (map[string]string, error) {
	wanted := map[string]bool{}
	for _, name := range names {
		wanted[name] = true
	}

	entries := map[string]*zip.File{}
	for _, zipFile := range archive.File {
		if zipFile.FileInfo().IsDir() || strings.Count(strings.Trim(zipFile.Name, "/"), "/") > 1 {
			continue
		}

		name := path.Base(zipFile.Name)
		if !wanted[name] {
			continue
		}

		// Prefer a file at the archive root over one in a folder
		if existing, exists := entries[name]; exists && !strings.Contains(existing.Name, "/") {
			continue
		}
		entries[name] = zipFile
	}

	files := map[string]string{}
	var filesLock sync.Mutex

	p := pool.New().WithErrors()

	for name, zipFile := range entries {
		name, zipFile := name, zipFile
		p.Go(func() error {
			reader, err := zipFile.Open()
			if err != nil {
				return err
			}
			defer reader.Close()

			contents, err := io.ReadAll(reader)
			if err != nil {
				return err
			}

			filesLock.Lock()
			files[name] = string(contents)
			filesLock.Unlock()

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}
