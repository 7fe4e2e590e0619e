package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Directory is an unpacked feed with one file per table.
type Directory struct {
	Path string
}

func (d *Directory) String() string {
	return d.Path
}

func (d *Directory) ReadFiles(names []string) (map[string]string, error) {
	files := map[string]string{}
	var filesLock sync.Mutex

	p := pool.New().WithErrors()

	for _, name := range names {
		name := name
		p.Go(func() error {
			filePath := filepath.Join(d.Path, name)

			contents, err := os.ReadFile(filePath)
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("file", filePath).Msg("File not present")
				return nil
			} else if err != nil {
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
