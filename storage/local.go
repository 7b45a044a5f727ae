package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"school-directory/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// Local writes images into a directory that is served over HTTP and stores
// the bare filename.
type Local struct {
	dir string
	now func() time.Time
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir, now: time.Now}
}

func (*Local) Name() string { return "local" }

func (l *Local) Store(_ context.Context, data []byte, _, originalName string) (*string, error) {
	ok, err := checkSize(data)
	if !ok {
		return nil, err
	}
	if err := ensureDir(l.dir); err != nil {
		return nil, &models.BackendError{Backend: l.Name(), Err: errors.Wrap(err, "create upload dir")}
	}

	name := fmt.Sprintf("%d_%s_%s", l.now().UnixMilli(), uuid.New().String()[:8], SanitizeFilename(originalName))
	if err := writeNew(filepath.Join(l.dir, name), data); err != nil {
		return nil, &models.BackendError{Backend: l.Name(), Err: errors.Wrap(err, "write image")}
	}
	return &name, nil
}

// writeNew fails rather than replace an existing file.
func writeNew(name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}

// SanitizeFilename drops directory components and replaces whitespace runs
// with underscores.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	switch name {
	case "", ".", "..", "/":
		return "image"
	}
	return name
}

// ensureDir creates dir if it does not exist. An existing non-directory is
// an error.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
