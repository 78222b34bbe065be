package importer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyMedia mirrors a wp-content/uploads directory into the uploads
// tree under the media root, preserving relative paths. Existing files
// are overwritten so reruns pick up changed sources. Returns the
// number of files copied.
func (r *Runner) copyMedia(sourceDir string) (int, error) {
	if r.opts.MediaRoot == "" {
		return 0, fmt.Errorf("media root not configured")
	}

	info, err := os.Stat(sourceDir)
	if err != nil {
		return 0, fmt.Errorf("media source: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("media source %s is not a directory", sourceDir)
	}

	destRoot := filepath.Join(r.opts.MediaRoot, "uploads")
	copied := 0

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(destRoot, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := copyFile(path, dest); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, err
	}
	return copied, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
