package storage

import "log/slog"

// DryRun wraps a Provider so that every read goes through and every mutation
// is logged and dropped.
type DryRun struct {
	Provider
	logger *slog.Logger
}

// NewDryRun returns a read-only view of p.
func NewDryRun(p Provider, logger *slog.Logger) *DryRun {
	return &DryRun{Provider: p, logger: logger}
}

func (d *DryRun) Write(path string, content []byte) error {
	d.logger.Debug("dry-run: write", slog.String("path", path), slog.Int("bytes", len(content)))
	return nil
}

func (d *DryRun) Copy(src, dst string) error {
	d.logger.Debug("dry-run: copy", slog.String("src", src), slog.String("dst", dst))
	return nil
}

func (d *DryRun) Rename(oldPath, newPath string) error {
	d.logger.Debug("dry-run: rename", slog.String("from", oldPath), slog.String("to", newPath))
	return nil
}

func (d *DryRun) MkdirAll(dir string) error {
	d.logger.Debug("dry-run: mkdir", slog.String("path", dir))
	return nil
}

func (d *DryRun) RemoveAll(path string) error {
	d.logger.Debug("dry-run: remove", slog.String("path", path))
	return nil
}
