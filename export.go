package main

import (
	"fmt"
	"os"

	"github.com/mholt/archiver/v3"
)

// Export archives the persisted history document and the image scratch
// directory into dest. The archive format is inferred from the
// destination extension (.zip, .tar, .tar.gz, ...). The history is
// flushed first so the archive reflects the live store.
func (a *App) Export(dest string) error {
	if err := a.persister.Save(a.history.Snapshot()); err != nil {
		return fmt.Errorf("failed to flush history before export: %w", err)
	}

	sources := []string{a.persister.Path()}
	if entries, err := os.ReadDir(a.images.Dir()); err == nil && len(entries) > 0 {
		sources = append(sources, a.images.Dir())
	}

	// Archiver refuses to overwrite; replace a stale export in place.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to replace existing export: %w", err)
		}
	}

	if err := archiver.Archive(sources, dest); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	logger.Info("exported history", "dest", dest, "sources", len(sources))
	return nil
}
