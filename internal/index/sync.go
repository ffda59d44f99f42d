package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/journal"
)

// Sync walks the journal and brings the index up to date:
//   - new/changed entry files are upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store journal.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteEntry(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile stores a journal file in the session log.
func indexFile(db *DB, path string, data []byte, closedAt time.Time) error {
	body := string(data)
	return db.UpsertEntry(EntryRow{
		Path:     path,
		Title:    deriveTitle(body, path),
		Checksum: checksum.Sum(data),
		ClosedAt: closedAt,
	}, body)
}

// deriveTitle returns the first markdown heading in body, falling back
// to the file path.
func deriveTitle(body, path string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range []string{"### ", "## ", "# "} {
			if strings.HasPrefix(trimmed, prefix) {
				return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			}
		}
	}
	return path
}
