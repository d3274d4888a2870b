package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// Seed populates an empty engine with a small demo hierarchy. It runs
// through the regular mutation path so the catalog picks every file up,
// then clears the journals so the seed itself leaves no history.
func (e *Engine) Seed() error {
	s := e.DefaultSession()

	dirs := []string{
		"C:/docs",
		"C:/docs/work",
		"C:/docs/personal",
		"C:/media",
		"C:/media/photos",
		"D:/backup",
	}
	files := []struct {
		path    string
		content string
	}{
		{"C:/readme.txt", "Welcome to the drive simulator.\n"},
		{"C:/docs/work/report.docx", "Quarterly report placeholder."},
		{"C:/docs/work/notes.txt", "- follow up on review\n- schedule sync\n"},
		{"C:/docs/personal/budget.xlsx", "month,amount\njan,120\nfeb,95\n"},
		{"C:/media/photos/vacation.jpg", "\xff\xd8\xff placeholder"},
		{"D:/backup/archive.zip", "PK placeholder"},
	}

	for _, path := range dirs {
		if _, err := e.CreateDirectory(s, path); err != nil {
			return fmt.Errorf("engine: seed %s: %w", path, err)
		}
	}
	for _, f := range files {
		if _, _, err := e.CreateFile(s, f.path, f.content); err != nil {
			return fmt.Errorf("engine: seed %s: %w", f.path, err)
		}
	}

	e.ops.clear()
	e.failures.clear()
	e.log.Info("seeded demo hierarchy",
		zap.Int("dirs", len(dirs)), zap.Int("files", len(files)))
	return nil
}
