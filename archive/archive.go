// Package archive persists generated plans outside the session so they
// survive the process and can be shared or exported later.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Archiver stores one generated plan.
type Archiver interface {
	Save(ctx context.Context, county string, plan string) error
}

// FileArchiver writes each plan to a timestamped markdown file under Dir.
type FileArchiver struct {
	Dir string
}

func NewFileArchiver(dir string) *FileArchiver {
	return &FileArchiver{Dir: dir}
}

func (a *FileArchiver) Save(ctx context.Context, county string, plan string) error {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}
	path := filepath.Join(a.Dir, planKey(county))
	if err := os.WriteFile(path, []byte(plan), 0o644); err != nil {
		return fmt.Errorf("failed to write plan archive: %w", err)
	}
	return nil
}

// NoOpArchiver discards plans; used when no archive is configured.
type NoOpArchiver struct{}

func NewNoOpArchiver() *NoOpArchiver {
	return &NoOpArchiver{}
}

func (*NoOpArchiver) Save(ctx context.Context, county string, plan string) error {
	return nil
}

func planKey(county string) string {
	slug := strings.ToLower(county)
	slug = strings.NewReplacer(" ", "_", "'", "", "/", "_").Replace(slug)
	return fmt.Sprintf("%d.%s.md", time.Now().Unix(), slug)
}
