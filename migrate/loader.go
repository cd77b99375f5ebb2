package migrate

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/kaqu/sqlift/sqlite"
)

// Migration filename parsing constants.
const (
	// filenameParts is the expected number of parts in a migration
	// filename. Format: NNN_description.sql (2 parts when split by the
	// first "_").
	filenameParts = 2
)

// LoadDir reads migration files from dir within fsys and returns them in
// ascending sequence order, ready for Apply.
//
// Filenames follow NNN_description.sql, where NNN is a decimal sequence
// number (e.g. 001_create_users.sql). The sequence numbers order the files;
// the list position then defines the schema version, so numbering gaps are
// harmless but duplicates are rejected. Files without the pattern or the
// .sql suffix are ignored.
//
// Each file becomes one Migration. Statements within a file are separated
// by a ";" ending a line; full-line "--" comments and blank lines are
// skipped. Statement bodies that themselves contain line-ending semicolons
// (e.g. triggers) must be declared in code instead of loaded from files.
//
// fsys is typically an embed.FS compiled into the binary, or os.DirFS for
// on-disk migration directories.
//
// Parameters:
//   - fsys: Filesystem holding the migration files
//   - dir: Directory within fsys ("." for the root)
//
// Returns:
//   - []Migration: Parsed migrations in application order
//   - error: Unreadable directory/file, duplicate sequence, or empty file
func LoadDir(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	type numbered struct {
		seq  int
		name string
		m    Migration
	}
	var list []numbered
	seen := make(map[int]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		seq, name, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}
		if prev, dup := seen[seq]; dup {
			return nil, fmt.Errorf("%w: %s and %s", ErrDuplicateSequence, prev, entry.Name())
		}
		seen[seq] = entry.Name()

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		steps := splitStatements(string(data))
		if len(steps) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoStatements, entry.Name())
		}

		list = append(list, numbered{
			seq:  seq,
			name: entry.Name(),
			m:    Migration{Name: name, Steps: steps},
		})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].seq < list[j].seq
	})

	migrations := make([]Migration, len(list))
	for i, n := range list {
		migrations[i] = n.m
	}
	return migrations, nil
}

// parseFilename extracts the sequence number and human-readable name from
// a migration filename.
// Example: "001_create_users.sql" -> 1, "create_users", true
func parseFilename(filename string) (seq int, name string, ok bool) {
	if !strings.HasSuffix(filename, ".sql") {
		return 0, "", false
	}
	base := strings.TrimSuffix(filename, ".sql")

	parts := strings.SplitN(base, "_", filenameParts)
	if len(parts) < filenameParts {
		return 0, "", false
	}

	seq, err := strconv.Atoi(parts[0])
	if err != nil || seq < 0 {
		return 0, "", false
	}
	return seq, parts[1], true
}

// splitStatements cuts file contents into individual statements. A
// statement ends where a line's trailing content is ";"; full-line
// comments and blank lines between statements are dropped.
func splitStatements(contents string) []Step {
	var steps []Step
	var buf strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		stmt = strings.TrimSuffix(stmt, ";")
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			steps = append(steps, Step{SQL: sqlite.Statement(stmt)})
		}
	}

	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && buf.Len() == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()

	return steps
}
