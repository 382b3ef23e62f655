package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every file of a run. FileIDs are indices into it and stay
// valid for the life of the set; adding a path twice keeps both versions.
// A FileSet is not safe for concurrent Add.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// NewFileSetWithBase returns a FileSet whose relative paths are computed
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir is the directory relative paths are computed against. Without an
// explicit base it is the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, _ := os.Getwd()
	return wd
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers content under path and returns its new FileID. Content is
// stored as given; only the flags describe BOM and CRLF.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set is full: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags | detectFlags(content),
	})
	fs.latest[path] = id
	return id
}

// AddVirtual registers in-memory content such as stdin or a test fixture.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk. Content with a UTF-16 byte order mark is
// transcoded to UTF-8 and flagged FileTranscoded; other bytes are kept.
func (fs *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- caller chooses the path
	if err != nil {
		return 0, err
	}
	content, transcoded, err := decodeUTF16(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	var flags FileFlags
	if transcoded {
		flags = FileTranscoded
	}
	return fs.Add(path, content, flags), nil
}

// Get returns the file for id. It panics on ids this set did not issue.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetLatest returns the most recent id added under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve returns the line/column of both ends of span.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}
