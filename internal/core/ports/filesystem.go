package ports

// Filesystem is the file access capability consumed by the properties
// and datapack reconcilers. Production code backs it with the os
// package; tests back it with an in-memory fake.
type Filesystem interface {
	// Canonicalize resolves path to an absolute path, following
	// symlinks. It fails when the path does not exist.
	Canonicalize(path string) (string, error)
	DirExists(path string) bool
	// MakeDir creates the directory and any missing parents.
	MakeDir(path string) error
	// ListDir returns the full paths of the entries in a directory.
	ListDir(path string) ([]string, error)
	FileExists(path string) bool
	ReadFile(path string) (string, error)
	WriteFile(path string, contents string) error
	CopyFile(src string, dst string) error
	DeleteFile(path string) error
}
