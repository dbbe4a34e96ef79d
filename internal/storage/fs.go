package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sketchnotes/internal/domain"
)

const (
	nameFile   = "name"
	pagePrefix = "page_"
)

// DirStore implements domain.NoteStore as one directory per note:
//
//	<root>/<noteId>/name
//	<root>/<noteId>/page_<index>
type DirStore struct {
	root string
}

// NewDirStore creates the root directory if needed.
func NewDirStore(root string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create notes root: %w", err)
	}
	return &DirStore{root: root}, nil
}

// Root returns the directory holding every note namespace.
func (s *DirStore) Root() string {
	return s.root
}

func (s *DirStore) noteDir(noteID string) (string, error) {
	if !domain.ValidNoteID(noteID) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidID, noteID)
	}
	return filepath.Join(s.root, noteID), nil
}

func (s *DirStore) existingNoteDir(noteID string) (string, error) {
	dir, err := s.noteDir(noteID)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
		}
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("note %s is not a directory: %w", noteID, domain.ErrNotFound)
	}
	return dir, nil
}

func (s *DirStore) ListNoteIDs() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read notes root: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && domain.ValidNoteID(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

func (s *DirStore) ReadName(noteID string) (string, error) {
	dir, err := s.noteDir(noteID)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, nameFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("name of %s: %w", noteID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("read name: %w", err)
	}
	return string(data), nil
}

func (s *DirStore) WriteName(noteID, name string) error {
	dir, err := s.existingNoteDir(noteID)
	if err != nil {
		return err
	}
	return writeFileAtomic(dir, nameFile, []byte(name))
}

func (s *DirStore) CreateNamespace(noteID string) error {
	dir, err := s.noteDir(noteID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create note dir: %w", err)
	}
	return nil
}

// DeleteNamespace renames the note directory out of the listing before
// removing it, so readers never observe a half-deleted note.
func (s *DirStore) DeleteNamespace(noteID string) error {
	dir, err := s.noteDir(noteID)
	if err != nil {
		return err
	}
	trash := filepath.Join(s.root, ".trash-"+noteID+"-"+uuid.NewString())
	if err := os.Rename(dir, trash); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("unlink note dir: %w", err)
	}
	if err := os.RemoveAll(trash); err != nil {
		return fmt.Errorf("remove note dir: %w", err)
	}
	return nil
}

func pageFile(pageIndex int) string {
	return pagePrefix + strconv.Itoa(pageIndex)
}

// parsePageFile returns the index encoded in a page_<index> file name.
func parsePageFile(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, pagePrefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *DirStore) ReadPage(noteID string, pageIndex int) ([]byte, error) {
	if pageIndex < 0 {
		return nil, fmt.Errorf("page %d: %w", pageIndex, domain.ErrNotFound)
	}
	dir, err := s.noteDir(noteID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, pageFile(pageIndex)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("page %d of %s: %w", pageIndex, noteID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read page: %w", err)
	}
	return data, nil
}

func (s *DirStore) WritePage(noteID string, pageIndex int, drawing []byte) error {
	if pageIndex < 0 {
		return fmt.Errorf("write page: negative index %d", pageIndex)
	}
	dir, err := s.existingNoteDir(noteID)
	if err != nil {
		return err
	}
	return writeFileAtomic(dir, pageFile(pageIndex), drawing)
}

func (s *DirStore) CountPages(noteID string) (int, error) {
	dir, err := s.existingNoteDir(noteID)
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read note dir: %w", err)
	}
	seen := make(map[int]struct{})
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if idx, ok := parsePageFile(e.Name()); ok {
			seen[idx] = struct{}{}
		}
	}
	return len(seen), nil
}

func (s *DirStore) Close() error {
	return nil
}

// writeFileAtomic replaces dir/name through a temp file and rename.
func writeFileAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
