package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gallery/config"
)

// DiskStore keeps assets in a local directory, served under
// PUBLIC_BASE_URL by the HTTP layer.
type DiskStore struct {
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStore() *DiskStore {
	return &DiskStore{
		BasePath: config.DISK_PATH,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStore) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStore) fullPath(remotePath string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(remotePath))
}

func (s *DiskStore) Upload(ctx context.Context, reader io.Reader, remotePath string) (string, error) {
	fileName := s.fullPath(remotePath)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	_, err = io.Copy(file, reader)
	file.Close()
	if err != nil {
		return "", err
	}
	return PublicURLFor(remotePath), nil
}

func (s *DiskStore) Delete(ctx context.Context, remotePath string) error {
	return os.Remove(s.fullPath(remotePath))
}
