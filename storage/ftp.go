package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"gallery/config"

	"github.com/jlaffaye/ftp"
)

// FTPStore talks to a plain FTP host. Connections are opened and closed
// per call - operations are infrequent and user-driven, so there is no
// pooling.
type FTPStore struct {
	Addr     string
	User     string
	Password string
	Root     string
	Timeout  time.Duration
}

func NewFTPStore() *FTPStore {
	return &FTPStore{
		Addr:     config.FTP_ADDR,
		User:     config.FTP_USER,
		Password: config.FTP_PASSWORD,
		Root:     config.FTP_ROOT,
		Timeout:  time.Duration(config.FTP_TIMEOUT) * time.Second,
	}
}

func (s *FTPStore) connect(ctx context.Context) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(s.Addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(s.Timeout),
	)
	if err != nil {
		return nil, err
	}
	if err = conn.Login(s.User, s.Password); err != nil {
		_ = conn.Quit()
		return nil, err
	}
	return conn, nil
}

func (s *FTPStore) remotePath(p string) string {
	return path.Join(s.Root, p)
}

// ensureDirs creates every missing component of dir. MakeDir errors are
// ignored - the directory usually exists already.
func (s *FTPStore) ensureDirs(conn *ftp.ServerConn, dir string) {
	parts := strings.Split(strings.Trim(dir, "/"), "/")
	current := ""
	if strings.HasPrefix(dir, "/") {
		current = "/"
	}
	for _, part := range parts {
		if part == "" {
			continue
		}
		current = path.Join(current, part)
		_ = conn.MakeDir(current)
	}
}

func (s *FTPStore) Upload(ctx context.Context, reader io.Reader, remotePath string) (string, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Quit()

	full := s.remotePath(remotePath)
	if dir := path.Dir(full); dir != "." && dir != "/" {
		s.ensureDirs(conn, dir)
	}
	if err = conn.Stor(full, reader); err != nil {
		return "", err
	}
	return PublicURLFor(remotePath), nil
}

func (s *FTPStore) Delete(ctx context.Context, remotePath string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	return conn.Delete(s.remotePath(remotePath))
}
