package scrape

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ImageSlot keeps only the most recently scraped contact image at Path.
// Every Save overwrites the previous file.
type ImageSlot struct {
	Path string

	mu sync.Mutex
}

// Save writes data to the slot and returns the slot path. The write goes
// through a temp file and a rename so readers never see a partial image.
func (s *ImageSlot) Save(data []byte) (string, error) {
	if s.Path == "" {
		return "", errors.New("image slot path is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".contact-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return "", err
	}
	return s.Path, nil
}

// Read returns the current image, or an error wrapping os.ErrNotExist when
// nothing has been scraped yet.
func (s *ImageSlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.ReadFile(s.Path)
}
