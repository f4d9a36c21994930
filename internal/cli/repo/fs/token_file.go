package fs

import (
	"Drawer/internal/cli/repo"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenFile: файловое хранилище токена. Демон пишет, CLI читает.
type TokenFile struct {
	Path string
}

var _ repo.TokenStore = TokenFile{}

// Save сохраняет токен с правами 0600, создавая каталог при необходимости.
func (f TokenFile) Save(token string) error {
	if f.Path == "" {
		return errors.New("token file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return os.Rename(tmp, f.Path)
}

// Load читает токен из файла.
func (f TokenFile) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimRight(string(b), " \t\r\n")
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// Remove удаляет файл токена; отсутствие файла не ошибка.
func (f TokenFile) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
