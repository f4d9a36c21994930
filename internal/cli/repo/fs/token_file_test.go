package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenFile_SaveLoad_TrimsWhitespace(t *testing.T) {
	st := TokenFile{Path: filepath.Join(t.TempDir(), "nested", "token")}
	if err := st.Save("tok-123\n\n"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	// Дозапишем вручную лишние пробелы в конец файла, чтобы проверить trim
	f, _ := os.OpenFile(st.Path, os.O_APPEND|os.O_WRONLY, 0o600)
	_, _ = f.WriteString("  \r\n")
	_ = f.Close()

	tok, err := st.Load()
	if err != nil {
		t.Fatalf("load token: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token not trimmed, got %q", tok)
	}

	info, err := os.Stat(st.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("token file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestTokenFile_Load_MissingOrEmpty(t *testing.T) {
	st := TokenFile{Path: filepath.Join(t.TempDir(), "token")}
	// отсутствует файл
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for missing token file")
	}
	// пустой файл
	if err := os.WriteFile(st.Path, []byte(" \n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := st.Load(); err == nil {
		t.Fatalf("expected error for empty token file")
	}
}

func TestTokenFile_Remove(t *testing.T) {
	st := TokenFile{Path: filepath.Join(t.TempDir(), "token")}
	if err := st.Remove(); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if err := st.Save("x"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(st.Path); !os.IsNotExist(err) {
		t.Fatalf("token file must be gone, err=%v", err)
	}
}

func TestTokenFile_SaveEmptyPath(t *testing.T) {
	if err := (TokenFile{}).Save("x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
