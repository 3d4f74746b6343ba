package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func collect(t *testing.T, w *Walker, root string) []string {
	t.Helper()
	var files []string
	err := w.Walk(root, func(path string, err error) {
		if err != nil {
			t.Errorf("walk error for %s: %v", path, err)
			return
		}
		rel, _ := filepath.Rel(root, path)
		files = append(files, rel)
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	sort.Strings(files)
	return files
}

func TestWalkSkipsHiddenByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), "x")
	writeFile(t, filepath.Join(root, ".hidden.mp3"), "x")
	writeFile(t, filepath.Join(root, ".secret", "b.mp3"), "x")
	writeFile(t, filepath.Join(root, "sub", "c.mp3"), "x")

	w := &Walker{}
	got := collect(t, w, root)

	want := []string{"a.mp3", filepath.Join("sub", "c.mp3")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestWalkIncludesHiddenWhenEnabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden.mp3"), "x")
	writeFile(t, filepath.Join(root, ".secret", "b.mp3"), "x")

	w := &Walker{Hidden: true}
	got := collect(t, w, root)

	if len(got) != 2 {
		t.Fatalf("got %v, want 2 hidden entries", got)
	}
}

func TestWalkHonorsIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".lrcsyncignore"), "# demos are untagged\ndemo*.mp3\nscratch\n")
	writeFile(t, filepath.Join(root, "keep.mp3"), "x")
	writeFile(t, filepath.Join(root, "demo1.mp3"), "x")
	writeFile(t, filepath.Join(root, "scratch", "d.mp3"), "x")
	writeFile(t, filepath.Join(root, "sub", "demo2.mp3"), "x")
	writeFile(t, filepath.Join(root, "sub", "keep2.mp3"), "x")

	w := &Walker{IgnoreFile: ".lrcsyncignore"}
	got := collect(t, w, root)

	want := []string{"keep.mp3", filepath.Join("sub", "keep2.mp3")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWalkNestedIgnoreFileScopesToSubtree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", ".lrcsyncignore"), "*.flac\n")
	writeFile(t, filepath.Join(root, "top.flac"), "x")
	writeFile(t, filepath.Join(root, "sub", "skipped.flac"), "x")
	writeFile(t, filepath.Join(root, "sub", "kept.mp3"), "x")

	w := &Walker{IgnoreFile: ".lrcsyncignore"}
	got := collect(t, w, root)

	want := []string{filepath.Join("sub", "kept.mp3"), "top.flac"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWalkReportsErrorsAndContinues(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission errors not enforceable")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.mp3"), "x")
	locked := filepath.Join(root, "locked")
	if err := os.MkdirAll(locked, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(locked, "inner.mp3"), "x")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	var files, errs int
	err := (&Walker{}).Walk(root, func(path string, err error) {
		if err != nil {
			errs++
			return
		}
		files++
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if files != 1 {
		t.Errorf("files = %d, want 1", files)
	}
	if errs == 0 {
		t.Error("expected at least one reported walk error")
	}
}
