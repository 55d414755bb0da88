package ffmpeg

import (
	"context"
	"os"
	"testing"
)

// testContext returns a context canceled when the test ends, matching
// the behavior of (*testing.T).Context on toolchains that lack it.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// chdir changes into dir and restores the previous working directory
// when the test ends, matching (*testing.T).Chdir on toolchains that
// lack it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
