package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRun_RepositoryData(t *testing.T) {
	var out bytes.Buffer
	errs, _ := run(os.DirFS("../.."), &out)
	if errs != 0 {
		t.Errorf("repository data should load cleanly:\n%s", out.String())
	}
}

func TestRun_ReportsBrokenFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"data/camera.yaml":           {Data: []byte("startMode: [broken\n")},
		"data/cinematics.yaml":       {Data: []byte("cinematics: {}\n")},
		"data/movie_references.yaml": {Data: []byte("references:\n  - id: x\n    name: X\n    quote: q\n    movie: M\n    mediaPath: data/media/missing.png\n")},
	}

	var out bytes.Buffer
	errs, warnings := run(fsys, &out)
	if errs != 2 {
		t.Errorf("Expected 2 errors (broken camera, missing bodies), got %d:\n%s", errs, out.String())
	}
	// 默认银河过场的全景图同样缺失
	if warnings != 2 || !strings.Contains(out.String(), "missing.png") {
		t.Errorf("Expected two missing media warnings, got %d:\n%s", warnings, out.String())
	}
}
