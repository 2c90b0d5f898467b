package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "minic.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"

[build]
main = "src/main.mc"
optimize = true
`)

	manifest, found, err := loadProjectManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("manifest not found")
	}
	if manifest.Config.Package.Name != "demo" {
		t.Errorf("name = %q", manifest.Config.Package.Name)
	}
	if manifest.Config.Build.Main != "src/main.mc" {
		t.Errorf("main = %q", manifest.Config.Build.Main)
	}
	if !manifest.Config.Build.Optimize {
		t.Error("optimize should be true")
	}
}

func TestLoadProjectManifestMissingSections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no package", "[build]\nmain = \"a.mc\"\n"},
		{"no package name", "[package]\n[build]\nmain = \"a.mc\"\n"},
		{"no build", "[package]\nname = \"demo\"\n"},
		{"no build main", "[package]\nname = \"demo\"\n[build]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tc.content)
			if _, _, err := loadProjectManifest(dir); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n[build]\nmain = \"a.mc\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, found, err := findManifest(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want under %q", path, root)
	}
}
