package models

import (
	"encoding/json"
	"testing"
)

func TestNewModule(t *testing.T) {
	m := NewModule("org:app", "App")
	if m.Key != "org:app" {
		t.Fatalf("expected key %q, got %q", "org:app", m.Key)
	}
	if m.Name != "App" {
		t.Fatalf("expected name %q, got %q", "App", m.Name)
	}
	if len(m.SubModules) != 0 {
		t.Fatalf("expected no sub-modules, got %d", len(m.SubModules))
	}
}

func TestAddSubModule(t *testing.T) {
	root := NewModule("org:app", "App")
	root.AddSubModule(NewModule("org:app:a", "a"))
	root.AddSubModule(NewModule("org:app:b", "b"))

	if len(root.SubModules) != 2 {
		t.Fatalf("expected 2 sub-modules, got %d", len(root.SubModules))
	}
	if root.SubModules[0].Key != "org:app:a" || root.SubModules[1].Key != "org:app:b" {
		t.Fatalf("sub-modules out of order: %v", root.SubModules)
	}
}

func TestProperties(t *testing.T) {
	m := NewModule("org:app", "App")
	if got := m.GetProperty("missing"); got != "" {
		t.Fatalf("expected empty value for unset property, got %q", got)
	}

	m.SetProperty("sonar.cs.fxcop.assembly", "/ws/bin/App.dll")
	if got := m.GetProperty("sonar.cs.fxcop.assembly"); got != "/ws/bin/App.dll" {
		t.Fatalf("unexpected property value: %q", got)
	}
}

func TestResetSourceDirs(t *testing.T) {
	m := NewModule("org:app", "App")
	m.AddSourceDir("/ws/src")
	m.AddTestDir("/ws/test")
	m.AddSourceFile("/ws/src/a.cs")
	m.AddTestFile("/ws/test/b.cs")

	m.ResetSourceDirs()

	if len(m.SourceDirs) != 0 || len(m.SourceFiles) != 0 {
		t.Fatalf("expected source dirs and files to be cleared, got %v and %v", m.SourceDirs, m.SourceFiles)
	}
	if len(m.TestDirs) != 1 || len(m.TestFiles) != 1 {
		t.Fatalf("expected test dirs and files to be kept, got %v and %v", m.TestDirs, m.TestFiles)
	}
}

func TestModuleJSONOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(NewModule("org:app", "App"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := decoded["subModules"]; ok {
		t.Fatalf("expected subModules to be omitted when empty, got %s", data)
	}
	if decoded["key"] != "org:app" {
		t.Fatalf("unexpected key in %s", data)
	}
}
