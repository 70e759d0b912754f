package models

// Module is one node of the module tree handed to the analysis host: a
// buildable unit with its source or test files and the string properties
// downstream analyzers read.
type Module struct {
	// Key is the module identifier (unique within the tree)
	Key string `json:"key"`

	// Name is the human-readable module name
	Name string `json:"name"`

	// BaseDir is the absolute path to the module root
	BaseDir string `json:"baseDir"`

	// WorkDir is the scratch directory assigned to the module
	WorkDir string `json:"workDir,omitempty"`

	SourceDirs []string `json:"sourceDirs,omitempty"`
	TestDirs   []string `json:"testDirs,omitempty"`

	SourceFiles []string `json:"sourceFiles,omitempty"`
	TestFiles   []string `json:"testFiles,omitempty"`

	// Properties are forwarded to the analysis host as-is
	Properties map[string]string `json:"properties,omitempty"`

	SubModules []*Module `json:"subModules,omitempty"`
}

// NewModule creates a new Module instance
func NewModule(key, name string) *Module {
	return &Module{
		Key:        key,
		Name:       name,
		Properties: map[string]string{},
	}
}

// AddSubModule attaches a child module
func (m *Module) AddSubModule(sub *Module) {
	m.SubModules = append(m.SubModules, sub)
}

// SetProperty sets a string property on the module
func (m *Module) SetProperty(key, value string) {
	if m.Properties == nil {
		m.Properties = map[string]string{}
	}
	m.Properties[key] = value
}

// GetProperty returns a property value, or "" when unset
func (m *Module) GetProperty(key string) string {
	return m.Properties[key]
}

// ResetSourceDirs clears any pre-configured source directories so the
// bootstrapper fully owns the source layout.
func (m *Module) ResetSourceDirs() {
	m.SourceDirs = nil
	m.SourceFiles = nil
}

// AddSourceDir records a directory containing production sources
func (m *Module) AddSourceDir(dir string) {
	m.SourceDirs = append(m.SourceDirs, dir)
}

// AddTestDir records a directory containing test sources
func (m *Module) AddTestDir(dir string) {
	m.TestDirs = append(m.TestDirs, dir)
}

// AddSourceFile records a production source file
func (m *Module) AddSourceFile(path string) {
	m.SourceFiles = append(m.SourceFiles, path)
}

// AddTestFile records a test source file
func (m *Module) AddTestFile(path string) {
	m.TestFiles = append(m.TestFiles, path)
}
