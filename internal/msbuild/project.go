package msbuild

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Project holds the facts extracted from a single Visual Studio project
// file. It is built by ParseProject and should not be mixed with
// information gathered from solution files.
type Project struct {
	// Files lists the compiled/included source paths in document order.
	// Duplicate declarations in the project file are kept as-is.
	Files []string

	// OutputType is the declared build output kind (Library, Exe, WinExe,
	// ...), empty when the project file does not declare one.
	OutputType string

	// AssemblyName is the declared output assembly identifier, empty when
	// not declared.
	AssemblyName string

	// PropertyGroupConditions and OutputPaths are positionally paired: entry
	// i of each was produced by the i-th output-path declaration, tagged
	// with the condition of the property group most recently opened before
	// it. Both always have the same length.
	PropertyGroupConditions []string
	OutputPaths             []string

	unitTest  bool
	integTest bool
}

// IsUnitTest reports whether the project was classified as a unit test
// project.
func (p *Project) IsUnitTest() bool {
	return p.unitTest
}

// IsIntegTest reports whether the project was classified as an integration
// test project.
func (p *Project) IsIntegTest() bool {
	return p.integTest
}

// IsTest reports whether the project is a test project of either kind.
func (p *Project) IsTest() bool {
	return p.unitTest || p.integTest
}

// AssessTestProject classifies the project by matching its assembly name
// against two semicolon-separated wildcard pattern lists, one for unit
// tests and one for integration tests. The two flags are computed
// independently; a project can be both. Returns IsTest().
func (p *Project) AssessTestProject(unitTestPatterns, integTestPatterns string) bool {
	p.unitTest = p.nameMatchesPatterns(unitTestPatterns)
	p.integTest = p.nameMatchesPatterns(integTestPatterns)
	return p.IsTest()
}

func (p *Project) nameMatchesPatterns(patterns string) bool {
	if patterns == "" || p.AssemblyName == "" {
		return false
	}

	for _, pattern := range strings.Split(patterns, ";") {
		if pattern == "" {
			continue
		}
		if matched, err := doublestar.Match(pattern, p.AssemblyName); err == nil && matched {
			return true
		}
	}

	return false
}
