package msbuild

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
)

// ParseError is a structural error in a project file: malformed markup or a
// required attribute missing on an element that mandates it.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s in %s at line %d", e.Message, e.Path, e.Line)
}

// enclosingGroup is the single piece of scan state the parser carries: which
// grouping element the scan is currently inside. The legacy C#/VB schema and
// the C++ schema nest the same logical fields under different parents and
// reuse element names across contexts, so tags are interpreted by enclosing
// group, never by name alone.
type enclosingGroup int

const (
	groupNone enclosingGroup = iota
	groupProperty
	groupItem
)

type elementAction int

const (
	actionEnterPropertyGroup elementAction = iota
	actionEnterItemGroup
	actionCompiledFile
	actionOutputType
	actionAssemblyName
	actionOutputPath
)

// elementActions is the disambiguation table for both supported project
// schemas: recognized tag → action and the enclosing group the tag is only
// meaningful under (groupNone = meaningful anywhere). Supporting another
// dialect is a table edit.
var elementActions = map[string]struct {
	action elementAction
	under  enclosingGroup
}{
	"PropertyGroup":     {actionEnterPropertyGroup, groupNone},
	"ItemGroup":         {actionEnterItemGroup, groupNone},
	"Compile":           {actionCompiledFile, groupItem},
	"ClCompile":         {actionCompiledFile, groupItem},
	"ClInclude":         {actionCompiledFile, groupItem},
	"Page":              {actionCompiledFile, groupItem},
	"OutputType":        {actionOutputType, groupNone},
	"AssemblyName":      {actionAssemblyName, groupProperty},
	"ProjectName":       {actionAssemblyName, groupProperty},
	"OutputPath":        {actionOutputPath, groupProperty},
	"ConfigurationType": {actionOutputPath, groupProperty},
}

// ParseProject reads a project file and extracts its compiled-source list,
// output type, assembly name and per-configuration output paths. The scan is
// a single forward pass over the element stream; no DOM is materialized.
func ParseProject(fs filesystem.FileSystem, path string) (*Project, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	project := &Project{
		Files:                   []string{},
		PropertyGroupConditions: []string{},
		OutputPaths:             []string{},
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	group := groupNone
	currentCondition := ""

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, structuralError(path, data, decoder, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		entry, recognized := elementActions[start.Name.Local]
		if !recognized {
			continue
		}
		if entry.under != groupNone && entry.under != group {
			// Same tag name, different schema context. Ignore.
			continue
		}

		switch entry.action {
		case actionEnterPropertyGroup:
			group = groupProperty
			currentCondition = attribute(start, "Condition")

		case actionEnterItemGroup:
			group = groupItem

		case actionCompiledFile:
			include, found := requiredAttribute(start, "Include")
			if !found {
				return nil, &ParseError{
					Path:    path,
					Line:    lineAt(data, decoder.InputOffset()),
					Message: fmt.Sprintf("missing attribute %q in element <%s>", "Include", start.Name.Local),
				}
			}
			project.Files = append(project.Files, include)

		case actionOutputType:
			text, err := elementText(decoder, &start)
			if err != nil {
				return nil, structuralError(path, data, decoder, err)
			}
			// Last declaration wins.
			project.OutputType = text

		case actionAssemblyName:
			text, err := elementText(decoder, &start)
			if err != nil {
				return nil, structuralError(path, data, decoder, err)
			}
			project.AssemblyName = text

		case actionOutputPath:
			text, err := elementText(decoder, &start)
			if err != nil {
				return nil, structuralError(path, data, decoder, err)
			}
			project.OutputPaths = append(project.OutputPaths, text)
			project.PropertyGroupConditions = append(project.PropertyGroupConditions, currentCondition)
		}
	}

	return project, nil
}

func elementText(decoder *xml.Decoder, start *xml.StartElement) (string, error) {
	var text string
	if err := decoder.DecodeElement(&text, start); err != nil {
		return "", err
	}
	return text, nil
}

func attribute(start xml.StartElement, name string) string {
	value, _ := requiredAttribute(start, name)
	return value
}

func requiredAttribute(start xml.StartElement, name string) (string, bool) {
	for _, attr := range start.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// structuralError converts a decoder failure into a ParseError carrying the
// file path and line number.
func structuralError(path string, data []byte, decoder *xml.Decoder, err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Path: path, Line: syntaxErr.Line, Message: syntaxErr.Msg}
	}
	return &ParseError{Path: path, Line: lineAt(data, decoder.InputOffset()), Message: err.Error()}
}

// lineAt maps a byte offset in data to a 1-based line number.
func lineAt(data []byte, offset int64) int {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return 1 + bytes.Count(data[:offset], []byte("\n"))
}
