package solution

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
)

// projectLinePattern matches solution project declarations of the shape
//
//	Project("{TYPE-GUID}") = "Name", "relative\path.csproj", "{PROJECT-GUID}"
//
// Lines that do not match (solution folders with malformed quoting, global
// sections, headers) are skipped, not fatal.
var projectLinePattern = regexp.MustCompile(`^Project\("([^"]*)"\)\s*=\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*"([^"]*)"`)

// Parse reads a solution file and returns its project declarations in
// declaration order. Only failing to read the file itself is an error.
func Parse(fs filesystem.FileSystem, path string) (*Solution, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution file %s: %w", path, err)
	}

	sln := &Solution{Path: path, Projects: []Project{}}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		match := projectLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		typeGUIDs := match[1]
		typeGUID, _, _ := strings.Cut(typeGUIDs, ";")

		sln.Projects = append(sln.Projects, Project{
			Name:      match[2],
			Path:      match[3],
			TypeGUID:  typeGUID,
			TypeGUIDs: typeGUIDs,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read solution file %s: %w", path, err)
	}

	return sln, nil
}
