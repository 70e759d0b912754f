package solution

import (
	"testing"

	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
)

const exampleSolution = `Microsoft Visual Studio Solution File, Format Version 11.00
# Visual Studio 2010
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Example.Application", "Example.Application\Example.Application.csproj", "{E956A227-9E68-4B93-B746-615D6DE9C30B}"
EndProject
Project("{2150E333-8FDC-42A3-9474-1A3956D46DE8}") = "Solution Items", "Solution Items", "{6A420E67-5A3B-4B69-92F8-FE0AF6EFE873}"
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Example.Core", "Example.Core\Example.Core.csproj", "{52D47A67-6A35-4E97-A885-5B4FA8AB5CAF}"
EndProject
Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "Example.Native", "Example.Native\Example.Native.vcxproj", "{F8810EA3-3D07-4E8A-A5BC-65F2F6B7E0DD}"
EndProject
Project(BROKEN LINE without proper quoting
Global
	GlobalSection(SolutionConfigurationPlatforms) = preSolution
		Debug|Any CPU = Debug|Any CPU
	EndGlobalSection
EndGlobal
`

func TestParse_ProjectDeclarations(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/solution/Example.sln", []byte(exampleSolution))

	sln, err := Parse(fs, "/solution/Example.sln")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Declaration order is preserved; downstream tests index into it.
	if len(sln.Projects) != 4 {
		t.Fatalf("expected 4 projects, got %d", len(sln.Projects))
	}

	first := sln.Projects[0]
	if first.Name != "Example.Application" {
		t.Fatalf("unexpected name: %q", first.Name)
	}
	if first.Path != `Example.Application\Example.Application.csproj` {
		t.Fatalf("unexpected path: %q", first.Path)
	}
	if first.TypeGUID != "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}" {
		t.Fatalf("unexpected type guid: %q", first.TypeGUID)
	}

	if sln.Projects[2].Name != "Example.Core" {
		t.Fatalf("unexpected third project: %q", sln.Projects[2].Name)
	}
	if sln.Projects[3].Path != `Example.Native\Example.Native.vcxproj` {
		t.Fatalf("unexpected fourth project path: %q", sln.Projects[3].Path)
	}
}

func TestParse_SolutionFolderDeclarationKept(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/solution/Example.sln", []byte(exampleSolution))

	sln, err := Parse(fs, "/solution/Example.sln")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Solution folders parse like any declaration; the assembler filters
	// them out later by file extension.
	if sln.Projects[1].Name != "Solution Items" {
		t.Fatalf("unexpected second declaration: %q", sln.Projects[1].Name)
	}
}

func TestParse_EmptySolution(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/solution/Empty.sln", []byte("Microsoft Visual Studio Solution File, Format Version 11.00\nGlobal\nEndGlobal\n"))

	sln, err := Parse(fs, "/solution/Empty.sln")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(sln.Projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(sln.Projects))
	}
}

func TestParse_UnreadableFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	if _, err := Parse(fs, "/solution/Missing.sln"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParse_NestedTypeGUIDs(t *testing.T) {
	content := `Project("{349C5851-65DF-11DA-9384-00065B846F21};{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Example.Web", "Example.Web\Example.Web.csproj", "{0AF39722-11A3-4A74-B480-6DDD8E63E651}"
EndProject
`

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/s.sln", []byte(content))

	sln, err := Parse(fs, "/s.sln")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(sln.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(sln.Projects))
	}

	project := sln.Projects[0]
	if project.TypeGUID != "{349C5851-65DF-11DA-9384-00065B846F21}" {
		t.Fatalf("unexpected type guid: %q", project.TypeGUID)
	}
	if project.TypeGUIDs != "{349C5851-65DF-11DA-9384-00065B846F21};{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}" {
		t.Fatalf("unexpected type guids: %q", project.TypeGUIDs)
	}
}
