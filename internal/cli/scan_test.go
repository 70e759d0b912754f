package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jmecosta/sonar-visual-studio/internal/filesystem"
	"github.com/jmecosta/sonar-visual-studio/internal/models"
	"github.com/stretchr/testify/require"
)

const scanSolution = `Microsoft Visual Studio Solution File, Format Version 11.00
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App", "App\App.csproj", "{52D47A67-6A35-4E97-A885-5B4FA8AB5CAF}"
EndProject
Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "App.Tests", "App.Tests\App.Tests.csproj", "{E956A227-9E68-4B93-B746-615D6DE9C30B}"
EndProject
`

const appProject = `<Project>
  <PropertyGroup>
    <OutputType>Exe</OutputType>
    <AssemblyName>App</AssemblyName>
  </PropertyGroup>
  <PropertyGroup>
    <OutputPath>bin\</OutputPath>
  </PropertyGroup>
  <ItemGroup>
    <Compile Include="Program.cs" />
  </ItemGroup>
</Project>
`

const appTestsProject = `<Project>
  <PropertyGroup>
    <OutputType>Library</OutputType>
    <AssemblyName>App.Tests</AssemblyName>
  </PropertyGroup>
  <PropertyGroup>
    <OutputPath>bin\</OutputPath>
  </PropertyGroup>
  <ItemGroup>
    <Compile Include="ProgramTest.cs" />
  </ItemGroup>
</Project>
`

func scanWorkspace() *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/ws/App.sln", []byte(scanSolution))
	fs.AddFile("/ws/App/App.csproj", []byte(appProject))
	fs.AddFile("/ws/App/Program.cs", []byte("class Program {}"))
	fs.AddFile("/ws/App/bin/App.exe", []byte("bin"))
	fs.AddFile("/ws/App.Tests/App.Tests.csproj", []byte(appTestsProject))
	fs.AddFile("/ws/App.Tests/ProgramTest.cs", []byte("class ProgramTest {}"))
	fs.AddFile("/ws/App.Tests/bin/App.Tests.dll", []byte("bin"))
	return fs
}

func execute(t *testing.T, fs filesystem.FileSystem, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(fs)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestScan_JSON(t *testing.T) {
	out, err := execute(t, scanWorkspace(),
		"scan", "/ws",
		"--set", "sonar.projectKey=org:app",
		"--set", "sonar.visualstudio.unitTestProjectPatterns=*Tests")
	require.NoError(t, err)

	var root models.Module
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Equal(t, "org:app", root.Key)
	require.Len(t, root.SubModules, 2)
	require.Equal(t, "org:app:App", root.SubModules[0].Key)
	require.Equal(t, []string{"/ws/App/Program.cs"}, root.SubModules[0].SourceFiles)
	require.Equal(t, []string{"/ws/App.Tests/ProgramTest.cs"}, root.SubModules[1].TestFiles)

	snaps.MatchSnapshot(t, out)
}

func TestScan_Text(t *testing.T) {
	out, err := execute(t, scanWorkspace(),
		"scan", "/ws",
		"--format", "text",
		"--set", "sonar.visualstudio.unitTestProjectPatterns=*Tests")
	require.NoError(t, err)

	snaps.MatchSnapshot(t, out)
}

func TestScan_Markdown(t *testing.T) {
	out, err := execute(t, scanWorkspace(),
		"scan", "/ws",
		"--format", "markdown",
		"--set", "sonar.visualstudio.unitTestProjectPatterns=*Tests")
	require.NoError(t, err)

	snaps.MatchSnapshot(t, out)
}

func TestScan_UnknownFormat(t *testing.T) {
	_, err := execute(t, scanWorkspace(), "scan", "/ws", "--format", "yaml")
	require.ErrorContains(t, err, "unknown format")
}

func TestScan_DisabledViaFlag(t *testing.T) {
	out, err := execute(t, scanWorkspace(),
		"scan", "/ws",
		"--format", "text",
		"--set", "sonar.visualstudio.enable=false")
	require.NoError(t, err)
	require.Contains(t, out, "No modules produced.")
}

func TestScan_SettingsFile(t *testing.T) {
	fs := scanWorkspace()
	fs.AddFile("/ws/sonar-project.properties", []byte("sonar.projectKey=org:fromfile\nsonar.projectName=From File\n"))

	out, err := execute(t, fs,
		"scan", "/ws",
		"--settings", "/ws/sonar-project.properties")
	require.NoError(t, err)

	var root models.Module
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Equal(t, "org:fromfile", root.Key)
	require.Equal(t, "From File", root.Name)
}

func TestScan_SetOverridesSettingsFile(t *testing.T) {
	fs := scanWorkspace()
	fs.AddFile("/ws/sonar-project.properties", []byte("sonar.projectKey=org:fromfile\n"))

	out, err := execute(t, fs,
		"scan", "/ws",
		"--settings", "/ws/sonar-project.properties",
		"--set", "sonar.projectKey=org:fromflag")
	require.NoError(t, err)

	var root models.Module
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Equal(t, "org:fromflag", root.Key)
}

func TestScan_DefaultsToWorkingDirectory(t *testing.T) {
	fs := scanWorkspace()
	fs.SetCurrentDir("/ws")

	out, err := execute(t, fs, "scan")
	require.NoError(t, err)

	var root models.Module
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Equal(t, "/ws", root.BaseDir)
	require.Len(t, root.SubModules, 2)
}

func TestScan_RootKeyFallsBackToBaseDirName(t *testing.T) {
	out, err := execute(t, scanWorkspace(), "scan", "/ws")
	require.NoError(t, err)

	var root models.Module
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Equal(t, "ws", root.Key)
	require.Equal(t, "ws", root.Name)
}

func TestRootCommand_DefaultsToScan(t *testing.T) {
	out, err := execute(t, scanWorkspace(), "/ws")
	require.NoError(t, err)

	var root models.Module
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	require.Len(t, root.SubModules, 2)
}

func TestScan_InvalidSetPair(t *testing.T) {
	_, err := execute(t, scanWorkspace(), "scan", "/ws", "--set", "not-a-pair")
	require.Error(t, err)
}
