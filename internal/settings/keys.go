package settings

// Property keys understood by the scanner. The names mirror the analysis
// properties of the SonarQube ecosystem this tool feeds into.
const (
	// EnableKey gates the whole bootstrap pipeline.
	EnableKey = "sonar.visualstudio.enable"

	// SolutionKey points at the solution file to use, relative to the base
	// directory, bypassing auto-discovery.
	SolutionKey = "sonar.visualstudio.solution"

	// OutputPathsKey is a comma-separated list of directories to search for
	// built assemblies instead of the output paths declared in project files.
	OutputPathsKey = "sonar.visualstudio.outputPaths"

	// OldBuildConfigurationKey and OldBuildPlatformKey filter declared output
	// paths by build configuration and platform. Deprecated, kept for
	// backward compatibility.
	OldBuildConfigurationKey = "sonar.dotnet.buildConfiguration"
	OldBuildPlatformKey      = "sonar.dotnet.buildPlatform"

	// UnitTestPatternsKey and IntegTestPatternsKey are semicolon-separated
	// wildcard patterns matched against assembly names to classify projects.
	UnitTestPatternsKey  = "sonar.visualstudio.unitTestProjectPatterns"
	IntegTestPatternsKey = "sonar.visualstudio.integTestProjectPatterns"

	// OldSkippedProjectsKey is a comma-separated list of project names to
	// exclude. Deprecated in favor of SkippedProjectPatternKey.
	OldSkippedProjectsKey = "sonar.skippedModules"

	// SkippedProjectPatternKey is a regular expression; matching project
	// names are excluded before parsing.
	SkippedProjectPatternKey = "sonar.visualstudio.skippedProjectPattern"

	// SkipIfNotBuiltKey excludes projects whose assembly could not be located.
	SkipIfNotBuiltKey = "sonar.visualstudio.skipIfNotBuilt"

	// ProjectKeyStrategyKey selects the deprecated "unsafe" module key scheme.
	ProjectKeyStrategyKey = "sonar.visualstudio.projectKeyStrategy"

	// ModulesKey is the host-side manual module list. Setting it together
	// with the bootstrapper is a configuration conflict.
	ModulesKey = "sonar.modules"

	ProjectKeyKey  = "sonar.projectKey"
	ProjectNameKey = "sonar.projectName"
)
