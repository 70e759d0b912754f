package solution

// Project is one project declaration from a solution file.
type Project struct {
	// Name is the project name as declared in the solution.
	Name string `json:"name"`

	// Path is the project file path relative to the solution file's
	// directory, kept with the separators the solution file used.
	Path string `json:"path"`

	// TypeGUID is the first project-type identifier of the declaration.
	TypeGUID string `json:"typeGuid"`

	// TypeGUIDs is the raw project-type identifier text; solutions written
	// by some tools carry several nested identifiers here (used e.g. to
	// detect web-application projects).
	TypeGUIDs string `json:"typeGuids,omitempty"`
}

// Solution is the ordered list of project declarations of a solution file.
// Declaration order is preserved: downstream consumers index into it.
type Solution struct {
	Path     string    `json:"path"`
	Projects []Project `json:"projects"`
}
