package repository

import "golang.org/x/mod/modfile"

// Project represents information about a detected project
type Project struct {
	RootURL      string // project root folder
	Type         string // type of project (eclipse, maven, gradle, go ...)
	Name         string // name of the project (extracted from config files)
	RelativePath string // path from project root to the inspected location
	GoModule     *modfile.Module
}
