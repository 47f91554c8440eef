package types

import "github.com/m-mizutani/goerr/v2"

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planung"
	ProjectStatusActive    ProjectStatus = "aktiv"
	ProjectStatusCompleted ProjectStatus = "abgeschlossen"
	ProjectStatusArchived  ProjectStatus = "archiviert"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	default:
		return false
	}
}

func (s ProjectStatus) String() string {
	return string(s)
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid project status", goerr.V("status", s))
	}
	return status, nil
}
