package generator

import (
	"fmt"
	"strings"
)

const (
	// TemplateExt marks files whose content must be rendered.
	TemplateExt = ".hbs"

	// SentinelToken is the template tree's placeholder for the project's own
	// name. It is replaced after rendering, wherever it appears in a name.
	SentinelToken = "anchor_init"

	gitignoreName = "gitignore"
)

// Name is the result of resolving one template tree entry name.
type Name struct {
	Raw       string // Name in the template tree
	Final     string // Name written to disk
	Templated bool   // Content must be rendered
}

// RenderName resolves the on-disk name for raw. The passes run in a fixed
// order: render, strip marker, replace sentinel, rename dotfiles.
func RenderName(raw string, r *Renderer) (Name, error) {
	rendered, err := r.RenderString(raw, raw)
	if err != nil {
		return Name{}, err
	}

	final, templated := StripMarker(rendered)
	final = ReplaceSentinel(final, r.Context().ProjectName())
	final = DotfileName(final)

	if err := checkSegment(final); err != nil {
		return Name{}, &TemplateError{Name: raw, Err: err}
	}

	return Name{Raw: raw, Final: final, Templated: templated}, nil
}

// StripMarker removes a trailing TemplateExt and reports whether it was present.
func StripMarker(name string) (string, bool) {
	if stripped, ok := strings.CutSuffix(name, TemplateExt); ok && stripped != "" {
		return stripped, true
	}
	return name, false
}

// ReplaceSentinel substitutes projectName for SentinelToken. A segment equal to
// the token becomes exactly projectName; otherwise every occurrence inside the
// segment is replaced.
func ReplaceSentinel(name, projectName string) string {
	if name == SentinelToken {
		return projectName
	}
	return strings.ReplaceAll(name, SentinelToken, projectName)
}

// DotfileName maps names that cannot be stored literally in a template tree
// to their dotfile form.
func DotfileName(name string) string {
	if name == gitignoreName {
		return "." + gitignoreName
	}
	return name
}

// checkSegment rejects rendered names that would escape the destination
// directory.
func checkSegment(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("renders to invalid name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("renders to %q, which contains a path separator", name)
	}
	return nil
}
