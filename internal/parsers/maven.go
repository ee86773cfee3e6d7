package parsers

import (
	"encoding/xml"
	"strings"

	"github.com/reposniff/reposniff/internal/models"
)

// MavenParser parses pom.xml manifests. Dependency names use the
// "groupId:artifactId" form.
type MavenParser struct{}

type pomXML struct {
	XMLName    xml.Name `xml:"project"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Properties struct {
		Entries []pomProperty `xml:",any"`
	} `xml:"properties"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

// Parse extracts dependencies from pom.xml content. ${property}
// references in versions are resolved against the <properties> block;
// unresolvable references are kept verbatim.
func (p *MavenParser) Parse(path string, content []byte) ([]models.Dependency, error) {
	var pom pomXML
	if err := xml.Unmarshal(content, &pom); err != nil {
		return nil, parseError(path, err.Error())
	}

	props := make(map[string]string, len(pom.Properties.Entries))
	for _, prop := range pom.Properties.Entries {
		props[prop.XMLName.Local] = strings.TrimSpace(prop.Value)
	}

	deps := make([]models.Dependency, 0, len(pom.Dependencies))
	for _, d := range pom.Dependencies {
		dep := models.Dependency{
			Name:        d.GroupID + ":" + d.ArtifactID,
			Kind:        mavenKind(d),
			Manager:     models.Maven,
			Requirement: interpolate(d.Version, props),
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func mavenKind(d pomDependency) models.DependencyKind {
	if strings.EqualFold(d.Optional, "true") {
		return models.KindOptional
	}
	switch d.Scope {
	case "test":
		return models.KindDev
	case "provided":
		return models.KindBuild
	default:
		return models.KindRuntime
	}
}

func interpolate(version string, props map[string]string) string {
	if !strings.Contains(version, "${") {
		return version
	}
	out := version
	for key, val := range props {
		out = strings.ReplaceAll(out, "${"+key+"}", val)
	}
	return out
}
