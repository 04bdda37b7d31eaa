package content

import _ "embed"

//go:embed bundle/veille.json
var bundledVeille []byte

//go:embed bundle/projects.json
var bundledProjects []byte

// BundledVeille is the topic list shipped with the binary.
func BundledVeille() Source { return Bundled{Name: "veille.json", Data: bundledVeille} }

// BundledProjects is the project gallery shipped with the binary.
func BundledProjects() Source { return Bundled{Name: "projects.json", Data: bundledProjects} }
