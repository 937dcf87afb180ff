package bundle

import (
	"strings"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

const contentXMLTemplate = `<?xml version="1.0" encoding="UTF-8"?>` + clientlibs.LineBreak +
	`<jcr:root xmlns:cq="http://www.day.com/jcr/cq/1.0" xmlns:jcr="http://www.jcp.org/jcr/1.0"` + clientlibs.LineBreak +
	`jcr:primaryType="cq:ClientLibraryFolder"` + clientlibs.LineBreak +
	`jcr:title="$$NAME$$"` + clientlibs.LineBreak +
	`categories="[$$NAME$$]" />`

// ContentXML renders the client library folder descriptor. The folder
// name is both the title and the library's only category.
func ContentXML(folder string) string {
	return strings.ReplaceAll(contentXMLTemplate, "$$NAME$$", folder)
}

// AssetManifest renders css.txt or js.txt for the asset type.
func AssetManifest(t clientlibs.AssetType) string {
	return clientlibs.ManifestBase + clientlibs.LineBreak + t.BundleFileName()
}

// IncludesManifest lists external CSS, then external JS, then the
// contained member files, one per line. Returns "" when all are empty.
func IncludesManifest(externalCSS, externalJS, contained []string) string {
	return lines(externalCSS, externalJS, contained)
}

// DependsManifest lists unresolved mentions one per line.
// Returns "" when there are none.
func DependsManifest(unresolved []string) string {
	return lines(unresolved)
}

func lines(groups ...[]string) string {
	var b strings.Builder
	for _, group := range groups {
		for _, entry := range group {
			b.WriteString(entry)
			b.WriteString(clientlibs.LineBreak)
		}
	}
	return b.String()
}
