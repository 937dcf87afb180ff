// Package annotation extracts client library annotations from source text.
//
// # Annotation Syntax
//
// Annotations may appear anywhere in a .css or .js file, usually inside a
// comment block:
//
//	/**
//	 * @clientlib site.core
//	 * @clientlib site.print
//	 * @depends vendor/normalize.css
//	 * @depend base.css
//	 */
//
// Ownership (@clientlib <name>) attributes the file to a library. The name
// matches [A-Za-z0-9._-]+. A file may belong to several libraries; a file
// with no ownership annotation belongs to none and is dropped.
//
// Dependencies (@depend <ref> or @depends <ref>) name other files by a
// path-like reference matching [A-Za-z0-9/._-]+. Declaration order is kept
// and duplicates are preserved; deduplication happens in the registry.
//
// # Usage
//
//	parsed, err := annotation.Parse(path, relPath, content)
//	if errors.Is(err, clientlibs.ErrNoAnnotations) {
//	    // not part of any library
//	} else if err != nil {
//	    // unreadable or binary content, record a diagnostic
//	}
//
// Parsing is pure: it never touches the filesystem.
package annotation
