package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// Calculator is an interface for computing bundle checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of the content with comments
	// removed and whitespace collapsed, so reformatting does not change it.
	CalculateNormalized(t clientlibs.AssetType, content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// Normalization:
//  1. Remove comments (/* */ for both types, // for scripts) while
//     preserving string literals
//  2. Collapse whitespace to single spaces
//
// Case is preserved: identifiers in scripts and selectors in style sheets
// are case-sensitive.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(t clientlibs.AssetType, content []byte) string {
	normalized := c.normalize(t, string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

func (c SHA256) normalize(t clientlibs.AssetType, content string) string {
	cleaned := c.removeComments(t, content)

	var b strings.Builder
	b.Grow(len(cleaned))

	lastWasSpace := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

type commentState int

const (
	csNormal commentState = iota
	csLineComment
	csBlockComment
	csQuoted
)

// removeComments strips comments while preserving quoted strings.
// Quotes are ', " and (scripts only) `; a backslash escapes the next byte.
func (c SHA256) removeComments(t clientlibs.AssetType, content string) string {
	var b strings.Builder
	b.Grow(len(content))

	lineComments := t == clientlibs.AssetScript
	state := csNormal
	var quote byte
	i := 0

	for i < len(content) {
		ch := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case csNormal:
			switch {
			case ch == '/' && next == '*':
				state = csBlockComment
				b.WriteByte(' ')
				i += 2
			case lineComments && ch == '/' && next == '/':
				state = csLineComment
				b.WriteByte(' ')
				i += 2
			case ch == '\'' || ch == '"' || (lineComments && ch == '`'):
				state = csQuoted
				quote = ch
				b.WriteByte(ch)
				i++
			default:
				b.WriteByte(ch)
				i++
			}

		case csLineComment:
			if ch == '\n' {
				b.WriteByte(ch)
				state = csNormal
			}
			i++

		case csBlockComment:
			if ch == '*' && next == '/' {
				state = csNormal
				i += 2
			} else {
				i++
			}

		case csQuoted:
			b.WriteByte(ch)
			switch {
			case ch == '\\' && i+1 < len(content):
				b.WriteByte(next)
				i += 2
			case ch == quote:
				state = csNormal
				i++
			default:
				i++
			}
		}
	}

	return b.String()
}
