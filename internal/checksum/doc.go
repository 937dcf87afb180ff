// Package checksum provides bundle content hashing with normalization support.
//
// Two checksums are reported per bundle:
//
//   - Raw checksum: hash of the exact bundle content (detects all changes)
//   - Normalized checksum: hash after removing comments and collapsing
//     whitespace (stable across reformatting of member files)
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw([]byte(bundle))
//	normalized := calculator.CalculateNormalized(clientlibs.AssetScript, []byte(bundle))
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
