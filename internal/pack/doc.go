// Package pack assembles and parses export packages.
//
// The current format is a ZIP container:
//
//	version.json  plaintext manifest {version, format, exportedAt}
//	data.enc      one crypto envelope over gzip-compressed dataset JSON
//	card.png      optional cosmetic image, never read back
//
// Older releases hid the payload inside the pixels of a single PNG. Those
// files are still accepted through a separate, read-only decoder. Every
// supported layout is a [Format] value and all of them go through the one
// dispatcher in [Codec.Parse].
package pack
