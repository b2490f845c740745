package lint

import "bytes"

// FrontMatterLen returns the length of the properties block at the start of
// source, or 0 when there is none. The block opens with a "---" line and
// closes with the next "---" line; the closing delimiter may end the file
// without a trailing newline.
func FrontMatterLen(source []byte) int {
	delim := []byte("---\n")
	if !bytes.HasPrefix(source, delim) {
		return 0
	}
	rest := source[len(delim):]
	if bytes.HasPrefix(rest, delim) {
		return 2 * len(delim)
	}
	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx >= 0 {
		return len(delim) + idx + len("\n---\n")
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return len(source)
	}
	if bytes.Equal(rest, []byte("---")) {
		return len(source)
	}
	return 0
}

// StripFrontMatter splits source into its properties block (including
// delimiters) and the remaining content. If no block is found, prefix is
// nil and content equals source.
func StripFrontMatter(source []byte) (prefix, content []byte) {
	n := FrontMatterLen(source)
	if n == 0 {
		return nil, source
	}
	return source[:n], source[n:]
}
