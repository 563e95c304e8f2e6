package corpus

import (
	"bytes"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decodeReader returns a UTF-8 reader over raw corpus bytes. A UTF-8 or
// UTF-16 byte order mark selects that encoding; bytes that are not valid
// UTF-8 are read as Windows-1252.
func decodeReader(data []byte) io.Reader {
	src := bytes.NewReader(data)
	if hasUTF16BOM(data) || utf8.Valid(data) {
		return transform.NewReader(src, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))
	}
	return transform.NewReader(src, charmap.Windows1252.NewDecoder())
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// normalizeText applies NFKC, drops control characters other than newline
// and tab, and trims surrounding space.
func normalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
