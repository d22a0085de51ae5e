// Package encoding turns export files of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// minConfidence is the chardet score below which a guess is ignored.
const minConfidence = 30

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Ledger exports come from Cyrillic desktop tooling more often than anything
// else, so those code pages are the ones worth recognizing.
var detected = map[string]xencoding.Encoding{
	"windows-1251": charmap.Windows1251,
	"KOI8-R":       charmap.KOI8R,
	"ISO-8859-5":   charmap.ISO8859_5,
}

// Fallback decodes anything that is neither UTF-8 nor confidently detected.
var Fallback xencoding.Encoding = charmap.Windows1251

// NewUTF8Reader returns a reader that yields the content of r as UTF-8.
//
// A BOM wins first (UTF-8 is stripped, UTF-16 decoded). Valid UTF-8 passes
// through. Otherwise chardet picks among the known Cyrillic code pages and
// Fallback covers the rest.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if validUTF8Prefix(buf, len(buf) == sniffSize) {
		return br, nil
	}

	return transform.NewReader(br, Detect(buf).NewDecoder()), nil
}

// Detect guesses the single-byte encoding of a non-UTF-8 sample.
func Detect(sample []byte) xencoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result.Confidence < minConfidence {
		return Fallback
	}

	if enc, ok := detected[result.Charset]; ok {
		return enc
	}

	return Fallback
}

// validUTF8Prefix tolerates a multi-byte rune cut off by the sniff window.
// A sample that holds the whole input has no window to cut, so it must be
// valid as is.
func validUTF8Prefix(buf []byte, windowFull bool) bool {
	if utf8.Valid(buf) {
		return true
	}

	if !windowFull {
		return false
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(buf); cut++ {
		if utf8.Valid(buf[:len(buf)-cut]) {
			return !utf8.FullRune(buf[len(buf)-cut:])
		}
	}

	return false
}
