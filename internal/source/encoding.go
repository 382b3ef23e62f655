package source

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func detectFlags(content []byte) FileFlags {
	var flags FileFlags
	if bytes.HasPrefix(content, utf8BOM) {
		flags |= FileHasBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}
	return flags
}

// decodeUTF16 transcodes content starting with a UTF-16 byte order mark
// (either endianness) into UTF-8. The bool reports whether it did.
func decodeUTF16(content []byte) ([]byte, bool, error) {
	if len(content) < 2 {
		return content, false, nil
	}
	var order unicode.Endianness
	switch {
	case content[0] == 0xFF && content[1] == 0xFE:
		order = unicode.LittleEndian
	case content[0] == 0xFE && content[1] == 0xFF:
		order = unicode.BigEndian
	default:
		return content, false, nil
	}
	out, err := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return nil, false, fmt.Errorf("decode utf-16: %w", err)
	}
	return out, true, nil
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // #nosec G115 -- spans are uint32, larger files are unsupported
		off++
	}
}
