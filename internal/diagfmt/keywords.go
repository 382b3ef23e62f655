package diagfmt

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"plexlex/internal/token"
)

// KeywordTable is the structured form of the reserved word listing.
type KeywordTable struct {
	Version  string               `json:"version" yaml:"version" msgpack:"version"`
	Keywords []token.KeywordEntry `json:"keywords" yaml:"keywords" msgpack:"keywords"`
}

// FormatKeywords prints the reserved word table. Pretty output is one
// aligned row per spelling: spelling, kind name, group.
func FormatKeywords(w io.Writer, format Format, color bool) error {
	table := KeywordTable{Version: token.KeywordTableVersion, Keywords: token.Keywords()}
	if format != FormatPretty {
		return Encode(w, format, table)
	}

	spellingWidth, kindWidth := len("SPELLING"), len("KIND")
	for _, e := range table.Keywords {
		spellingWidth = max(spellingWidth, runewidth.StringWidth(e.Spelling))
		kindWidth = max(kindWidth, runewidth.StringWidth(e.Name))
	}

	p := newPalette(color)
	if _, err := fmt.Fprintf(w, "%s\n", p.code.Sprintf("keyword table v%s (%d spellings)", table.Version, len(table.Keywords))); err != nil {
		return err
	}
	header := runewidth.FillRight("SPELLING", spellingWidth) + "  " + runewidth.FillRight("KIND", kindWidth) + "  GROUP"
	if _, err := fmt.Fprintln(w, p.dim.Sprint(header)); err != nil {
		return err
	}
	for _, e := range table.Keywords {
		_, err := fmt.Fprintf(w, "%s  %s  %s\n",
			p.keyword.Sprint(runewidth.FillRight(e.Spelling, spellingWidth)),
			runewidth.FillRight(e.Name, kindWidth),
			e.Group)
		if err != nil {
			return err
		}
	}
	return nil
}
