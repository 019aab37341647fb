// Package report writes human-readable progress lines to the console.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Printer renders lines for a sink with a fixed charset. A line the sink
// cannot represent is folded to a safe form instead of failing the run.
type Printer struct {
	w   io.Writer
	enc encoding.Encoding // nil means UTF-8
}

// NewPrinter returns a Printer for w. charset is a WHATWG encoding label;
// "" and "utf-8" select UTF-8.
func NewPrinter(w io.Writer, charset string) (*Printer, error) {
	p := &Printer{w: w}
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return p, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "report: unknown charset %q", charset)
	}
	p.enc = enc
	return p, nil
}

// Printf formats and writes one line.
func (p *Printer) Printf(format string, args ...any) {
	p.Println(fmt.Sprintf(format, args...))
}

// Println writes s followed by a newline. Write errors are ignored; the
// console is best-effort.
func (p *Printer) Println(s string) {
	out, ok := p.render(s)
	if !ok {
		out, _ = p.render(p.Fold(s))
	}
	_, _ = io.WriteString(p.w, out+"\n")
}

// Fold converts s into text the sink can render: invalid UTF-8 becomes
// "?", combining accents are stripped ("José" -> "Jose"), and any rune the
// charset still cannot encode becomes "?".
func (p *Printer) Fold(s string) string {
	s = strings.ToValidUTF8(s, "?")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	var b strings.Builder
	for _, r := range s {
		rs := string(r)
		if _, ok := p.render(rs); ok {
			b.WriteString(rs)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// render returns s encoded for the sink.
func (p *Printer) render(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}
	if p.enc == nil {
		return s, true
	}
	out, err := p.enc.NewEncoder().String(s)
	if err != nil {
		return "", false
	}
	return out, true
}
