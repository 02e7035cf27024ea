// Package lexer implements the regex-set tokenizer described in spec.md
// §4.1: given an ordered list of (regex, kind, ignore?) rules, it scans
// input linearly, at each position taking the longest match and, on a tie
// in match length, preferring the later-declared rule. This mirrors the
// "last successful match ID wins" semantics of a regex_set.matches(...)
// scan, without requiring a true NFA-based regex-set engine: the standard
// library's regexp package is reused (see DESIGN.md for why no
// third-party regex-set library from the retrieval pack is wired here).
package lexer

import (
	"regexp"

	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/token"
)

// Rule is one entry of the token table: text matching Regex (anchored at
// the current scan position) produces a token of Kind, unless Ignore is
// set, in which case the matched text is skipped (e.g. whitespace,
// comments).
type Rule struct {
	Kind   token.Kind
	Regex  *regexp.Regexp
	Ignore bool
}

// Lexer tokenizes a source buffer against a caller-supplied rule table.
// The rule table itself is built by lang/grammar from a grammar file's
// "!token"/"!ignore" directives; the lexer does not know or care where the
// rules came from.
type Lexer struct {
	filename string
	src      []byte
	rules    []Rule

	off  int // byte offset of the next rune to scan
	line int // 1-based current line
	col  int // 1-based current column

	errors diag.List
}

// New creates a Lexer for src, reporting errors with filename as the
// position's file component.
func New(filename string, src []byte, rules []Rule) *Lexer {
	return &Lexer{filename: filename, src: src, rules: rules, off: 0, line: 1, col: 1}
}

// Errors returns the accumulated lexical errors (unmatched characters).
func (lx *Lexer) Errors() diag.List { return lx.errors }

// Tokenize scans the entire input and returns the resulting token stream,
// always terminated by exactly one EOF token (spec.md §4.1). Lexical
// errors are recoverable: on no match, one error is reported, one
// character (rune) is consumed, and scanning continues — they never abort
// the scan.
func (lx *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, done := lx.next()
		if tok.Kind != "" {
			toks = append(toks, tok)
		}
		if done {
			break
		}
	}
	lx.errors.Sort()
	return toks, lx.errors.Err()
}

// next scans a single token (or a skipped/ignored run), returning the
// produced token (whose Kind is empty if a rule matched as Ignore) and
// whether the end of input has been reached (in which case the returned
// token, if any, is the terminal EOF token).
func (lx *Lexer) next() (token.Token, bool) {
	if lx.off >= len(lx.src) {
		pos := lx.pos(lx.off, lx.off)
		return token.Token{Kind: token.EOF, Pos: pos}, true
	}

	bestLen := -1
	var bestKind token.Kind
	var bestIgnore bool

	// Longest match wins; on a tie, the later-declared rule wins, matching
	// the "last successful match ID" semantics spec.md §4.1 requires.
	for _, r := range lx.rules {
		loc := r.Regex.FindIndex(lx.src[lx.off:])
		if loc == nil || loc[0] != 0 {
			continue
		}
		n := loc[1]
		if n == 0 {
			continue // a rule that can match empty string never advances the scan
		}
		if n >= bestLen {
			bestLen = n
			bestKind = r.Kind
			bestIgnore = r.Ignore
		}
	}

	if bestLen < 0 {
		// No rule matched: report one error, consume one rune, keep going.
		start := lx.off
		r, size := decodeRune(lx.src[lx.off:])
		lx.errors.Add(diag.Simple, lx.pos(start, start+size), "unrecognized character %q", r)
		lx.advance(size)
		return token.Token{}, false
	}

	text := string(lx.src[lx.off : lx.off+bestLen])
	start := lx.off
	pos := lx.pos(start, start+bestLen)
	lx.advance(bestLen)

	if bestIgnore {
		return token.Token{}, false
	}
	return token.Token{Kind: bestKind, Text: text, Pos: pos}, false
}

func (lx *Lexer) pos(start, end int) token.Position {
	// Column is computed relative to lx.col at the call site: advance()
	// keeps line/col in sync with off, so pos must be called before
	// advancing past [start,end).
	width := end - start
	return token.Position{Filename: lx.filename, Line: lx.line, ColStart: lx.col, ColEnd: lx.col + width}
}

// advance moves the scan position forward by n bytes, updating line/col
// bookkeeping for every newline crossed.
func (lx *Lexer) advance(n int) {
	for i := 0; i < n; {
		b := lx.src[lx.off+i]
		if b == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		i++
	}
	lx.off += n
}

// decodeRune is a minimal UTF-8 decoder used only to report a readable
// character in the "unrecognized character" error; it does not need to be
// fast since it is on the error path only.
func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	if b[0] < 0x80 {
		return rune(b[0]), 1
	}
	for n := 2; n <= 4 && n <= len(b); n++ {
		r := []rune(string(b[:n]))
		if len(r) == 1 && r[0] != '�' {
			return r[0], n
		}
	}
	return rune(b[0]), 1
}
