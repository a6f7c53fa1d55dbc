package rewrite

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Form is the syntactic position an occurrence was found in.
type Form int

const (
	Bare Form = iota
	Quoted
	Assignment
	numForms
)

func (f Form) String() string {
	switch f {
	case Bare:
		return "bare"
	case Quoted:
		return "quoted"
	case Assignment:
		return "assignment"
	}
	return "unknown"
}

// Counts holds the number of replacements per form.
type Counts [numForms]int

// Total returns the number of replacements across all forms.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

const noRune = rune(-1)

// Replace substitutes every qualifying occurrence of sub.Old in text.
func Replace(text string, sub Substitution) (string, Counts) {
	var counts Counts
	if sub.Old == "" {
		return text, counts
	}

	var b strings.Builder
	i := 0
	for {
		j := strings.Index(text[i:], sub.Old)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(sub.Old)

		if form, ok := classify(text, start, end); ok {
			if counts.Total() == 0 {
				b.Grow(len(text))
			}
			b.WriteString(text[i:start])
			b.WriteString(sub.New)
			counts[form]++
			i = end
			continue
		}

		// Not a match here; step one rune so overlapping candidates are still seen.
		_, size := utf8.DecodeRuneInString(text[start:])
		b.WriteString(text[i : start+size])
		i = start + size
	}

	if counts.Total() == 0 {
		return text, counts
	}
	b.WriteString(text[i:])
	return b.String(), counts
}

// classify returns the form the occurrence text[start:end] satisfies. A value
// enclosed by a matching quote pair is Quoted; a lone quote on either side is
// only a bare delimiter.
func classify(text string, start, end int) (Form, bool) {
	value := text[start:end]
	first, _ := utf8.DecodeRuneInString(value)
	last, _ := utf8.DecodeLastRuneInString(value)

	prev, prevPrev := runesBefore(text, start)
	next, nextNext := runesAfter(text, end)

	// Boundaries only matter on edges where the value itself is a token.
	leftOpen := !isWord(first) || !continuesToken(prev, prevPrev)
	rightOpen := !isWord(last) || !continuesToken(next, nextNext)

	switch {
	case (prev == '"' || prev == '\'') && next == prev:
		return Quoted, true
	case leftOpen && rightOpen && isBareDelim(prev, false) && isBareDelim(next, true):
		return Bare, true
	case rightOpen && followsOperator(text, start):
		return Assignment, true
	}
	return 0, false
}

func runesBefore(text string, pos int) (rune, rune) {
	if pos == 0 {
		return noRune, noRune
	}
	r, size := utf8.DecodeLastRuneInString(text[:pos])
	if pos-size == 0 {
		return r, noRune
	}
	r2, _ := utf8.DecodeLastRuneInString(text[:pos-size])
	return r, r2
}

func runesAfter(text string, pos int) (rune, rune) {
	if pos >= len(text) {
		return noRune, noRune
	}
	r, size := utf8.DecodeRuneInString(text[pos:])
	if pos+size >= len(text) {
		return r, noRune
	}
	r2, _ := utf8.DecodeRuneInString(text[pos+size:])
	return r, r2
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// continuesToken reports whether r (followed, away from the value, by
// beyond) extends the token the value is part of. '.' and '-' only count
// when another letter or digit follows, so "1.2." at the end of a sentence
// still ends the token while "1.2.3" does not.
func continuesToken(r, beyond rune) bool {
	if isWord(r) {
		return true
	}
	if r == '.' || r == '-' {
		return beyond != noRune && (unicode.IsLetter(beyond) || unicode.IsDigit(beyond))
	}
	return false
}

func isBareDelim(r rune, trailing bool) bool {
	if r == noRune || unicode.IsSpace(r) || strings.ContainsRune(",;()[]{}<>|\"'`", r) {
		return true
	}
	// Sentence punctuation may end a bare token.
	return trailing && strings.ContainsRune(".!?", r)
}

// followsOperator reports whether text[:start] ends in '=' or ':' followed by
// zero or more spaces or tabs.
func followsOperator(text string, start int) bool {
	i := start
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '\t') {
		i--
	}
	return i > 0 && (text[i-1] == '=' || text[i-1] == ':')
}
