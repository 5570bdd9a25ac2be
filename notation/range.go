package notation

import (
	"fmt"
	"sort"
	"strings"
)

// RangeSet is an unordered set of 169-shorthand hand strings, expanded from
// notation such as "AA,KK", "QQ+", "A5s-A2s", or bare "72" (meaning both
// "72s" and "72o").
type RangeSet map[string]struct{}

// ParseRangeNotation expands a comma-separated range expression into the set
// of matching 169-shorthand strings. Grounded in the teacher's
// sdk/analysis.ParseRange, adapted to operate on shorthand strings (the
// equity oracle interface, spec §6.2, takes ranges as shorthand, not
// individual card combos).
func ParseRangeNotation(notation string) (RangeSet, error) {
	set := make(RangeSet)
	for _, part := range strings.Split(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := addRangePart(set, part); err != nil {
			return nil, fmt.Errorf("notation: invalid range part %q: %w", part, err)
		}
	}
	return set, nil
}

func addRangePart(set RangeSet, part string) error {
	switch {
	case strings.Contains(part, "+"):
		return addPlusRange(set, part)
	case strings.Contains(part, "-"):
		return addDashRange(set, part)
	default:
		return addSingleHand(set, part)
	}
}

func addSingleHand(set RangeSet, tok string) error {
	hi, lo, err := parseRankPair(tok[:2])
	if err != nil {
		return err
	}
	if hi == lo {
		if len(tok) != 2 {
			return fmt.Errorf("pocket pairs take no suffix: %q", tok)
		}
		set[fmt.Sprintf("%c%c", rankChars[hi], rankChars[lo])] = struct{}{}
		return nil
	}
	switch {
	case len(tok) == 2:
		set[fmt.Sprintf("%c%cs", rankChars[hi], rankChars[lo])] = struct{}{}
		set[fmt.Sprintf("%c%co", rankChars[hi], rankChars[lo])] = struct{}{}
	case tok[2] == 's':
		set[fmt.Sprintf("%c%cs", rankChars[hi], rankChars[lo])] = struct{}{}
	case tok[2] == 'o':
		set[fmt.Sprintf("%c%co", rankChars[hi], rankChars[lo])] = struct{}{}
	default:
		return fmt.Errorf("invalid suffix in %q", tok)
	}
	return nil
}

func addPlusRange(set RangeSet, tok string) error {
	base := strings.TrimSuffix(tok, "+")
	hi, lo, err := parseRankPair(base[:2])
	if err != nil {
		return err
	}
	if hi == lo {
		for r := hi; r <= 14; r++ {
			set[fmt.Sprintf("%c%c", rankChars[r], rankChars[r])] = struct{}{}
		}
		return nil
	}
	suited, offsuit := true, true
	if len(base) == 3 {
		switch base[2] {
		case 's':
			offsuit = false
		case 'o':
			suited = false
		default:
			return fmt.Errorf("invalid suffix in %q", tok)
		}
	}
	for l := lo; l < hi; l++ {
		if suited {
			set[fmt.Sprintf("%c%cs", rankChars[hi], rankChars[l])] = struct{}{}
		}
		if offsuit {
			set[fmt.Sprintf("%c%co", rankChars[hi], rankChars[l])] = struct{}{}
		}
	}
	return nil
}

func addDashRange(set RangeSet, tok string) error {
	sides := strings.SplitN(tok, "-", 2)
	if len(sides) != 2 {
		return fmt.Errorf("invalid dash range %q", tok)
	}
	top, bot := sides[0], sides[1]
	hiTop, loTop, err := parseRankPair(top[:2])
	if err != nil {
		return err
	}
	hiBot, loBot, err := parseRankPair(bot[:2])
	if err != nil {
		return err
	}
	if hiTop == loTop && hiBot == loBot {
		// Pocket-pair range such as "22-66".
		if hiBot > hiTop {
			hiTop, hiBot = hiBot, hiTop
		}
		for r := hiBot; r <= hiTop; r++ {
			set[fmt.Sprintf("%c%c", rankChars[r], rankChars[r])] = struct{}{}
		}
		return nil
	}
	if hiTop != hiBot {
		return fmt.Errorf("dash range must share the high card: %q", tok)
	}
	suited := strings.HasSuffix(top, "s")
	offsuit := strings.HasSuffix(top, "o")
	if loBot > loTop {
		loTop, loBot = loBot, loTop
	}
	for l := loBot; l <= loTop; l++ {
		if l == hiTop {
			continue
		}
		switch {
		case hiTop == loBot && l == loBot:
			set[fmt.Sprintf("%c%c", rankChars[hiTop], rankChars[l])] = struct{}{}
		case suited:
			set[fmt.Sprintf("%c%cs", rankChars[hiTop], rankChars[l])] = struct{}{}
		case offsuit:
			set[fmt.Sprintf("%c%co", rankChars[hiTop], rankChars[l])] = struct{}{}
		default:
			set[fmt.Sprintf("%c%cs", rankChars[hiTop], rankChars[l])] = struct{}{}
			set[fmt.Sprintf("%c%co", rankChars[hiTop], rankChars[l])] = struct{}{}
		}
	}
	return nil
}

func parseRankPair(s string) (hi, lo uint8, err error) {
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("invalid rank pair %q", s)
	}
	r1, err := charRank(s[0])
	if err != nil {
		return 0, 0, err
	}
	r2, err := charRank(s[1])
	if err != nil {
		return 0, 0, err
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	return r1, r2, nil
}

func charRank(c byte) (uint8, error) {
	idx := strings.IndexByte(rankChars, c)
	if idx < 2 {
		return 0, fmt.Errorf("invalid rank %q", c)
	}
	return uint8(idx), nil
}

// Sorted returns the set's members in deterministic, sorted order — used
// when joining a range into the comma-separated opponent spec the equity
// oracle interface expects (spec §6.2).
func (s RangeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Join renders the range as a comma-joined opponent spec string.
func (s RangeSet) Join() string {
	return strings.Join(s.Sorted(), ",")
}
