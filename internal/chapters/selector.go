// Package chapters turns the --chapter, --range and --list flags into the
// chapter numbers to save.
package chapters

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNoSelection = errors.New("no chapters selected (use --chapter, --range or --list)")

type Kind int

const (
	Single Kind = iota
	Range
	List
)

type Selection struct {
	Kind  Kind
	Start int
	End   int
	List  []int
}

// Chapters expands the selection in the order it will be saved.
func (s Selection) Chapters() []int {
	if s.Kind == List {
		return append([]int(nil), s.List...)
	}

	out := make([]int, 0, s.End-s.Start+1)
	for c := s.Start; c <= s.End; c++ {
		out = append(out, c)
	}

	return out
}

// Parse picks the first non-empty of chapter, rng and list.
func Parse(chapter, rng, list string) (Selection, error) {
	switch {
	case strings.TrimSpace(chapter) != "":
		n, err := atoi(chapter)
		if err != nil {
			return Selection{}, fmt.Errorf("invalid chapter %q", chapter)
		}
		return Selection{Kind: Single, Start: n, End: n}, nil

	case strings.TrimSpace(rng) != "":
		start, end, err := ParseRange(rng)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Kind: Range, Start: start, End: end}, nil

	case strings.TrimSpace(list) != "":
		nums, err := ParseList(list)
		if err != nil {
			return Selection{}, err
		}
		return Selection{Kind: List, List: nums}, nil
	}

	return Selection{}, ErrNoSelection
}

// ParseRange reads an inclusive "start-end" range such as "5-12".
func ParseRange(rng string) (int, int, error) {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q (want start-end)", rng)
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid range %q (want start-end)", rng)
	}
	if start > end {
		return 0, 0, fmt.Errorf("invalid range %q: start after end", rng)
	}

	return start, end, nil
}

// ParseList reads a comma separated chapter list such as "1,3,5". Empty
// entries are ignored; order and duplicates are kept.
func ParseList(list string) ([]int, error) {
	var out []int
	for p := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}

		n, err := atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid chapter %q in list", strings.TrimSpace(p))
		}

		out = append(out, n)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("empty chapter list %q", list)
	}

	return out, nil
}

// atoi accepts positive chapter numbers only.
func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("chapter must be positive, got %d", n)
	}

	return n, nil
}
