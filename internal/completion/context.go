package completion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
)

const (
	// EnvCompLine holds the full command line being completed
	EnvCompLine = "COMP_LINE"
	// EnvCompPoint holds the cursor offset into EnvCompLine
	EnvCompPoint = "COMP_POINT"
)

// Context describes where the cursor sits in the command line being completed
type Context struct {
	Line  string
	Point int

	// Words of the whole line
	Words []string
	// WordsToPoint are the words of the line up to the cursor
	WordsToPoint []string
	// Word is the last word up to the cursor, the one being completed
	Word string
	// FullWord is the whole word the cursor is in or just after
	FullWord string

	InWord        bool
	AtEndOfWord   bool
	PastEndOfWord bool
}

// NewContext builds a completion context for line with the cursor at point,
// a character offset. Offsets past the end of the line are clamped.
func NewContext(line string, point int) (*Context, error) {
	if point < 0 {
		return nil, derrors.NewValidationError(EnvCompPoint, fmt.Sprintf("negative cursor offset %d", point), nil)
	}

	runes := []rune(line)
	if point > len(runes) {
		point = len(runes)
	}
	lineToPoint := string(runes[:point])

	words, err := SplitWords(line)
	if err != nil {
		return nil, derrors.NewValidationError(EnvCompLine, "cannot split command line", err)
	}
	wordsToPoint, err := SplitWords(lineToPoint)
	if err != nil {
		return nil, derrors.NewValidationError(EnvCompLine, "cannot split command line up to cursor", err)
	}
	if len(wordsToPoint) == 0 {
		return nil, derrors.NewValidationError(EnvCompLine, "no command name before cursor", nil)
	}
	if len(wordsToPoint) > len(words) {
		return nil, derrors.NewValidationError(EnvCompLine, "cursor is outside the command line words", nil)
	}

	n := len(wordsToPoint)
	c := &Context{
		Line:         line,
		Point:        point,
		Words:        words,
		WordsToPoint: wordsToPoint,
		Word:         wordsToPoint[n-1],
		FullWord:     words[n-1],
	}
	c.InWord = c.Word != c.FullWord
	c.AtEndOfWord = strings.HasSuffix(lineToPoint, c.FullWord)
	c.PastEndOfWord = !c.InWord && !c.AtEndOfWord

	return c, nil
}

// ContextFromEnv builds a context from COMP_LINE and COMP_POINT as set by a
// shell's programmable completion. Both variables are required.
func ContextFromEnv(lookup func(string) (string, bool)) (*Context, error) {
	line, ok := lookup(EnvCompLine)
	if !ok {
		return nil, derrors.NewValidationError(EnvCompLine, EnvCompLine+" is not set", nil)
	}
	pointStr, ok := lookup(EnvCompPoint)
	if !ok {
		return nil, derrors.NewValidationError(EnvCompPoint, EnvCompPoint+" is not set", nil)
	}
	point, err := strconv.Atoi(strings.TrimSpace(pointStr))
	if err != nil {
		return nil, derrors.NewValidationError(EnvCompPoint, fmt.Sprintf("invalid cursor offset %q", pointStr), err)
	}
	return NewContext(line, point)
}
