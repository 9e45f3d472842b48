package aiken

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

// ParseMode selects the completeness policy applied when a record flushes.
type ParseMode int

const (
	// ModeStrict requires four in-order options and a valid ANSWER letter.
	// Used when loading banks for further processing (review, feedback).
	ModeStrict ParseMode = iota

	// ModeDraft accepts records whose ANSWER line has not arrived yet but
	// still requires four in-order options. Used on raw generation output.
	ModeDraft
)

var (
	optionRe = regexp.MustCompile(`^([A-D])\.\s*(\S.*)$`)
	answerRe = regexp.MustCompile(`^ANSWER:\s*([A-D])\s*$`)
)

// accumulator holds the record being assembled while scanning.
type accumulator struct {
	rec     types.QuestionRecord
	next    int // positional index of the next expected option letter
	invalid bool
	active  bool
}

func (a *accumulator) start(question string) {
	a.rec = types.QuestionRecord{Question: question}
	a.next = 0
	a.invalid = false
	a.active = true
}

func (a *accumulator) reset() {
	*a = accumulator{}
}

// complete applies the mode's flush policy.
func (a *accumulator) complete(mode ParseMode) bool {
	if !a.active || a.invalid || len(a.rec.Options) != types.OptionCount {
		return false
	}
	if mode == ModeDraft && a.rec.Correct == "" {
		return true
	}
	return a.rec.Correct.Valid()
}

// Decode scans Aiken-format text line by line and returns the records that
// parsed cleanly along with the number of records dropped as malformed.
//
// Option prefixes must arrive exactly as A., B., C., D. in that order with no
// duplicates; any violation poisons the in-progress record. A line that is
// neither an option nor an ANSWER line starts a new record, silently
// discarding any unfinished accumulator. Decode never aborts on malformed
// input; the only error is a reader failure.
func Decode(r io.Reader, mode ParseMode) ([]types.QuestionRecord, int, error) {
	var (
		records   []types.QuestionRecord
		malformed int
		acc       accumulator
	)

	flush := func() {
		if !acc.active {
			return
		}
		if acc.complete(mode) {
			records = append(records, acc.rec)
		} else {
			malformed++
		}
		acc.reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			flush()

		case strings.HasPrefix(line, "ANSWER:"):
			if !acc.active {
				continue
			}
			m := answerRe.FindStringSubmatch(line)
			if m == nil {
				acc.invalid = true
				continue
			}
			acc.rec.Correct = types.Letter(m[1])

		case optionRe.MatchString(line):
			if !acc.active {
				continue
			}
			m := optionRe.FindStringSubmatch(line)
			letter, _ := types.ParseLetter(m[1])
			if letter.Index() != acc.next {
				// Out-of-order or duplicate prefix.
				acc.invalid = true
				continue
			}
			acc.rec.Options = append(acc.rec.Options, strings.TrimSpace(m[2]))
			acc.next++

		default:
			// A fresh question line overwrites any partial record without
			// flushing it.
			acc.start(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	flush()
	return records, malformed, nil
}

// DecodeString is a convenience wrapper over Decode for in-memory text.
func DecodeString(s string, mode ParseMode) ([]types.QuestionRecord, int) {
	records, malformed, _ := Decode(strings.NewReader(s), mode)
	return records, malformed
}

// DecodeFile reads an Aiken bank from disk.
func DecodeFile(path string, mode ParseMode) ([]types.QuestionRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = f.Close() }()
	return Decode(f, mode)
}
