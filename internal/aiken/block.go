package aiken

import (
	"strings"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

// DecodeBlock parses a single question block of model output under the
// strict policy. Models occasionally wrap the question across lines, so
// everything before the first option or ANSWER line is joined back into a
// single question line before parsing. ok is false when the block does not
// yield exactly one complete record.
func DecodeBlock(block string) (types.QuestionRecord, bool) {
	var question []string
	var rest []string

	inQuestion := true
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if inQuestion && !strings.HasPrefix(line, "ANSWER:") && !looksLikeOption(line) {
			question = append(question, line)
			continue
		}
		inQuestion = false
		rest = append(rest, line)
	}

	if len(question) == 0 || len(rest) == 0 {
		return types.QuestionRecord{}, false
	}

	normalized := strings.Join(question, " ") + "\n" + strings.Join(rest, "\n") + "\n"
	records, _ := DecodeString(normalized, ModeStrict)
	if len(records) != 1 {
		return types.QuestionRecord{}, false
	}
	return records[0], true
}

func looksLikeOption(line string) bool {
	if len(line) < 2 {
		return false
	}
	switch line[0] {
	case 'A', 'B', 'C', 'D':
		return line[1] == '.'
	}
	return false
}
