package gift

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mpaoletti/lexquiz/pkg/types"
)

var (
	feedbackLineRe = regexp.MustCompile(`^FEEDBACK_([A-D]):\s*(.*)$`)
	articleRe      = regexp.MustCompile(`(?i)articolo (\d+(?:-[a-z]+)?)`)
)

// ArticleFallbackFormat is substituted for feedback that names an article but
// quotes nothing from it.
const ArticleFallbackFormat = "Consultare l'articolo %s del Codice Civile per il testo completo"

// ParseResponse extracts per-option feedback from a model response of the
// form FEEDBACK_A: ... FEEDBACK_D: ..., joining continuation lines, and
// splits it into a FeedbackSet for the given correct letter.
//
// Feedback is expected to contain a quoted excerpt. Sections without one
// degrade to the article-specific placeholder when an article number is
// detectable; empty sections are dropped so the serializer's fixed
// placeholder takes over.
func ParseResponse(response string, correct types.Letter) types.FeedbackSet {
	sections := parseSections(response)

	for letter, feedback := range sections {
		if strings.ContainsAny(feedback, `"'`) {
			continue
		}
		if m := articleRe.FindStringSubmatch(feedback); m != nil {
			sections[letter] = fmt.Sprintf(ArticleFallbackFormat, m[1])
		}
	}

	var fb types.FeedbackSet
	if f := sections[correct]; f != "" {
		fb.Correct = []string{f}
	}
	for _, letter := range types.Letters {
		if letter == correct {
			continue
		}
		if f := sections[letter]; f != "" {
			fb.Wrong = append(fb.Wrong, f)
		}
	}
	return fb
}

// parseSections walks the response line by line, accumulating text under the
// most recent FEEDBACK_<letter> header.
func parseSections(response string) map[types.Letter]string {
	sections := make(map[types.Letter]string, types.OptionCount)
	var current types.Letter

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)

		if m := feedbackLineRe.FindStringSubmatch(line); m != nil {
			current = types.Letter(m[1])
			line = strings.TrimSpace(m[2])
		}

		if current == "" || line == "" {
			continue
		}
		if sections[current] != "" {
			sections[current] += " " + line
		} else {
			sections[current] = line
		}
	}
	return sections
}
