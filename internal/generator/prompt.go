package generator

import "fmt"

// QuestionsPerChunk is how many questions the prompt asks for per text chunk.
const QuestionsPerChunk = 2

const promptTemplate = `You are a professional Italian law professor. Your task is to create multiple choice questions about Italian law from the given text.

Rules:
1. Create exactly %d multiple choice questions about Italian legal concepts
2. Each question must have exactly 4 options (A, B, C, D)
3. Only one option should be correct
4. Each question must follow this EXACT format:

[Question text without any prefixes or option letters]
A. [First option]
B. [Second option]
C. [Third option]
D. [Fourth option]
ANSWER: [A or B or C or D]

Important formatting rules:
- Start with the complete question text, without any letter prefix
- NEVER start the question text with "A." or any other letter
- Each option must start with exactly "A.", "B.", "C.", or "D." (in that order)
- Never repeat option letters (no two "A." options)
- The answer must be in the format "ANSWER: X" where X is A, B, C, or D
- Leave exactly one blank line between questions
- Do not add any explanations or additional text

Example of a good question:
Secondo l'articolo 1 del Codice Civile, quando si acquista la capacità giuridica?
A. Dal momento del concepimento
B. Dal momento della nascita
C. Al compimento del diciottesimo anno di età
D. Al momento dell'iscrizione all'anagrafe
ANSWER: B

Example of a BAD question (do not do this):
A. Secondo l'articolo 1, quando si acquista la capacità giuridica?
A. Dal momento del concepimento
B. Dal momento della nascita
C. Al compimento del diciottesimo anno di età
D. Al momento dell'iscrizione all'anagrafe
ANSWER: B

Here is the text to create questions from:
%s`

// BuildPrompt renders the generation prompt for a chunk of source text.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, QuestionsPerChunk, text)
}
