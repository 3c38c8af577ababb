// Package langpolicy resolves target-language codes to the instruction text
// that enforces a single output language for a conversation. The supported
// set is closed and fixed at compile time; resolution has no side effects.
package langpolicy

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/linguachat/linguachat/internal/common/apperrors"
)

// Policy is the resolved instruction set for one target language.
type Policy struct {
	Code         string // canonical language code, e.g. "fr"
	Name         string // English display name, e.g. "French"
	Instructions string // system instructions enforcing the language
}

// directive is the per-language portion of the policy, phrased in the target
// language to reinforce correct grammar and vocabulary.
type directive struct {
	name   string
	native string
}

var directives = map[string]directive{
	"en": {"English", "Use correct English grammar and natural, idiomatic vocabulary."},
	"es": {"Spanish", "Responde siempre en español, con gramática correcta y vocabulario natural."},
	"fr": {"French", "Réponds toujours en français, avec une grammaire correcte et un vocabulaire naturel."},
	"de": {"German", "Antworte immer auf Deutsch, mit korrekter Grammatik und natürlichem Wortschatz."},
	"it": {"Italian", "Rispondi sempre in italiano, con grammatica corretta e un vocabolario naturale."},
	"pt": {"Portuguese", "Responda sempre em português, com gramática correta e vocabulário natural."},
	"ja": {"Japanese", "常に日本語で、正しい文法と自然な語彙を使って答えてください。"},
	"zh": {"Chinese", "请始终用中文回答，使用正确的语法和自然的词汇。"},
}

// Resolve maps a language code to its Policy. Codes are normalized with BCP 47
// parsing, so region and case variants ("FR", "fr-CA") resolve to their base
// language. An unsupported or unparsable code returns ErrUnsupportedLanguage.
func Resolve(code string) (*Policy, apperrors.Error) {
	canonical, ok := canonicalize(code)
	if !ok {
		return nil, ErrUnsupportedLanguage.Msg("unsupported language: " + code)
	}
	d := directives[canonical]
	return &Policy{
		Code: canonical,
		Name: d.name,
		Instructions: fmt.Sprintf(
			"You are a conversational assistant. Always respond in %s, regardless of the language the user writes in. Maintain the context of the conversation across turns.\n\n%s",
			d.name, d.native),
	}, nil
}

// WrapInput wraps a user message with an explicit reminder to answer only in
// the target language. The reminder travels with the input on every turn.
func (p *Policy) WrapInput(message string) string {
	return fmt.Sprintf("%s\n\n(Remember: reply only in %s.)", message, p.Name)
}

// List returns the supported canonical language codes in sorted order.
func List() []string {
	codes := make([]string, 0, len(directives))
	for code := range directives {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// canonicalize reduces a language code to its base language and reports
// whether that base is in the supported set.
func canonicalize(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	canonical := base.String()
	_, ok := directives[canonical]
	return canonical, ok
}
