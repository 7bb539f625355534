// Package questions produces technical interview questions locally, without a
// remote model.
package questions

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MaxQuestions bounds the generated list.
	MaxQuestions = 5
	// gatherLimit stops token processing once this many questions are collected.
	gatherLimit = 10

	techPlaceholder = "{{TECH}}"

	// NoTechStackMessage is returned instead of an empty list.
	NoTechStackMessage = "No tech stack provided. Please add technologies."
)

//go:embed lexicon.yaml
var lexiconYAML []byte

var (
	delimiters = regexp.MustCompile(`[,;\n]+`)
	lexicon    = mustLoadLexicon(lexiconYAML)
)

// Technology is a lexicon entry with its canned questions.
type Technology struct {
	Name      string   `yaml:"name"`
	Exact     []string `yaml:"exact"`
	Prefix    []string `yaml:"prefix"`
	Questions []string `yaml:"questions"`
}

// Lexicon is the set of known technologies plus generic question templates.
type Lexicon struct {
	Technologies []Technology `yaml:"technologies"`
	Generic      []string     `yaml:"generic"`
}

// ParseLexicon decodes a lexicon document and checks it is usable.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var l Lexicon
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(l.Generic) == 0 {
		return nil, fmt.Errorf("lexicon has no generic questions")
	}
	for _, t := range l.Technologies {
		if len(t.Exact) == 0 && len(t.Prefix) == 0 {
			return nil, fmt.Errorf("lexicon entry %q has no match rules", t.Name)
		}
		if len(t.Questions) == 0 {
			return nil, fmt.Errorf("lexicon entry %q has no questions", t.Name)
		}
	}
	return &l, nil
}

func mustLoadLexicon(data []byte) *Lexicon {
	l, err := ParseLexicon(data)
	if err != nil {
		panic(err)
	}
	return l
}

// Split breaks a tech stack on commas, semicolons and newlines, dropping blanks.
func Split(techStack string) []string {
	parts := delimiters.Split(techStack, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Generate returns at most five numbered questions for the tech stack, one per
// line. It is deterministic and never touches the network.
func Generate(techStack string) string {
	return lexicon.Generate(techStack)
}

// Generate is the lexicon-bound form of the package-level Generate.
func (l *Lexicon) Generate(techStack string) string {
	var gathered []string
	for _, token := range Split(techStack) {
		gathered = append(gathered, l.questionsFor(token)...)
		if len(gathered) >= gatherLimit {
			break
		}
	}

	unique := make([]string, 0, MaxQuestions)
	seen := make(map[string]struct{}, len(gathered))
	for _, q := range gathered {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		unique = append(unique, q)
		if len(unique) == MaxQuestions {
			break
		}
	}

	if len(unique) == 0 {
		return NoTechStackMessage
	}

	lines := make([]string, len(unique))
	for i, q := range unique {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}

func (l *Lexicon) questionsFor(token string) []string {
	if t := l.match(token); t != nil {
		return t.Questions
	}

	out := make([]string, len(l.Generic))
	for i, tmpl := range l.Generic {
		out[i] = strings.ReplaceAll(tmpl, techPlaceholder, token)
	}
	return out
}

func (l *Lexicon) match(token string) *Technology {
	lower := strings.ToLower(token)
	for i := range l.Technologies {
		t := &l.Technologies[i]
		for _, e := range t.Exact {
			if lower == e {
				return t
			}
		}
		for _, p := range t.Prefix {
			if strings.HasPrefix(lower, p) {
				return t
			}
		}
	}
	return nil
}
