package taxonomy

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/helixml/sitekit/domain/bilingual"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// ErrInvalidRules indicates a rule table that cannot be loaded.
var ErrInvalidRules = errors.New("invalid taxonomy rules")

// ErrUnknownCode is returned for a document type outside the taxonomy.
var ErrUnknownCode = errors.New("unknown document type")

// Placeholders understood by title templates.
const (
	placeholderYear     = "{year}"
	placeholderQuarter  = "{quarter}"
	placeholderModifier = "{modifier}"
)

type fileTemplate struct {
	ID string `yaml:"id"`
	EN string `yaml:"en"`
}

type fileModifier struct {
	Name     string       `yaml:"name"`
	Keywords []string     `yaml:"keywords"`
	Code     string       `yaml:"code"`
	Label    fileTemplate `yaml:"label"`
}

type fileRule struct {
	Name      string        `yaml:"name"`
	Keywords  []string      `yaml:"keywords"`
	Context   []string      `yaml:"context"`
	Prefix    bool          `yaml:"prefix"`
	AppliesTo []string      `yaml:"applies_to"`
	Code      string        `yaml:"code"`
	Modifiers []string      `yaml:"modifiers"`
	Title     *fileTemplate `yaml:"title"`
	Action    Action        `yaml:"action"`
}

type ruleFile struct {
	Codes        []string            `yaml:"codes"`
	Vocabularies map[string][]string `yaml:"vocabularies"`
	Modifiers    []fileModifier      `yaml:"modifiers"`
	Rules        []fileRule          `yaml:"rules"`
}

// Modifier refines a matching rule, overriding its code and filling the
// {modifier} placeholder (e.g. annual vs extraordinary meetings).
type Modifier struct {
	name     string
	keywords phrases
	code     string
	label    bilingual.Text
}

// Name returns the modifier name.
func (m Modifier) Name() string { return m.name }

// Code returns the code the modifier assigns.
func (m Modifier) Code() string { return m.code }

// Rule maps a keyword predicate over a title to a taxonomy code and an
// optional title template.
type Rule struct {
	name      string
	keywords  phrases
	context   phrases
	prefix    bool
	appliesTo map[string]bool
	code      string
	modifiers []Modifier
	title     *bilingual.Text
	action    Action
}

// Name returns the rule name.
func (r Rule) Name() string { return r.name }

// Code returns the code assigned when no modifier applies.
func (r Rule) Code() string { return r.code }

// Action returns what the rule asks for.
func (r Rule) Action() Action { return r.action }

// HasTemplate returns true if the rule rewrites titles.
func (r Rule) HasTemplate() bool { return r.title != nil }

// matches evaluates the rule against one locale's tokens.
func (r Rule) matches(words []string) bool {
	if r.prefix {
		if !r.keywords.anyPrefixOf(words) {
			return false
		}
	} else if !r.keywords.anyIn(words) {
		return false
	}
	return len(r.context) == 0 || r.context.anyIn(words)
}

func (r Rule) appliesToCode(code string) bool {
	return len(r.appliesTo) == 0 || r.appliesTo[code]
}

// Registry is the loaded, validated rule table.
type Registry struct {
	codes map[string]bool
	order []string
	rules []Rule
}

// Default returns the registry built from the embedded rule table.
func Default() (*Registry, error) {
	return Load(defaultRules)
}

// LoadFile reads a rule table from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Load(data)
}

// Load parses and validates a YAML rule table.
func Load(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f ruleFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return build(f)
}

func build(f ruleFile) (*Registry, error) {
	if len(f.Codes) == 0 {
		return nil, fmt.Errorf("%w: no codes defined", ErrInvalidRules)
	}

	reg := &Registry{codes: make(map[string]bool, len(f.Codes))}
	for _, c := range f.Codes {
		if reg.codes[c] {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrInvalidRules, c)
		}
		reg.codes[c] = true
		reg.order = append(reg.order, c)
	}

	modifiers := make(map[string]Modifier, len(f.Modifiers))
	for _, m := range f.Modifiers {
		if m.Name == "" || len(m.Keywords) == 0 {
			return nil, fmt.Errorf("%w: modifier needs a name and keywords", ErrInvalidRules)
		}
		if !reg.codes[m.Code] {
			return nil, fmt.Errorf("%w: modifier %q uses unknown code %q", ErrInvalidRules, m.Name, m.Code)
		}
		modifiers[m.Name] = Modifier{
			name:     m.Name,
			keywords: newPhrases(m.Keywords),
			code:     m.Code,
			label:    bilingual.New(m.Label.ID, m.Label.EN),
		}
	}

	seen := make(map[string]bool, len(f.Rules))
	for _, fr := range f.Rules {
		rule, err := buildRule(fr, reg.codes, modifiers)
		if err != nil {
			return nil, err
		}
		if seen[rule.name] {
			return nil, fmt.Errorf("%w: duplicate rule %q", ErrInvalidRules, rule.name)
		}
		seen[rule.name] = true
		reg.rules = append(reg.rules, rule)
	}
	return reg, nil
}

func buildRule(fr fileRule, codes map[string]bool, modifiers map[string]Modifier) (Rule, error) {
	if fr.Name == "" {
		return Rule{}, fmt.Errorf("%w: rule without a name", ErrInvalidRules)
	}
	kw := newPhrases(fr.Keywords)
	if len(kw) == 0 {
		return Rule{}, fmt.Errorf("%w: rule %q has no keywords", ErrInvalidRules, fr.Name)
	}

	action := fr.Action
	if action == "" {
		action = ActionReclassify
	}
	switch action {
	case ActionReclassify:
		if !codes[fr.Code] {
			return Rule{}, fmt.Errorf("%w: rule %q uses unknown code %q", ErrInvalidRules, fr.Name, fr.Code)
		}
	case ActionDelete:
	default:
		return Rule{}, fmt.Errorf("%w: rule %q has unknown action %q", ErrInvalidRules, fr.Name, action)
	}

	rule := Rule{
		name:     fr.Name,
		keywords: kw,
		context:  newPhrases(fr.Context),
		prefix:   fr.Prefix,
		code:     fr.Code,
		action:   action,
	}
	for _, code := range fr.AppliesTo {
		if !codes[code] {
			return Rule{}, fmt.Errorf("%w: rule %q applies to unknown code %q", ErrInvalidRules, fr.Name, code)
		}
		if rule.appliesTo == nil {
			rule.appliesTo = make(map[string]bool)
		}
		rule.appliesTo[code] = true
	}
	for _, name := range fr.Modifiers {
		m, ok := modifiers[name]
		if !ok {
			return Rule{}, fmt.Errorf("%w: rule %q references unknown modifier %q", ErrInvalidRules, fr.Name, name)
		}
		rule.modifiers = append(rule.modifiers, m)
	}
	if fr.Title != nil {
		if fr.Title.ID == "" || fr.Title.EN == "" {
			return Rule{}, fmt.Errorf("%w: rule %q title needs both locales", ErrInvalidRules, fr.Name)
		}
		t := bilingual.New(fr.Title.ID, fr.Title.EN)
		rule.title = &t
	}
	return rule, nil
}

// Codes returns every known code in declaration order.
func (r *Registry) Codes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// IsKnown reports whether code is part of the taxonomy.
func (r *Registry) IsKnown(code string) bool {
	return r.codes[code]
}

// Rules returns the rules in evaluation order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Input is what the classifier knows about a document.
type Input struct {
	Title   bilingual.Text
	Code    string
	Year    int
	Quarter *int
}

// Decision is the outcome of classifying one document.
type Decision struct {
	Rule         string
	Action       Action
	Code         string
	Title        bilingual.Text
	Retitled     bool
	InferredYear int
	YearConflict bool
	// AmbiguousModifier is set when the title names more than one modifier,
	// such as both an annual and an extraordinary meeting. The title is
	// left alone and a modifier code already chosen by hand is kept.
	AmbiguousModifier bool
}

// Changes reports whether applying the decision would modify the input.
func (d Decision) Changes(in Input) bool {
	switch d.Action {
	case ActionDelete:
		return true
	case ActionReclassify:
		return d.Code != in.Code || !d.Title.Equal(in.Title)
	default:
		return false
	}
}

// Classify applies the first matching rule. A title matching no rule keeps
// its code and title. Years are read from the input and never rewritten;
// a year found in the title that disagrees with the stored one only sets
// YearConflict.
func (r *Registry) Classify(in Input) Decision {
	perLocale := [][]string{tokens(in.Title.Primary()), tokens(in.Title.Secondary())}

	decision := Decision{
		Action: ActionNone,
		Code:   in.Code,
		Title:  in.Title,
	}
	decision.InferredYear = inferYear(perLocale[0])
	if decision.InferredYear == 0 {
		decision.InferredYear = inferYear(perLocale[1])
	}
	decision.YearConflict = in.Year != 0 && decision.InferredYear != 0 && in.Year != decision.InferredYear

	for _, rule := range r.rules {
		if !rule.appliesToCode(in.Code) {
			continue
		}
		matched := -1
		for i, words := range perLocale {
			if rule.matches(words) {
				matched = i
				break
			}
		}
		if matched < 0 {
			continue
		}

		decision.Rule = rule.name
		decision.Action = rule.action
		if rule.action == ActionDelete {
			return decision
		}

		decision.Code = rule.code
		modifier, ok, ambiguous := rule.modifierFor(perLocale[matched], perLocale[1-matched])
		if ambiguous {
			decision.AmbiguousModifier = true
			if rule.ownsCode(in.Code) {
				decision.Code = in.Code
			}
			return decision
		}
		if ok {
			decision.Code = modifier.code
		}
		if rule.title != nil {
			if title, ok := render(*rule.title, modifier.label, r.templateValues(in, perLocale)); ok {
				decision.Title = title
				decision.Retitled = !title.Equal(in.Title)
			}
		}
		return decision
	}
	return decision
}

// modifierFor looks for a modifier in the matched locale first. More than
// one modifier in the same locale is ambiguous.
func (r Rule) modifierFor(matched, other []string) (m Modifier, ok, ambiguous bool) {
	for _, words := range [][]string{matched, other} {
		var found []Modifier
		for _, candidate := range r.modifiers {
			if candidate.keywords.anyIn(words) {
				found = append(found, candidate)
			}
		}
		switch len(found) {
		case 0:
		case 1:
			return found[0], true, false
		default:
			return Modifier{}, false, true
		}
	}
	return Modifier{}, false, false
}

// ownsCode reports whether code is the rule's code or one of its modifiers'.
func (r Rule) ownsCode(code string) bool {
	if code == r.code {
		return true
	}
	for _, m := range r.modifiers {
		if m.code == code {
			return true
		}
	}
	return false
}

type templateValues struct {
	year    int
	quarter int
}

func (r *Registry) templateValues(in Input, perLocale [][]string) templateValues {
	v := templateValues{year: in.Year}
	if v.year == 0 {
		v.year = inferYear(perLocale[0])
		if v.year == 0 {
			v.year = inferYear(perLocale[1])
		}
	}
	if in.Quarter != nil {
		v.quarter = *in.Quarter
	} else {
		v.quarter = inferQuarter(perLocale[0])
		if v.quarter == 0 {
			v.quarter = inferQuarter(perLocale[1])
		}
	}
	return v
}

// render fills a bilingual template. It reports false when the template
// needs a year or quarter that is not known.
func render(tmpl, modifier bilingual.Text, v templateValues) (bilingual.Text, bool) {
	out := make([]string, 2)
	for i, locale := range bilingual.Locales() {
		s := tmpl.In(locale)
		if strings.Contains(s, placeholderYear) {
			if v.year == 0 {
				return bilingual.Text{}, false
			}
			s = strings.ReplaceAll(s, placeholderYear, strconv.Itoa(v.year))
		}
		if strings.Contains(s, placeholderQuarter) {
			if v.quarter == 0 {
				return bilingual.Text{}, false
			}
			s = strings.ReplaceAll(s, placeholderQuarter, strconv.Itoa(v.quarter))
		}
		s = strings.ReplaceAll(s, placeholderModifier, modifier.In(locale))
		out[i] = collapseSpaces(s)
	}
	return bilingual.New(out[0], out[1]), true
}
