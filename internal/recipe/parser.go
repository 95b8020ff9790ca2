package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultPrepTime = "30-40 minutes"

type section int

const (
	sectionNone section = iota
	sectionRequired
	sectionAdditional
	sectionInstructions
)

var (
	requiredHeaders     = []string{"required ingredients:", "ingredients from inventory:", "from your inventory:"}
	additionalHeaders   = []string{"additional ingredients:", "extra ingredients:", "other ingredients:"}
	prepTimeHeaders     = []string{"preparation time:", "prep time:", "cooking time:", "total time:"}
	instructionHeaders  = []string{"instructions:", "steps:", "directions:", "method:"}
	excludedIngredients = map[string]bool{"none": true, "n/a": true, "-": true}

	reNumberedLine = regexp.MustCompile(`^\d+\.?\s`)
	reListPrefix   = regexp.MustCompile(`^(?:[-•*]|\d+\.?)\s*`)
)

// parseState is the parser's explicit state: either between recipes or
// inside one, with the section the next content line belongs to.
type parseState struct {
	current *Recipe
	section section
}

// ParseSuggestions parses free-text model output into recipes. Each recipe
// opens with a "Recipe:" line; section headers switch where subsequent list
// items land. Recipes without a name or without instructions are dropped.
func ParseSuggestions(text string) []Recipe {
	var recipes []Recipe
	st := parseState{}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "recipe:") {
			if r := finalize(st.current); r != nil {
				recipes = append(recipes, *r)
			}
			st = parseState{
				current: &Recipe{
					Name:                  strings.TrimSpace(line[len("recipe:"):]),
					RequiredIngredients:   []string{},
					AdditionalIngredients: []string{},
					PreparationTime:       "",
					Instructions:          []string{},
				},
			}
			continue
		}
		if st.current == nil {
			continue
		}

		switch {
		case containsAny(lower, requiredHeaders):
			st.section = sectionRequired
		case containsAny(lower, additionalHeaders):
			st.section = sectionAdditional
		case containsAny(lower, prepTimeHeaders):
			if _, after, found := strings.Cut(line, ":"); found {
				st.current.PreparationTime = strings.TrimSpace(after)
			}
			st.section = sectionNone
		case containsAny(lower, instructionHeaders):
			st.section = sectionInstructions
		case st.section != sectionNone:
			isListItem := strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") ||
				strings.HasPrefix(line, "*") || reNumberedLine.MatchString(line)
			if isListItem {
				content := strings.TrimSpace(reListPrefix.ReplaceAllString(line, ""))
				switch st.section {
				case sectionInstructions:
					if content != "" {
						st.current.Instructions = append(st.current.Instructions, content)
					}
				case sectionRequired:
					if !excludedIngredients[strings.ToLower(content)] {
						st.current.RequiredIngredients = append(st.current.RequiredIngredients, content)
					}
				case sectionAdditional:
					if !excludedIngredients[strings.ToLower(content)] {
						st.current.AdditionalIngredients = append(st.current.AdditionalIngredients, content)
					}
				}
			} else if st.section == sectionInstructions {
				// Prose instructions without list markers still count.
				st.current.Instructions = append(st.current.Instructions, line)
			}
		}
	}

	if r := finalize(st.current); r != nil {
		recipes = append(recipes, *r)
	}
	return recipes
}

// finalize validates and normalizes a recipe in progress: dedups
// ingredients, renumbers instructions, defaults the prep time.
func finalize(r *Recipe) *Recipe {
	if r == nil || r.Name == "" || len(r.Instructions) == 0 {
		return nil
	}

	r.RequiredIngredients = dedupe(r.RequiredIngredients)
	r.AdditionalIngredients = dedupe(r.AdditionalIngredients)

	numbered := make([]string, 0, len(r.Instructions))
	for _, instr := range r.Instructions {
		instr = strings.TrimSpace(instr)
		if instr == "" {
			continue
		}
		numbered = append(numbered, strconv.Itoa(len(numbered)+1)+". "+instr)
	}
	r.Instructions = numbered
	if len(r.Instructions) == 0 {
		return nil
	}

	if r.PreparationTime == "" || r.PreparationTime == "Not specified" {
		r.PreparationTime = defaultPrepTime
	}
	return r
}

// dedupe removes case-insensitive duplicates, keeping first occurrence
// and its original casing.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
