// Package animal mines structured adoption-profile data out of
// free-form post HTML. Shelters publish profiles as loosely formatted
// declarative lines ("Race : croisé", "Vaccin : oui") mixed with
// narrative prose; extraction is heuristic and degrades to doing
// nothing when no recognizable fields are present.
package animal

import (
	stdhtml "html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/asso-refuge/wpmigrate/internal/models"
)

// Profile holds the attributes resolved for one animal.
type Profile struct {
	Name           string
	Species        models.Species
	Breed          string
	Sex            models.Sex
	BirthDate      *time.Time
	WeightKg       *float64
	Identification string
	IsVaccinated   *bool
	IsSterilized   *bool
	FosterFamily   string
	AgeText        string
}

// IsEmpty reports whether the extraction found nothing usable. An
// extraction that resolved neither species, breed nor sex is treated
// as empty even if an isolated line happened to match.
func (p *Profile) IsEmpty() bool {
	return p.Species == models.SpeciesNone && p.Breed == "" && p.Sex == models.SexNone
}

const maxFieldLen = 255

// field label patterns, scanned in order against each text line. The
// capture is the remainder of the line after the label.
var (
	nameRe   = regexp.MustCompile(`(?i)^\s*(?:nom|pr[ée]nom)\s*:\s*(.+)$`)
	breedRe  = regexp.MustCompile(`(?i)^\s*race\s*:\s*(.+)$`)
	sexRe    = regexp.MustCompile(`(?i)^\s*sexe\s*:\s*(.+)$`)
	birthRe  = regexp.MustCompile(`(?i)^\s*(?:n[ée]e?\s+le|date\s+de\s+naissance|naissance)\s*:?\s*(.+)$`)
	weightRe = regexp.MustCompile(`(?i)^\s*poids\s*:\s*(.+)$`)
	identRe  = regexp.MustCompile(`(?i)^\s*(?:identification(?:\s+[ée]lectronique)?|puce(?:\s+[ée]lectronique)?)\s*:\s*(.+)$`)
	vaccinRe = regexp.MustCompile(`(?i)^\s*vaccin(?:[ée]e?s?|ation)?\s*:\s*(.+)$`)
	sterilRe = regexp.MustCompile(`(?i)^\s*(?:st[ée]rilis[ée]e?|castr[ée]e?)\s*:\s*(.+)$`)
	fosterRe = regexp.MustCompile(`(?i)^\s*en\s+accueil\s+chez\s+:?\s*(.+)$`)
	ageRe    = regexp.MustCompile(`(?i)^\s*[âa]ge\s*:\s*(.+)$`)
	specieRe = regexp.MustCompile(`(?i)^\s*esp[èe]ce\s*:\s*(.+)$`)

	fieldPatterns = []*regexp.Regexp{
		nameRe, breedRe, sexRe, birthRe, weightRe, identRe,
		vaccinRe, sterilRe, fosterRe, ageRe, specieRe,
	}
)

// metaAliases maps profile attributes to the sidecar metadata keys
// various legacy plugins used for them.
var metaAliases = map[string][]string{
	"name":       {"nom", "animal_name", "name"},
	"breed":      {"race", "breed"},
	"sex":        {"sexe", "sex"},
	"species":    {"espece", "espèce", "species"},
	"birth":      {"date_naissance", "naissance", "birth_date"},
	"weight":     {"poids", "weight"},
	"ident":      {"identification", "puce", "chip"},
	"vaccinated": {"vaccin", "vaccine", "vaccinated"},
	"sterilized": {"sterilise", "castre", "sterilized"},
	"foster":     {"famille_accueil", "accueil", "foster"},
}

// speciesKeywords classify category names and body text.
var speciesKeywords = []struct {
	keyword string
	species models.Species
}{
	{"chiot", models.SpeciesDog},
	{"chien", models.SpeciesDog},
	{"chaton", models.SpeciesCat},
	{"chat", models.SpeciesCat},
	{"rongeur", models.SpeciesRodent},
	{"lapin", models.SpeciesRodent},
	{"hamster", models.SpeciesRodent},
}

// Extract mines profile attributes from a post's content, optional
// excerpt, sidecar metadata and category names. It returns the profile
// plus the content with matched declarative lines removed; narrative
// prose stays verbatim. When nothing is found the original content is
// returned unchanged.
func Extract(content, excerpt string, meta map[string]string, categories []string) (Profile, string) {
	var p Profile
	raw := make(map[string]string)

	// Sidecar metadata wins; text-sourced values never overwrite it.
	for attr, aliases := range metaAliases {
		for _, key := range aliases {
			if v, ok := meta[key]; ok && strings.TrimSpace(v) != "" && !strings.HasPrefix(key, "_") {
				raw[attr] = strings.TrimSpace(v)
				break
			}
		}
	}

	text := htmlToText(content)
	if excerpt != "" {
		text += "\n" + htmlToText(excerpt)
	}
	scanLines(text, raw)

	p.Name = truncate(raw["name"])
	p.Breed = truncate(raw["breed"])
	p.Sex = parseSex(raw["sex"])
	p.Species = parseSpecies(raw["species"])
	p.BirthDate = parseDate(raw["birth"])
	p.WeightKg = parseWeight(raw["weight"])
	p.Identification = truncate(raw["ident"])
	p.IsVaccinated = parseBool(raw["vaccinated"])
	p.IsSterilized = parseBool(raw["sterilized"])
	p.FosterFamily = truncate(strings.TrimRight(raw["foster"], ". "))
	p.AgeText = truncate(raw["age"])

	if p.Species == models.SpeciesNone {
		p.Species = speciesFromNames(categories)
	}
	if p.Species == models.SpeciesNone {
		p.Species = speciesFromNames([]string{text})
	}

	if p.IsEmpty() {
		return Profile{}, content
	}
	return p, cleanHTML(content)
}

func scanLines(text string, raw map[string]string) {
	set := func(attr, v string) {
		if _, ok := raw[attr]; !ok && strings.TrimSpace(v) != "" {
			raw[attr] = strings.TrimSpace(v)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case matchSet(nameRe, line, "name", set):
		case matchSet(breedRe, line, "breed", set):
		case matchSet(sexRe, line, "sex", set):
		case matchSet(birthRe, line, "birth", set):
		case matchSet(weightRe, line, "weight", set):
		case matchSet(identRe, line, "ident", set):
		case matchSet(vaccinRe, line, "vaccinated", set):
		case matchSet(sterilRe, line, "sterilized", set):
		case matchSet(fosterRe, line, "foster", set):
		case matchSet(ageRe, line, "age", set):
		case matchSet(specieRe, line, "species", set):
		}
	}
}

func matchSet(re *regexp.Regexp, line, attr string, set func(string, string)) bool {
	if m := re.FindStringSubmatch(line); m != nil {
		set(attr, m[1])
		return true
	}
	return false
}

// htmlToText strips markup to plain text, keeping line structure:
// paragraph and break boundaries become newlines, entities decode.
// Non-breaking spaces become plain spaces so label patterns match.
func htmlToText(content string) string {
	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := tok.Next()
		switch tt {
		case html.ErrorToken:
			return strings.ReplaceAll(b.String(), " ", " ")
		case html.TextToken:
			b.WriteString(tok.Token().Data)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "p", "br", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte('\n')
			}
		}
	}
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxFieldLen {
		s = s[:maxFieldLen]
	}
	return s
}

// parseSex checks the feminine form before the masculine one: the
// masculine token is a substring of some feminine spellings.
func parseSex(v string) models.Sex {
	v = strings.ToLower(v)
	switch {
	case v == "":
		return models.SexNone
	case strings.Contains(v, "femelle") || strings.Contains(v, "female"):
		return models.SexFemale
	case strings.Contains(v, "mâle") || strings.Contains(v, "male"):
		return models.SexMale
	default:
		return models.SexNone
	}
}

func parseSpecies(v string) models.Species {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return models.SpeciesNone
	}
	if s := speciesFromNames([]string{v}); s != models.SpeciesNone {
		return s
	}
	return models.SpeciesOther
}

func speciesFromNames(names []string) models.Species {
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, kw := range speciesKeywords {
			if strings.Contains(lower, kw.keyword) {
				return kw.species
			}
		}
	}
	return models.SpeciesNone
}

var dateSepRe = regexp.MustCompile(`[.\-/]`)

// parseDate accepts day/month/year before year/month/day, with "/",
// "-" or "." separators.
func parseDate(v string) *time.Time {
	parts := dateSepRe.Split(strings.TrimSpace(v), -1)
	if len(parts) != 3 {
		return nil
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil
		}
		nums[i] = n
	}
	if t, ok := validDate(nums[2], nums[1], nums[0]); ok { // d/m/y
		return t
	}
	if t, ok := validDate(nums[0], nums[1], nums[2]); ok { // y/m/d
		return t
	}
	return nil
}

func validDate(year, month, day int) (*time.Time, bool) {
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return nil, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t, true
}

var weightNumRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

func parseWeight(v string) *float64 {
	v = strings.ReplaceAll(v, ",", ".")
	m := weightNumRe.FindString(v)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}

var (
	negWords = []string{"non", "no", "pas"}
	posWords = []string{"oui", "yes", "ok"}
)

func parseBool(v string) *bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return nil
	}
	for _, w := range negWords {
		if strings.Contains(v, w) {
			f := false
			return &f
		}
	}
	for _, w := range posWords {
		if strings.Contains(v, w) {
			t := true
			return &t
		}
	}
	return nil
}

var (
	paraRe = regexp.MustCompile(`(?s)<p\b[^>]*>(.*?)</p>`)
	brRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe  = regexp.MustCompile(`<[^>]+>`)
)

// cleanHTML removes from the original HTML every paragraph block, or
// br-separated line inside one, whose decoded tag-stripped text is a
// declarative field line. Inline formatting and style spans around the
// label do not prevent removal. Narrative prose that merely mentions a
// keyword stays.
func cleanHTML(content string) string {
	return paraRe.ReplaceAllStringFunc(content, func(block string) string {
		inner := paraRe.FindStringSubmatch(block)[1]
		segments := brRe.Split(inner, -1)

		var kept []string
		for _, seg := range segments {
			if !isFieldLine(seg) {
				kept = append(kept, seg)
			}
		}
		if len(kept) == len(segments) {
			return block
		}
		if len(kept) == 0 {
			return ""
		}
		return "<p>" + strings.Join(kept, "<br>") + "</p>"
	})
}

func isFieldLine(segment string) bool {
	text := stdhtml.UnescapeString(tagRe.ReplaceAllString(segment, ""))
	text = strings.TrimSpace(strings.ReplaceAll(text, " ", " "))
	if text == "" {
		return false
	}
	for _, re := range fieldPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
