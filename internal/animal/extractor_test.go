package animal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asso-refuge/wpmigrate/internal/models"
)

func TestExtractFullProfile(t *testing.T) {
	content := `<p>Race : croisé berger<br>Sexe : Mâle<br>Né le : 15/03/2019<br>` +
		`Poids : 24,5 kg<br>Identification : 250269812345678<br>` +
		`Vaccin : oui<br>Stérilisé : non</p>` +
		`<p>Rex est un chien adorable qui cherche une famille.</p>`

	p, cleaned := Extract(content, "", nil, []string{"Chiens"})

	assert.Equal(t, "croisé berger", p.Breed)
	assert.Equal(t, models.SexMale, p.Sex)
	assert.Equal(t, models.SpeciesDog, p.Species)
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	require.NotNil(t, p.WeightKg)
	assert.Equal(t, 24.5, *p.WeightKg)
	assert.Equal(t, "250269812345678", p.Identification)
	require.NotNil(t, p.IsVaccinated)
	assert.True(t, *p.IsVaccinated)
	require.NotNil(t, p.IsSterilized)
	assert.False(t, *p.IsSterilized)

	assert.NotContains(t, cleaned, "Race :")
	assert.NotContains(t, cleaned, "Vaccin :")
	assert.Contains(t, cleaned, "Rex est un chien adorable")
}

func TestExtractInlineTagsCleaned(t *testing.T) {
	content := `<p><strong>Race&nbsp;:</strong> <em>labrador</em></p><p>Une belle histoire.</p>`
	p, cleaned := Extract(content, "", nil, nil)

	assert.Equal(t, "labrador", p.Breed)
	assert.NotContains(t, cleaned, "labrador")
	assert.Contains(t, cleaned, "Une belle histoire.")
}

func TestExtractNarrativePreserved(t *testing.T) {
	// A keyword in running prose is not a declarative line.
	content := `<p>Sexe : Femelle</p><p>Minette a été vaccinée par le vétérinaire du refuge.</p>`
	p, cleaned := Extract(content, "", nil, nil)

	assert.Equal(t, models.SexFemale, p.Sex)
	assert.Nil(t, p.IsVaccinated)
	assert.Contains(t, cleaned, "vaccinée par le vétérinaire")
}

func TestExtractNoData(t *testing.T) {
	content := `<p>Merci à tous nos bénévoles pour cette belle journée.</p>`
	p, cleaned := Extract(content, "", nil, nil)

	assert.True(t, p.IsEmpty())
	assert.Equal(t, content, cleaned)
}

func TestExtractSpeciesFromCategory(t *testing.T) {
	content := `<p>Race : européen<br>Sexe : Femelle</p>`
	p, _ := Extract(content, "", nil, []string{"Adoption", "Chatons"})
	assert.Equal(t, models.SpeciesCat, p.Species)
}

func TestExtractSpeciesFromBody(t *testing.T) {
	content := `<p>Sexe : Mâle</p><p>Ce lapin nain attend sa famille.</p>`
	p, _ := Extract(content, "", nil, nil)
	assert.Equal(t, models.SpeciesRodent, p.Species)
}

func TestExtractMetaWins(t *testing.T) {
	content := `<p>Race : croisé</p>`
	meta := map[string]string{"race": "labrador", "sexe": "femelle"}
	p, _ := Extract(content, "", meta, nil)

	assert.Equal(t, "labrador", p.Breed)
	assert.Equal(t, models.SexFemale, p.Sex)
}

func TestExtractFromExcerpt(t *testing.T) {
	p, _ := Extract("<p>content</p>", "<p>Race : siamois<br>Sexe : Mâle</p>", nil, nil)
	assert.Equal(t, "siamois", p.Breed)
	assert.Equal(t, models.SexMale, p.Sex)
}

func TestExtractFosterFamily(t *testing.T) {
	content := `<p>Race : croisée<br>En accueil chez Marie.</p>`
	p, _ := Extract(content, "", nil, nil)
	assert.Equal(t, "Marie", p.FosterFamily)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"day first", "15/03/2019", timePtr(2019, 3, 15)},
		{"year first", "2019-03-15", timePtr(2019, 3, 15)},
		{"dots", "01.12.2020", timePtr(2020, 12, 1)},
		{"garbage", "bientôt", nil},
		{"two parts", "03/2019", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func timePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseWeight(t *testing.T) {
	w := parseWeight("4,2 kg environ")
	require.NotNil(t, w)
	assert.Equal(t, 4.2, *w)
	assert.Nil(t, parseWeight("inconnu"))
}

func TestParseSex(t *testing.T) {
	assert.Equal(t, models.SexFemale, parseSex("Femelle stérilisée"))
	assert.Equal(t, models.SexMale, parseSex("mâle"))
	assert.Equal(t, models.SexNone, parseSex("inconnu"))
}

func TestParseBool(t *testing.T) {
	assert.Nil(t, parseBool(""))
	require.NotNil(t, parseBool("oui, à jour"))
	assert.True(t, *parseBool("oui, à jour"))
	// Negation wins even when a positive word also appears.
	assert.False(t, *parseBool("non pas encore"))
	assert.Nil(t, parseBool("prévu"))
}
