package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

func newTestExtractor(opts ...Option) *Extractor {
	return NewExtractor(DefaultVocabulary(), opts...)
}

func TestExtractTotality(t *testing.T) {
	e := newTestExtractor()
	inputs := []string{
		"", " ", "\n\n\t\n", "x", "@", "+", "()", "ÄÖÜ", "\x00\x01",
		"@@@ ... --- +++", strings.Repeat("9", 500), "a\r\nb\rc\n",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = e.Extract(in) }, "input %q", in)
	}

	assert.Equal(t, entity.ContactRecord{}, e.Extract(""))
	assert.Equal(t, entity.ContactRecord{}, e.Extract("   \n\t  \n"))
}

func TestExtractEmail(t *testing.T) {
	rec := newTestExtractor().Extract("Contact: jane.doe@example.com for info")
	assert.Equal(t, "jane.doe@example.com", rec.Email)
}

func TestExtractPhone(t *testing.T) {
	rec := newTestExtractor().Extract("Call +1-415-555-1234 now")
	assert.Equal(t, "+1-415-555-1234", rec.Phone)
}

func TestExtractKeepsFirstMatchVerbatim(t *testing.T) {
	text := "Mail: First.Person@Example.COM\nalt: second@example.org\nTel: (415) 555-1234\nFax: 415.555.9876"
	rec := newTestExtractor().Extract(text)
	assert.Equal(t, "First.Person@Example.COM", rec.Email)
	assert.Equal(t, "(415) 555-1234", rec.Phone)
}

func TestContactLinesAreExcluded(t *testing.T) {
	e := newTestExtractor()
	text := "Jane Doe\nReach me at jane@x.com anytime\nOffice 221 555 0100 ext"
	c := e.Classify(text)

	require.Len(t, c.Assigned, 3)
	assert.Equal(t, CategoryContact, c.Assigned[1])
	assert.Equal(t, CategoryContact, c.Assigned[2])
	for _, cat := range []Category{CategoryName, CategoryCompany, CategoryAddress, CategoryDesignation} {
		assert.NotContains(t, c.Candidates(cat), "Reach me at jane@x.com anytime", "category %s", cat)
	}

	rec := e.Extract(text)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "jane@x.com", rec.Email)
	assert.Empty(t, rec.Company)
	assert.Empty(t, rec.Address)
}

func TestNameFallbackSkipsContactLine(t *testing.T) {
	rec := newTestExtractor().Extract("jane@x.com\n+1 415 555 1234")
	assert.Empty(t, rec.Name)
	assert.Equal(t, "jane@x.com", rec.Email)
}

func TestDesignationWinsOverCompany(t *testing.T) {
	e := newTestExtractor()
	c := e.Classify("Senior Solutions Engineer")
	require.Equal(t, []Category{CategoryDesignation}, c.Assigned)

	rec := e.Extract("Senior Solutions Engineer")
	assert.Equal(t, "Senior Solutions Engineer", rec.Designation)
	assert.Empty(t, rec.Company)
	// the only line carries a company keyword, so it is not reused as a name
	assert.Empty(t, rec.Name)
}

func TestAllCapsLineIsCompanyNotName(t *testing.T) {
	e := newTestExtractor()
	c := e.Classify("ACME CORP")
	assert.Equal(t, []Category{CategoryCompany}, c.Assigned)
	assert.Empty(t, c.Candidates(CategoryName))

	rec := e.Extract("Jane Doe\nACME CORP")
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "ACME CORP", rec.Company)
}

func TestAllCapsLongLineIsNotFallbackCompany(t *testing.T) {
	c := newTestExtractor().Classify("GOOD FOOD FOR ALL")
	assert.Equal(t, []Category{CategoryUnclassified}, c.Assigned)
}

func TestAddressJoinIsBoundedToThreeLines(t *testing.T) {
	text := strings.Join([]string{
		"Park Street",
		"Lake Road",
		"Salt Lake City",
		"West Bengal State",
		"Zip 700091",
	}, "\n")
	rec := newTestExtractor().Extract(text)
	assert.Equal(t, "Park Street | Lake Road | Salt Lake City", rec.Address)
}

func TestDigitLineIsAddressEvenWhenShort(t *testing.T) {
	c := newTestExtractor().Classify("Unit 7")
	assert.Equal(t, []Category{CategoryAddress}, c.Assigned)
}

func TestLongLinePolicy(t *testing.T) {
	line := "Opposite the old municipal market near river"

	c := newTestExtractor().Classify(line)
	assert.Equal(t, []Category{CategoryAddress}, c.Assigned)

	c = newTestExtractor(WithLongLineThreshold(0)).Classify(line)
	assert.Equal(t, []Category{CategoryUnclassified}, c.Assigned)
}

func TestKeywordsMatchAsSubstrings(t *testing.T) {
	e := newTestExtractor()
	c := e.Classify("Jane Doe\nNovatech Labs\nCofounder\nInfotech Biotech")
	assert.Equal(t, []Category{CategoryName, CategoryCompany, CategoryDesignation, CategoryCompany}, c.Assigned)

	rec := e.Extract("Jane Doe\nCofounder")
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "Cofounder", rec.Designation)
	assert.Empty(t, rec.Company)

	rec = e.Extract("Jane Doe\nNovatech Labs")
	assert.Equal(t, "Novatech Labs", rec.Company)
}

func TestWordStartKeywordsOption(t *testing.T) {
	text := "Elaine Marsh\nVictor Hugo\nNovatech Labs\nTechnologies Unlimited"

	c := newTestExtractor().Classify(text)
	assert.Equal(t, []Category{CategoryAddress, CategoryDesignation, CategoryCompany, CategoryCompany}, c.Assigned)

	c = newTestExtractor(WithWordStartKeywords()).Classify(text)
	assert.Equal(t, []Category{CategoryName, CategoryName, CategoryName, CategoryCompany}, c.Assigned)
}

func TestFullCard(t *testing.T) {
	text := `
		John Smith
		Senior Software Engineer
		Acme Technologies Pvt Ltd
		john.smith@acme.com
		+1 (415) 555-1234
		4th Floor, Tower B
		MG Road, Bangalore 560001
	`
	rec := newTestExtractor().Extract(text)
	assert.Equal(t, entity.ContactRecord{
		Name:        "John Smith",
		Email:       "john.smith@acme.com",
		Phone:       "+1 (415) 555-1234",
		Company:     "Acme Technologies Pvt Ltd",
		Designation: "Senior Software Engineer",
		Address:     "4th Floor, Tower B | MG Road, Bangalore 560001",
	}, rec)
}

func TestNameFallsBackToFirstLine(t *testing.T) {
	rec := newTestExtractor().Extract("jane doe\nACME TRADING CO")
	assert.Equal(t, "jane doe", rec.Name)
	assert.Equal(t, "ACME TRADING CO", rec.Company)
}

func TestNameFallbackSkipsCompanyMasthead(t *testing.T) {
	rec := newTestExtractor().Extract("Globex Solutions\njane@globex.com")
	assert.Empty(t, rec.Name)
	assert.Equal(t, "Globex Solutions", rec.Company)
}

func TestResidualCompany(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"second name-shaped line", "John Smith\nGlobex", "Globex"},
		{"lowercase brand", "John Smith\nglobex", "globex"},
		{"too many words", "John Smith\nthe very best of friends", ""},
		{"only claimed lines", "John Smith\nSales Manager\n12 Main Street", ""},
	}
	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text).Company)
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	e := newTestExtractor()
	text := "Jane Doe\nCTO\nInitech LLC\njane@initech.com\n+44 20 7946 0958\n1 Infinite Loop, Suite 400"
	assert.Equal(t, e.Extract(text), e.Extract(text))
}

func TestCustomVocabulary(t *testing.T) {
	e := NewExtractor(Vocabulary{
		Designation: []string{"Chef"},
		Company:     []string{"BISTRO"},
		Address:     []string{"rue"},
	})
	rec := e.Extract("Marie Curie\nHead Chef\nLe Petit Bistro\nRue Cler, Paris")
	assert.Equal(t, entity.ContactRecord{
		Name:        "Marie Curie",
		Designation: "Head Chef",
		Company:     "Le Petit Bistro",
		Address:     "Rue Cler, Paris",
	}, rec)
}

func TestRulesOrder(t *testing.T) {
	var names []string
	for _, r := range newTestExtractor().Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"designation_keyword",
		"company_keyword",
		"address",
		"name_shape",
		"all_caps_company",
	}, names)
}

func TestExtractorIsSafeForConcurrentUse(t *testing.T) {
	e := newTestExtractor()
	text := "Jane Doe\nDirector\nInitech LLC\njane@initech.com"
	want := e.Extract(text)

	done := make(chan entity.ContactRecord, 8)
	for i := 0; i < cap(done); i++ {
		go func() { done <- e.Extract(text) }()
	}
	for i := 0; i < cap(done); i++ {
		assert.Equal(t, want, <-done)
	}
}

func TestExtractedContactsPassValidation(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"jane.doe@mail.example.co.uk",
		"j_doe-2@initech.io",
		"+1-415-555-1234",
		"(022) 2345 6789",
		"+91 984 501 2345",
	}, "\n")

	emails := FindEmails(text)
	phones := FindPhones(text)
	require.Len(t, emails, 2)
	require.Len(t, phones, 3)

	for _, email := range emails {
		assert.NoError(t, common.ValidateContact(entity.ContactRecord{Name: "Jane Doe", Email: email}), email)
	}
	for _, phone := range phones {
		assert.NoError(t, common.ValidateContact(entity.ContactRecord{Name: "Jane Doe", Phone: phone}), phone)
	}
	assert.Error(t, common.ValidateContact(entity.ContactRecord{Name: "Jane Doe", Email: "jane at initech"}))
}
