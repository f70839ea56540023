package regexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	f := ParseFlags("gimsuy")
	assert.True(t, f.Global)
	assert.True(t, f.IgnoreCase)
	assert.True(t, f.Multiline)
	assert.True(t, f.DotAll)
	assert.True(t, f.Unicode)
	assert.True(t, f.Sticky)
}

func TestValidateAcceptsWellFormedPatterns(t *testing.T) {
	cases := []string{
		`abc`,
		`a|b|c`,
		`(a)(b)\1\2`,
		`[a-z0-9]+`,
		`[^abc]*`,
		`a{2,4}`,
		`(?:abc)`,
		`(?=abc)`,
		`(?!abc)`,
		`(?<=abc)`,
		`(?<!abc)`,
		`(?<name>abc)\k<name>`,
		`^start$`,
		`\bword\B`,
	}
	for _, pattern := range cases {
		t.Run(pattern, func(t *testing.T) {
			errs := Validate(pattern, Flags{}, 2021)
			assert.Empty(t, errs, "pattern %q", pattern)
		})
	}
}

func TestValidateRejectsUnterminatedGroup(t *testing.T) {
	errs := Validate("(abc", Flags{}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateRejectsUnterminatedCharacterClass(t *testing.T) {
	errs := Validate("[abc", Flags{}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateRejectsNothingToRepeat(t *testing.T) {
	errs := Validate("*abc", Flags{}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateRejectsOutOfOrderQuantifier(t *testing.T) {
	errs := Validate("a{4,2}", Flags{}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateRejectsDuplicateNamedGroup(t *testing.T) {
	errs := Validate("(?<dup>a)(?<dup>b)", Flags{}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateRejectsInvalidBackreferenceUnderUnicodeFlag(t *testing.T) {
	errs := Validate(`\9`, Flags{Unicode: true}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateAllowsForwardLookingBackreferenceUnderUnicodeFlag(t *testing.T) {
	errs := Validate(`\1(a)`, Flags{Unicode: true}, 2021)
	assert.Empty(t, errs)
}

func TestValidateRejectsReferenceToMissingNamedGroup(t *testing.T) {
	errs := Validate(`\k<missing>`, Flags{}, 2021)
	assert.NotEmpty(t, errs)
}

func TestValidateUnicodePropertyEscapeAcceptedWithUnicodeFlag(t *testing.T) {
	withU := Validate(`\p{Letter}`, Flags{Unicode: true}, 2021)
	assert.Empty(t, withU)
}

func TestValidateRejectsInvalidUnicodeEscape(t *testing.T) {
	errs := Validate(`\u{}`, Flags{Unicode: true}, 2021)
	assert.NotEmpty(t, errs)
}

func TestUnicodePropertyEscapeGatedOnEcmaVersion(t *testing.T) {
	pattern := `\p{Script=Greek}`
	flags := Flags{Unicode: true}

	assert.Empty(t, Validate(pattern, flags, 9), "accepted at ecmaVersion 9")
	assert.NotEmpty(t, Validate(pattern, flags, 8), "rejected at ecmaVersion 8")
}
