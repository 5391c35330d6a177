package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/catalog"
)

func search(t *testing.T, cat *catalog.Catalog, text string, opts ...Option) *Result {
	t.Helper()
	q, err := Parse(text, cat, opts...)
	require.NoError(t, err, text)
	return Evaluate(q, cat)
}

func names(t *testing.T, cat *catalog.Catalog, text string) []string {
	t.Helper()
	return search(t, cat, text).CardNames()
}

func assertNames(t *testing.T, cat *catalog.Catalog, text string, want ...string) {
	t.Helper()
	got := names(t, cat, text)
	if len(want) == 0 {
		assert.Empty(t, got, text)
		return
	}
	assert.Equal(t, want, got, text)
}

func assertEquivalent(t *testing.T, cat *catalog.Catalog, queries ...string) {
	t.Helper()
	first := names(t, cat, queries[0])
	require.NotEmpty(t, first, queries[0])
	for _, q := range queries[1:] {
		assert.Equal(t, first, names(t, cat, q), "%s vs %s", queries[0], q)
	}
}

func TestEvaluate_Types(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "t:goblin", "Goblin Electromancer")
	assertEquivalent(t, cat, "t:human t:warrior", `t:"human warrior"`, `t:"warrior human"`)
	assertNames(t, cat, "t:human t:warrior", "Rubblebelt Raiders")
	assertEquivalent(t, cat, "c:l", "t:land")
}

func TestEvaluate_Editions(t *testing.T) {
	cat := fixtureCatalog(t)

	assertEquivalent(t, cat, "e:rtr or e:gtc or e:dgm", "b:rtr", "b:maze", `b:"return to ravnica"`, "e:rtr,gtc,dgm")
	assertNames(t, cat, "e:ravnica",
		"Boros Guildmage", "Selesnya Guildmage", "Elves of Deep Shadow",
		"Dryad Militant", "Jace, Architect of Thought", "Isperia, Supreme Judge",
		"Sphinx's Revelation", "Island", "Plains")
	assertEquivalent(t, cat, "is:funny", "st:un", "e:ugl", "st:funny")

	// Unresolvable and printing-less editions are not errors.
	assertNames(t, cat, "e:in")
	assertNames(t, cat, "e:kamigawa")
}

func TestEvaluate_PrintingScope(t *testing.T) {
	cat := fixtureCatalog(t)

	res := search(t, cat, "e:rtr t:island")
	assert.Equal(t, ResultPrintings, res.Scope)
	require.Equal(t, 1, res.Len())
	require.Len(t, res.Matches[0].Printings, 1)
	assert.Equal(t, "rtr", res.Matches[0].Printings[0].SetCode)

	res = search(t, cat, "t:island")
	assert.Equal(t, ResultCards, res.Scope)
	assert.Len(t, res.Printings(), 3)

	// Negation complements printings, not cards.
	res = search(t, cat, "t:island -e:rtr")
	require.Equal(t, 1, res.Len())
	assert.Len(t, res.Matches[0].Printings, 2)

	assertNames(t, cat, "e:lea -e:lea")
	assert.Equal(t, ResultPrintings, search(t, cat, "-r:common").Scope)
	assert.Equal(t, ResultCards, search(t, cat, "alt:e:rtr").Scope)
}

func TestEvaluate_Colors(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "c:rg", "Rubblebelt Raiders")
	assertNames(t, cat, "c:c", "Shapeshifter", "Island", "Plains")
	assertNames(t, cat, "c!wu", "Isperia, Supreme Judge", "Sphinx's Revelation")
	assertEquivalent(t, cat, "c!wu", "c=wu")
	assertNames(t, cat, "c:m",
		"Boros Guildmage", "Selesnya Guildmage", "Dryad Militant",
		"Isperia, Supreme Judge", "Sphinx's Revelation",
		"Goblin Electromancer", "Rubblebelt Raiders")
	assertNames(t, cat, "c<=w", "Serra Angel", "Aysen Crusader", "Shapeshifter", "Well", "Island", "Plains")
	assertNames(t, cat, "c:ml")
}

func TestEvaluate_ColorIdentity(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "ci:rg", "Rubblebelt Raiders")
	assertNames(t, cat, "ci:r",
		"Lightning Bolt", "Boros Guildmage", "Goblin Electromancer",
		"Rubblebelt Raiders", "Turn", "Burn")
	assertEquivalent(t, cat, "ci:r", "ci>=r")
	assertNames(t, cat, "ci:gw", "Selesnya Guildmage", "Dryad Militant", "Alive", "Well")
	assertNames(t, cat, "ci!bg", "Elves of Deep Shadow")

	// "<=" asks which cards fit a deck of the given identity.
	assertNames(t, cat, "ci<=r", "Lightning Bolt", "Shapeshifter")
	assertNames(t, cat, "ci<=wu t:basic", "Island", "Plains")
	assertNames(t, cat, "ci<=g", "S.N.O.T.", "Gaea's Avenger", "Shapeshifter")
}

func TestEvaluate_NumericAndStats(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "cmc>=6", "Shapeshifter", "Isperia, Supreme Judge")
	assertNames(t, cat, "cmc=1", "Lightning Bolt", "Dark Ritual", "Elves of Deep Shadow", "Dryad Militant", "Well")

	assertEquivalent(t, cat, "pow=1+*", "pow=*+1", "tou=1+*")
	assertNames(t, cat, "pow=1+*", "Gaea's Avenger")
	assertEquivalent(t, cat, "pow=*²", "pow=*2")
	assertNames(t, cat, "pow=*2", "S.N.O.T.")
	assertNames(t, cat, "pow>=2+*", "Aysen Crusader")
	assertNames(t, cat, "pow=*", "Shapeshifter")
	assertNames(t, cat, "tou=7-*", "Shapeshifter")
	assertNames(t, cat, "pow>5", "Isperia, Supreme Judge")
	assertNames(t, cat, "pow<=1", "Elves of Deep Shadow")
	assertNames(t, cat, "loy=4", "Jace, Architect of Thought")

	assertNames(t, cat, "tou>8-*")
	assertNames(t, cat, "tou<=8-*", "Shapeshifter")
	assertNames(t, cat, "tou>2-*", "Shapeshifter")
	assert.NotContains(t, names(t, cat, "pow=1+*"), "Aysen Crusader")
	assert.NotContains(t, names(t, cat, "pow=2+*"), "Gaea's Avenger")
	for _, name := range names(t, cat, "pow=1+*") {
		assert.NotContains(t, names(t, cat, "pow=2+*"), name)
	}

	notThree := names(t, cat, "pow!=3")
	assert.Subset(t, notThree, []string{"Serra Angel", "S.N.O.T.", "Gaea's Avenger", "Shapeshifter", "Elves of Deep Shadow"})
	assert.NotContains(t, notThree, "Rubblebelt Raiders")
	assert.NotContains(t, notThree, "Lightning Bolt", "cards without power never match")
}

func TestEvaluate_Mana(t *testing.T) {
	cat := fixtureCatalog(t)

	assertEquivalent(t, cat, "e:rtr mana=h", "e:rtr c:m cmc=1")
	assertNames(t, cat, "mana=hh", "Boros Guildmage", "Selesnya Guildmage")
	assertEquivalent(t, cat, "mana=xwuu", "mana=xuwu", "mana=xmnn", "mana={x}{w}{u}{u}", "mana=xwmm")
	assertNames(t, cat, "mana=xwuu", "Sphinx's Revelation")
	assertNames(t, cat, "mana=xmmm")
	assertNames(t, cat, "mana=1mn", "Rubblebelt Raiders")
	assertNames(t, cat, "mana=1mm", "Zzzyxas's Abyss", "Gaea's Avenger")
	assertNames(t, cat, "mana>=uu", "Counterspell", "Jace, Architect of Thought", "Isperia, Supreme Judge", "Sphinx's Revelation")
	assertNames(t, cat, "mana>uu", "Jace, Architect of Thought", "Isperia, Supreme Judge", "Sphinx's Revelation")
	assertNames(t, cat, "mana<=1r", "Lightning Bolt", "Burn")
	assertNames(t, cat, "mana<1r", "Lightning Bolt")
	assert.NotContains(t, names(t, cat, "mana!=r"), "Lightning Bolt")
	assert.NotContains(t, names(t, cat, "mana!=r"), "Island", "cards without a cost never match")
}

func TestEvaluate_Rarity(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "r:mythic", "Jace, Architect of Thought", "Isperia, Supreme Judge", "Sphinx's Revelation")
	assertNames(t, cat, "r>=rare",
		"Counterspell", "The Abyss", "Zzzyxas's Abyss", "Shapeshifter",
		"Jace, Architect of Thought", "Isperia, Supreme Judge", "Sphinx's Revelation")
	assertEquivalent(t, cat, "r:basic", "r:b", "t:basic")
	assertEquivalent(t, cat, "r:m", "r:mythic")
}

func TestEvaluate_DatesAndAlt(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "year=1993",
		"Lightning Bolt", "Serra Angel", "Counterspell", "Dark Ritual", "The Abyss", "Island", "Plains")
	assertEquivalent(t, cat, "year=1993", "print=1993", "print=1993-08", "print=lea", `print="5 august 1993"`, "e:lea")
	assertNames(t, cat, "year=1993 alt:year=2015", "Lightning Bolt", "Serra Angel", "Island", "Plains")
	assertNames(t, cat, `a:"rebecca guay" alt:(-a:"rebecca guay")`, "Serra Angel")

	res := search(t, cat, "year=1993 alt:year=2015")
	for _, m := range res.Matches {
		for _, p := range m.Printings {
			assert.Equal(t, "lea", p.SetCode, m.Card.Name)
		}
	}

	assertNames(t, cat, "print=rtr",
		"Dryad Militant", "Jace, Architect of Thought", "Isperia, Supreme Judge",
		"Sphinx's Revelation", "Island", "Plains")
	assertNames(t, cat, "firstprint>=2012",
		"Dryad Militant", "Jace, Architect of Thought", "Isperia, Supreme Judge",
		"Sphinx's Revelation", "Goblin Electromancer", "Rubblebelt Raiders",
		"Alive", "Well", "Turn", "Burn")
	assertNames(t, cat, "lastprint<=1995", "Counterspell", "The Abyss")
	assertEquivalent(t, cat, `print>"29 september 2012" print<2015`, "b:rtr")
}

func TestEvaluate_IsKeywords(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "is:funny", "Zzzyxas's Abyss", "S.N.O.T.")
	assertNames(t, cat, "abyss", "The Abyss", "Zzzyxas's Abyss")
	assertEquivalent(t, cat, "abyss not:funny", "abyss -is:funny", "abyss is!funny")
	assertNames(t, cat, "abyss not:funny", "The Abyss")
	assertNames(t, cat, "is:promo", "Counterspell")
	assertNames(t, cat, "is:commander", "Isperia, Supreme Judge")
	assertNames(t, cat, "is:split", "Alive", "Well", "Turn", "Burn")
	assertNames(t, cat, "is:split is:primary", "Alive", "Turn")
	assertNames(t, cat, "is:reserved", "The Abyss")
	assertNames(t, cat, "is:vanilla")
	assertNames(t, cat, "is:reprint", "Lightning Bolt", "Serra Angel", "Counterspell", "Dark Ritual", "Island", "Plains")
	assertEquivalent(t, cat, "not:split,funny", "-is:split -is:funny")
}

func TestEvaluate_Parts(t *testing.T) {
	cat := fixtureCatalog(t)

	assertEquivalent(t, cat, "part:cmc=1 part:cmc=4", "alive", "!alive // well")
	assertNames(t, cat, "part:cmc=3 part:cmc=2", "Turn", "Burn")
	assertNames(t, cat, "part:cmc=3 part:cmc=3")
	assertNames(t, cat, "part:c:u part:cmc=3")
	assertNames(t, cat, "part:c:u part:c:r", "Turn", "Burn")
	assertNames(t, cat, "part:cmc=1",
		"Lightning Bolt", "Dark Ritual", "Elves of Deep Shadow", "Dryad Militant", "Alive", "Well")
	assertNames(t, cat, "(part:cmc=3) part:t:instant e:dgm", "Turn", "Burn")
}

func TestEvaluate_TextAndNames(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "!alive", "Alive")
	assertNames(t, cat, `!"lightning bolt"`, "Lightning Bolt")
	assertNames(t, cat, "!lightning")
	assertNames(t, cat, "deals", "Lightning Bolt", "Elves of Deep Shadow", "Burn")
	assertNames(t, cat, "o:deals", "Lightning Bolt", "Elves of Deep Shadow", "Burn")
	assertNames(t, cat, "name:bolt", "Lightning Bolt")
	assertNames(t, cat, `ft:"beautifully"`, "Serra Angel")
	assertNames(t, cat, "a:jock", "Goblin Electromancer", "Plains")
	assertNames(t, cat, "sphinx’s", "Sphinx's Revelation")

	res := search(t, cat, "deals", WithBareScope(ScopeName))
	assert.Zero(t, res.Len())
}

func TestEvaluate_Legality(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "banned:pauper", "Serra Angel")
	assertNames(t, cat, "restricted:vintage", "Dark Ritual")
	assert.Contains(t, names(t, cat, "f:vintage"), "Dark Ritual")
	assert.NotContains(t, names(t, cat, "f:modern"), "Counterspell")
	assertEquivalent(t, cat, "f:standard", "legal:standard", "format:Standard")
}

func TestEvaluate_BooleanLaws(t *testing.T) {
	cat := fixtureCatalog(t)

	assertEquivalent(t, cat, "-(t:goblin or c:r)", "-t:goblin -c:r")
	assertEquivalent(t, cat, "t:creature c:g", "c:g t:creature", "t:creature and c:g")
	assertEquivalent(t, cat, "c:r or c:g", "c:g or c:r")
}

func TestEvaluate_Sort(t *testing.T) {
	cat := fixtureCatalog(t)

	assertNames(t, cat, "e:rtr sort:name",
		"Dryad Militant", "Island", "Isperia, Supreme Judge",
		"Jace, Architect of Thought", "Plains", "Sphinx's Revelation")
	assertNames(t, cat, "cmc>=4 sort:cmc",
		"Shapeshifter", "Isperia, Supreme Judge", "Serra Angel",
		"The Abyss", "S.N.O.T.", "Aysen Crusader", "Jace, Architect of Thought", "Alive")
	assertNames(t, cat, "(e:ori or e:pmei) sort:new",
		"Lightning Bolt", "Serra Angel", "Island", "Plains", "Counterspell")
	assertNames(t, cat, "(e:ori or e:pmei) sort:old",
		"Counterspell", "Lightning Bolt", "Serra Angel", "Island", "Plains")
	assertNames(t, cat, "(e:ori or e:pmei) sort:oldall",
		"Lightning Bolt", "Serra Angel", "Counterspell", "Island", "Plains")
	assertNames(t, cat, "(e:ori or e:pmei) sort:newall",
		"Lightning Bolt", "Serra Angel", "Island", "Plains", "Counterspell")
	assertNames(t, cat, "t:creature sort:pow",
		"Isperia, Supreme Judge", "Serra Angel", "Rubblebelt Raiders",
		"Aysen Crusader", "Boros Guildmage", "Selesnya Guildmage", "Dryad Militant", "Goblin Electromancer",
		"Gaea's Avenger", "Elves of Deep Shadow",
		"S.N.O.T.", "Shapeshifter")
}

func TestEvaluate_UnknownNodePanics(t *testing.T) {
	cat := fixtureCatalog(t)

	assert.Panics(t, func() {
		Evaluate(&Query{Root: &FieldTest{Field: "bogus"}}, cat)
	})
}
