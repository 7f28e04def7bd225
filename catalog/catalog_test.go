package catalog

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/minaorangina/doomlings/deck"
	utils "github.com/minaorangina/doomlings/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	t.Log("Then the embedded tables are complete")
	utils.AssertEqual(t, c.BirthOfLife.Name, "The Birth of Life")
	assert.GreaterOrEqual(t, len(c.Ages), 9)
	assert.GreaterOrEqual(t, len(c.Catastrophes), 3)
	assert.NotEmpty(t, c.Traits)

	for _, a := range c.Catastrophes {
		assert.True(t, a.IsCatastrophe(), a.Name)
	}

	t.Log("And every effect name is known to the engine")
	utils.AssertDeepEqual(t, c.Validate(nil), []string{})
}

func TestCatalogLookups(t *testing.T) {
	c := MustDefault()

	heroic, ok := c.Trait("Heroic")
	require.True(t, ok)
	assert.True(t, heroic.Dominant)
	utils.AssertEqual(t, heroic.Face, deck.Fixed(7))
	require.Len(t, heroic.PlayConditions, 1)
	utils.AssertEqual(t, heroic.PlayConditions[0].Params.NumTraits, 3)

	fortunate, ok := c.Trait("Fortunate")
	require.True(t, ok)
	utils.AssertEqual(t, fortunate.Face, deck.Variable())

	tentacles, _ := c.Trait("Tentacles")
	utils.AssertEqual(t, tentacles.CopyCount(), 2)

	glacial, ok := c.Age("Glacial Drift")
	require.True(t, ok)
	utils.AssertEqual(t, glacial.TurnEffects[0].Params.RestrictedValue, "3")

	_, ok = c.Trait("Not A Trait")
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	t.Run("normalises colors", func(t *testing.T) {
		src := `
birth_of_life: {type: age, name: Birth}
traits:
  - {name: Odd, face_value: 1, color: blue_GREEN}
  - {name: Plain, face_value: 2}
`
		c, err := Parse([]byte(src))
		require.NoError(t, err)
		utils.AssertEqual(t, c.Traits[0].Color, deck.Color("Blue_Green"))
		utils.AssertEqual(t, c.Traits[1].Color, deck.Colorless)
	})

	t.Run("rejects unknown colors", func(t *testing.T) {
		src := `
birth_of_life: {type: age, name: Birth}
traits:
  - {name: Odd, face_value: 1, color: Orange}
`
		_, err := Parse([]byte(src))
		assert.True(t, errors.Is(err, ErrInvalidCatalog))
	})

	t.Run("rejects duplicate traits", func(t *testing.T) {
		src := `
birth_of_life: {type: age, name: Birth}
traits:
  - {name: Twin, face_value: 1, color: Red}
  - {name: Twin, face_value: 2, color: Red}
`
		_, err := Parse([]byte(src))
		utils.AssertErrored(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("traits: ["))
		assert.True(t, errors.Is(err, ErrInvalidCatalog))
	})
}

func TestValidateLogsUnknownNames(t *testing.T) {
	src := `
birth_of_life: {type: age, name: Birth}
traits:
  - name: Future
    face_value: 1
    color: Red
    actions: [{name: time_travel}]
    bonus: {name: bonus_everything}
`
	c, err := Parse([]byte(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	problems := c.Validate(log.New(&buf, "", 0))

	utils.AssertEqual(t, len(problems), 2)
	assert.Contains(t, buf.String(), "time_travel")
	assert.Contains(t, buf.String(), "bonus_everything")
}
