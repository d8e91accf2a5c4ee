package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalaha/internal/domain/game"
)

func TestParsePit(t *testing.T) {
	cfg := game.NewBoardConfig(7, 4)

	pit, err := ParsePit("1", cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, pit)

	pit, err = ParsePit("6", cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, pit)

	for _, text := range []string{"0", "7", "", "x"} {
		_, err = ParsePit(text, cfg)
		assert.Error(t, err, text)
	}
}

func TestBoardViewLayout(t *testing.T) {
	cfg := game.NewBoardConfig(7, 4)
	var selected []int
	v := NewBoardView(cfg, func(pit int) { selected = append(selected, pit) })

	v.SetBoard(game.Side{1, 2, 3, 4, 5, 6, 7}, game.Side{10, 11, 12, 13, 14, 15, 16})

	assert.Equal(t, " 15 ", v.table.GetCell(1, 1).Text)
	assert.Equal(t, " 10 ", v.table.GetCell(1, 6).Text)
	assert.Equal(t, "(16)", v.table.GetCell(1, 0).Text)
	assert.Equal(t, "  1 ", v.table.GetCell(2, 1).Text)
	assert.Equal(t, "( 7)", v.table.GetCell(2, 7).Text)

	v.input.SetText("3")
	v.submit(tcell.KeyEnter)
	v.input.SetText("9")
	v.submit(tcell.KeyEnter)
	assert.Equal(t, []int{2}, selected)
}
