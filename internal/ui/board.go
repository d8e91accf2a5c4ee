// Package ui renders a kalaha board in the terminal.
package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kalaha/internal/domain/game"
)

// BoardView shows the opponent's side reversed on top, the player's side
// below, a status line and an input field for the pit number.
type BoardView struct {
	flex   *tview.Flex
	table  *tview.Table
	status *tview.TextView
	input  *tview.InputField

	cfg      game.BoardConfig
	onSelect func(pit int)
}

func NewBoardView(cfg game.BoardConfig, onSelect func(pit int)) *BoardView {
	v := &BoardView{
		table:    tview.NewTable(),
		status:   tview.NewTextView(),
		input:    tview.NewInputField(),
		cfg:      cfg,
		onSelect: onSelect,
	}

	v.table.SetBorders(true)
	v.table.SetBorder(true).SetTitle(" Kalaha ")

	v.status.SetDynamicColors(true)
	v.status.SetTextAlign(tview.AlignCenter)

	v.input.SetLabel(fmt.Sprintf("Pit (1-%d, q to quit): ", cfg.StoreIndex))
	v.input.SetFieldWidth(4)
	v.input.SetDoneFunc(v.submit)

	v.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 7, 0, false).
		AddItem(v.status, 2, 0, false).
		AddItem(v.input, 1, 0, true)

	return v
}

func (v *BoardView) Primitive() tview.Primitive {
	return v.flex
}

func (v *BoardView) Input() *tview.InputField {
	return v.input
}

// SetBoard redraws both sides. mine and theirs are full sides including the
// store.
func (v *BoardView) SetBoard(mine, theirs game.Side) {
	v.table.Clear()
	cols := v.cfg.StoreIndex

	v.table.SetCell(0, 0, tview.NewTableCell("").SetSelectable(false))
	for i := 0; i < cols; i++ {
		v.table.SetCell(0, i+1, tview.NewTableCell(strconv.Itoa(cols-i)).
			SetTextColor(tcell.ColorGray).SetAlign(tview.AlignCenter))
	}

	for i := 0; i < cols; i++ {
		v.table.SetCell(1, i+1, pitCell(stoneAt(theirs, cols-1-i), tcell.ColorLightCoral))
		v.table.SetCell(2, i+1, pitCell(stoneAt(mine, i), tcell.ColorLightGreen))
	}
	v.table.SetCell(1, 0, storeCell(stoneAt(theirs, v.cfg.StoreIndex), tcell.ColorLightCoral))
	v.table.SetCell(2, cols+1, storeCell(stoneAt(mine, v.cfg.StoreIndex), tcell.ColorLightGreen))

	for i := 0; i < cols; i++ {
		v.table.SetCell(3, i+1, tview.NewTableCell(strconv.Itoa(i+1)).
			SetTextColor(tcell.ColorGray).SetAlign(tview.AlignCenter))
	}
}

func (v *BoardView) SetStatus(format string, args ...any) {
	v.status.SetText(fmt.Sprintf(format, args...))
}

func (v *BoardView) submit(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	text := v.input.GetText()
	v.input.SetText("")

	pit, err := ParsePit(text, v.cfg)
	if err != nil {
		v.SetStatus("[red]%s", err)
		return
	}
	v.onSelect(pit)
}

// ParsePit converts the 1-based pit number typed by the player into a pit
// index.
func ParsePit(text string, cfg game.BoardConfig) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > cfg.StoreIndex {
		return 0, fmt.Errorf("enter a pit between 1 and %d", cfg.StoreIndex)
	}
	return n - 1, nil
}

func stoneAt(side game.Side, i int) int {
	if i < len(side) {
		return side[i]
	}
	return 0
}

func pitCell(stones int, color tcell.Color) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf(" %2d ", stones)).
		SetTextColor(color).
		SetAlign(tview.AlignCenter)
}

func storeCell(stones int, color tcell.Color) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("(%2d)", stones)).
		SetTextColor(color).
		SetAttributes(tcell.AttrBold).
		SetAlign(tview.AlignCenter)
}
