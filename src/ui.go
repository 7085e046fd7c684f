package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/plusk0/editable-table/grid"
)

var (
	dirtyColor   = color.NRGBA{R: 254, G: 249, B: 195, A: 255} // yellow
	invalidColor = color.NRGBA{R: 254, G: 226, B: 226, A: 255} // red
	errTextColor = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	evenRowColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	oddRowColor  = color.NRGBA{R: 245, G: 245, B: 255, A: 200}
	headerColor  = color.NRGBA{R: 240, G: 240, B: 240, A: 20}
)

const (
	minColWidth  = 40.0
	headerHeight = 30.0
	rowHeight    = 60.0
	errTextSize  = 11
)

// colResizer is a small draggable widget used to resize columns.
type colResizer struct {
	widget.BaseWidget
	onDrag func(dx float32)
	rect   *canvas.Rectangle
}

func newColResizer(onDrag func(dx float32)) *colResizer {
	r := &colResizer{onDrag: onDrag}
	r.ExtendBaseWidget(r)
	return r
}

func (r *colResizer) CreateRenderer() fyne.WidgetRenderer {
	if r.rect == nil {
		r.rect = canvas.NewRectangle(color.NRGBA{R: 200, G: 200, B: 200, A: 200})
	}
	return &resizerRenderer{rect: r.rect, objs: []fyne.CanvasObject{r.rect}}
}

func (r *colResizer) Dragged(e *fyne.DragEvent) {
	if r.onDrag != nil {
		r.onDrag(e.Dragged.DX)
	}
}

func (r *colResizer) DragEnd() {}

type resizerRenderer struct {
	rect *canvas.Rectangle
	objs []fyne.CanvasObject
}

func (rr *resizerRenderer) MinSize() fyne.Size           { return fyne.NewSize(6, 24) }
func (rr *resizerRenderer) Layout(size fyne.Size)        { rr.rect.Resize(size) }
func (rr *resizerRenderer) Refresh()                     { rr.rect.Refresh() }
func (rr *resizerRenderer) Objects() []fyne.CanvasObject { return rr.objs }
func (rr *resizerRenderer) Destroy()                     {}

// clickableOverlay is a transparent canvas object that captures both left and right clicks
type clickableOverlay struct {
	canvas.Rectangle
	onLeftClick  func()
	onRightClick func()
}

// Tapped implements the fyne.Tappable interface for left clicks
func (c *clickableOverlay) Tapped(*fyne.PointEvent) {
	if c.onLeftClick != nil {
		c.onLeftClick()
	}
}

// TappedSecondary implements the fyne.TappableSecondary interface for right clicks
func (c *clickableOverlay) TappedSecondary(*fyne.PointEvent) {
	if c.onRightClick != nil {
		c.onRightClick()
	}
}

func newClickableOverlay(onLeft func(), onRight func()) *clickableOverlay {
	overlay := &clickableOverlay{
		onLeftClick:  onLeft,
		onRightClick: onRight,
	}
	// fully transparent so the header label stays visible
	overlay.FillColor = color.Transparent
	overlay.StrokeColor = color.Transparent
	return overlay
}

type cellID struct {
	row   string
	field grid.Field
}

// cellView is one editable cell: an entry over a background that shows
// dirty/invalid state, with the validation message under it.
type cellView struct {
	entry   *widget.Entry
	bg      *canvas.Rectangle
	errText *canvas.Text
	base    color.Color
}

// tableView renders a grid.Grid and forwards user input to it.
type tableView struct {
	win       fyne.Window
	g         *grid.Grid
	log       *slog.Logger
	colWidths []float32

	rowsContainer *fyne.Container
	addBtn        *widget.Button
	cancelBtn     *widget.Button
	saveBtn       *widget.Button
	status        *widget.Label
	cells         map[cellID]*cellView
}

func newTableView(win fyne.Window, g *grid.Grid, colWidth float32, log *slog.Logger) *tableView {
	tv := &tableView{
		win:           win,
		g:             g,
		log:           log,
		colWidths:     make([]float32, len(grid.Fields)),
		rowsContainer: container.NewVBox(),
		status:        widget.NewLabel(""),
	}
	for i := range tv.colWidths {
		tv.colWidths[i] = colWidth
	}
	tv.addBtn = widget.NewButton("Add Row", tv.onAdd)
	tv.cancelBtn = widget.NewButton("Cancel", tv.onCancel)
	tv.saveBtn = widget.NewButton("Save", tv.onSave)
	tv.saveBtn.Importance = widget.HighImportance
	tv.populate()
	return tv
}

// createUI builds the window content for g.
func createUI(win fyne.Window, g *grid.Grid, cfg Config, log *slog.Logger) fyne.CanvasObject {
	return newTableView(win, g, cfg.ColumnWidth, log).content()
}

func (tv *tableView) content() fyne.CanvasObject {
	toolbar := container.NewHBox(tv.status, layout.NewSpacer(), tv.addBtn, widget.NewSeparator(), tv.cancelBtn, tv.saveBtn)

	// scrollable area should allow both axes
	scroll := container.NewScroll(tv.rowsContainer)
	scroll.SetMinSize(fyne.NewSize(600, 300))

	return container.NewBorder(toolbar, nil, nil, nil, scroll)
}

func (tv *tableView) onAdd() {
	id, added := tv.g.AddRow()
	if !added {
		return
	}
	tv.populate()
	if c, ok := tv.cells[cellID{row: id, field: grid.Fields[0]}]; ok {
		tv.win.Canvas().Focus(c.entry)
	}
}

func (tv *tableView) onCancel() {
	tv.g.Cancel()
	tv.populate()
}

func (tv *tableView) onSave() {
	saved, err := tv.g.Save()
	if err != nil {
		tv.log.Warn("save failed", "error", err)
		dialog.ShowError(err, tv.win)
		tv.refreshButtons()
		return
	}
	tv.log.Debug("saved rows", "count", len(saved))
	tv.populate()
}

func (tv *tableView) onCellChanged(id cellID, value string) {
	if err := tv.g.Edit(id.row, id.field, value); err != nil {
		tv.log.Error("edit failed", "row", id.row, "field", id.field, "error", err)
		return
	}
	tv.refreshCell(id)
	tv.refreshButtons()
}

func (tv *tableView) refreshCell(id cellID) {
	c, ok := tv.cells[id]
	if !ok {
		return
	}
	msg := tv.g.CellError(id.row, id.field)
	switch {
	case tv.g.IsCellDirty(id.row, id.field):
		c.bg.FillColor = dirtyColor
	case msg != "":
		c.bg.FillColor = invalidColor
	default:
		c.bg.FillColor = c.base
	}
	c.bg.Refresh()

	c.errText.Text = msg
	if msg == "" {
		c.errText.Hide()
	} else {
		c.errText.Show()
	}
	c.errText.Refresh()
}

func (tv *tableView) refreshButtons() {
	if tv.g.CanSave() {
		tv.saveBtn.Enable()
	} else {
		tv.saveBtn.Disable()
	}
	if tv.g.CanCancel() {
		tv.cancelBtn.Enable()
	} else {
		tv.cancelBtn.Disable()
	}
	if _, pending := tv.g.Pending(); pending {
		tv.addBtn.Disable()
	} else {
		tv.addBtn.Enable()
	}

	rows := tv.g.Rows()
	text := fmt.Sprintf("%d rows, %s", len(rows), tv.g.State())
	if n := len(tv.g.Errors()); n > 0 {
		text += fmt.Sprintf(", %d invalid", n)
	}
	tv.status.SetText(text)
}

func (tv *tableView) headerText(f grid.Field) string {
	k, ok := tv.g.SortKey()
	if !ok || k.Field != f {
		return f.Label()
	}
	if k.Direction == grid.Descending {
		return f.Label() + " ▼"
	}
	return f.Label() + " ▲"
}

// populate rebuilds header + rows so header and cells use the same widths.
func (tv *tableView) populate() {
	tv.rowsContainer.Objects = nil
	tv.cells = make(map[cellID]*cellView)

	headerRow := container.NewHBox()
	for ci, f := range grid.Fields {
		label := widget.NewLabel(tv.headerText(f))
		label.Alignment = fyne.TextAlignLeading

		field := f
		overlay := newClickableOverlay(func() {
			if _, err := tv.g.Sort(field); err != nil {
				tv.log.Error("sort failed", "field", field, "error", err)
				return
			}
			tv.populate()
		}, func() {
			tv.g.ClearSort()
			tv.populate()
		})
		cell := container.NewStack(canvas.NewRectangle(headerColor), label, overlay)

		widx := ci
		res := newColResizer(func(dx float32) {
			newW := float32(math.Max(minColWidth, float64(tv.colWidths[widx]+dx)))
			if newW != tv.colWidths[widx] {
				tv.colWidths[widx] = newW
				tv.populate()
			}
		})

		cellWrap := container.New(layout.NewGridWrapLayout(fyne.NewSize(tv.colWidths[widx], headerHeight)), cell)
		headerRow.Add(container.NewHBox(cellWrap, res))
	}
	tv.rowsContainer.Add(headerRow)

	for ri, r := range tv.g.Rows() {
		// alternating row color
		var base color.Color = evenRowColor
		if ri%2 == 1 {
			base = oddRowColor
		}

		rowBox := container.NewHBox()
		for ci, f := range grid.Fields {
			id := cellID{row: r.ID, field: f}
			c := &cellView{
				entry:   widget.NewEntry(),
				bg:      canvas.NewRectangle(base),
				errText: canvas.NewText("", errTextColor),
				base:    base,
			}
			c.errText.TextSize = errTextSize
			c.entry.SetText(r.Get(f))
			if r.Pending {
				c.entry.SetPlaceHolder(f.Label())
			}
			c.entry.OnChanged = func(s string) { tv.onCellChanged(id, s) }
			tv.cells[id] = c
			tv.refreshCell(id)

			body := container.NewVBox(c.entry, c.errText)
			// same spacing as the header, which carries a resizer per column
			spacer := canvas.NewRectangle(color.Transparent)
			spacer.SetMinSize(fyne.NewSize(6, 1))
			cellWrap := container.New(layout.NewGridWrapLayout(fyne.NewSize(tv.colWidths[ci], rowHeight)), container.NewStack(c.bg, body))
			rowBox.Add(container.NewHBox(cellWrap, spacer))
		}
		tv.rowsContainer.Add(rowBox)
	}

	tv.rowsContainer.Refresh()
	tv.refreshButtons()
}
