package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/export"
	"github.com/piwi3910/MillPool/internal/logger"
	"github.com/piwi3910/MillPool/internal/model"
	"github.com/piwi3910/MillPool/internal/project"
)

// Deps holds what the station window needs from the command line.
type Deps struct {
	Backlog    *project.Backlog
	Config     model.AppConfig
	ConfigPath string
}

// App holds the station window state and UI references.
type App struct {
	window   fyne.Window
	backlog  *project.Backlog
	selector *engine.Selector
	now      func() time.Time

	// Current pool, recomputed on refresh
	pool model.Pool
	rows [][]string

	table   *widget.Table
	title   *widget.Label
	summary *widget.Label
	status  *widget.Label
}

// Run opens the station window and blocks until it is closed.
func Run(deps Deps) {
	application := app.NewWithID("com.piwi3910.millpool")
	application.Settings().SetTheme(NewStationTheme(deps.Config.Theme))

	window := application.NewWindow("MillPool Milling Station")
	a := NewApp(window, deps)
	a.SetupMenus()
	window.SetContent(a.Build())
	window.Resize(fyne.NewSize(900, 560))
	window.CenterOnScreen()
	a.Refresh()
	window.ShowAndRun()
}

// NewApp creates the station UI for a window.
func NewApp(window fyne.Window, deps Deps) *App {
	return &App{
		window:   window,
		backlog:  deps.Backlog,
		selector: engine.New(deps.Config.Pool),
		now:      model.Today,
	}
}

// SetupMenus creates the native menu bar.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PDF...", a.exportPDF),
		fyne.NewMenuItem("Export Labels...", a.exportLabels),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)
	poolMenu := fyne.NewMenu("Pool",
		fyne.NewMenuItem("Refresh", a.Refresh),
		fyne.NewMenuItem("Mark Pool Complete", a.confirmComplete),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, poolMenu))
}

// Build assembles the window content.
func (a *App) Build() fyne.CanvasObject {
	a.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.summary = widget.NewLabel("")
	a.status = widget.NewLabel("")

	a.table = widget.NewTable(
		func() (int, int) { return len(a.rows) + 1, len(poolColumns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(poolColumns[id.Col])
				return
			}
			row := a.rows[id.Row-1]
			label.TextStyle = fyne.TextStyle{Bold: row[len(row)-1] != ""}
			label.SetText(row[id.Col])
		},
	)
	for i, w := range poolColumnWidths {
		a.table.SetColumnWidth(i, w)
	}

	buttons := container.NewHBox(
		widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), a.Refresh),
		widget.NewButtonWithIcon("Mark Pool Complete", theme.ConfirmIcon(), a.confirmComplete),
		widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), a.exportPDF),
	)

	top := container.NewVBox(a.title, buttons)
	bottom := container.NewVBox(widget.NewSeparator(), a.summary, a.status)
	return container.NewBorder(top, bottom, nil, nil, a.table)
}

// Refresh recomputes the pool and redraws the table.
func (a *App) Refresh() {
	today := a.now()
	a.pool = a.backlog.CurrentPool(a.selector, today)
	a.rows = poolRows(a.pool, today, a.selector.Settings.UrgentDaysThreshold)

	title := "Milling pool " + today.Format("2006-01-02")
	if a.pool.Urgent {
		title += " (URGENT)"
	}
	a.title.SetText(title)
	a.summary.SetText(summaryText(a.pool, engine.Report(a.pool, a.selector.Settings.SheetArea())))
	a.table.Refresh()
}

func (a *App) confirmComplete() {
	if a.pool.Empty() {
		dialog.ShowInformation("Nothing to mill", "The backlog has no orders waiting for milling.", a.window)
		return
	}
	msg := fmt.Sprintf("Mark %d orders as milled?", len(a.pool.Orders))
	dialog.ShowConfirm("Mark Pool Complete", msg, func(ok bool) {
		if !ok {
			return
		}
		accepted, err := a.backlog.AcceptPool(a.selector, a.now())
		if err != nil {
			logger.L().Error("ui.accept_failed", "err", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.status.SetText(fmt.Sprintf("%d orders marked as milled", len(accepted.Orders)))
		a.Refresh()
	}, a.window)
}

func (a *App) exportPDF() {
	a.saveDocument(fmt.Sprintf("pool_%s.pdf", a.now().Format("2006-01-02")), func(path string) error {
		return export.ExportPDF(path, a.pool, a.selector.Settings, a.now())
	})
}

func (a *App) exportLabels() {
	a.saveDocument("labels.pdf", func(path string) error {
		return export.ExportLabels(path, a.pool)
	})
}

func (a *App) saveDocument(defaultName string, write func(path string) error) {
	if a.pool.Empty() {
		dialog.ShowInformation("No pool", "There is no pool to export.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}
