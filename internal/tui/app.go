package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/XII-A/Edit-KML-Files/internal/config"
	"github.com/XII-A/Edit-KML-Files/internal/pipeline"
)

type view int

const (
	viewWelcome view = iota
	viewDocument
	viewPolygons
	viewDetail
	viewEdit
	viewUpdate
	viewPreview
	viewProcessing
	viewResult
	viewPrompt
	viewError
	viewHelp
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	program  *tea.Program
	quitting bool
}

func NewApp() *App {
	cfg, _ := config.Load()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &App{
		view:  viewWelcome,
		state: newState(cfg),
	}
}

// SetProgram stores the running program so pipeline progress callbacks can
// send messages back into the update loop.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), textinput.Blink)
}

type documentLoadedMsg struct{ session *pipeline.Session }
type loadErrorMsg struct{ error }
type updateProgressMsg struct{ progress pipeline.Progress }
type updateDoneMsg struct{ summary *pipeline.Summary }
type previewDoneMsg struct{ entries []pipeline.PreviewEntry }
type previewErrorMsg struct{ error }
type editDoneMsg struct{ name string }
type editErrorMsg struct{ error }
type savedMsg struct{ path string }
type promptErrorMsg struct{ error }
type templateWrittenMsg struct{ path string }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.resize(msg.Width, msg.Height)

	case documentLoadedMsg:
		a.state.session = msg.session
		a.state.loadError = nil
		a.state.status = ""
		a.view = viewDocument
		// Remember the document for next launch. Best effort only.
		a.state.config.KMLPath = msg.session.Path()
		_ = a.state.config.Save()
		return a, nil

	case loadErrorMsg:
		a.state.loadError = msg.error
		return a, nil

	case updateProgressMsg:
		a.state.progress = &msg.progress
		return a, nil

	case updateDoneMsg:
		a.state.summary = msg.summary
		a.state.progress = nil
		a.view = viewResult
		if msg.summary.Success {
			a.state.config.WorkbookPath = strings.TrimSpace(a.state.form[fieldWorkbook].Value())
			_ = a.state.config.Save()
		}
		return a, nil

	case previewDoneMsg:
		a.state.preview = msg.entries
		a.view = viewPreview
		return a, nil

	case previewErrorMsg:
		a.state.err = msg.error
		a.view = viewError
		return a, nil

	case editDoneMsg:
		a.state.status = "Updated " + msg.name
		a.state.refreshPolygons()
		a.view = viewPolygons
		return a, nil

	case editErrorMsg:
		a.state.err = msg.error
		a.view = viewError
		return a, nil

	case savedMsg:
		a.state.status = "Saved to " + msg.path
		a.view = viewDocument
		return a, nil

	case templateWrittenMsg:
		a.state.status = "Template written to " + msg.path
		a.view = viewDocument
		return a, nil

	case promptErrorMsg:
		a.state.err = msg.error
		a.view = viewError
		return a, nil
	}

	// Route everything else to whichever input has focus.
	switch a.view {
	case viewWelcome:
		var cmd tea.Cmd
		a.state.kmlInput, cmd = a.state.kmlInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewPrompt:
		var cmd tea.Cmd
		a.state.pathInput, cmd = a.state.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewUpdate:
		if a.state.formFocus < len(a.state.form) {
			var cmd tea.Cmd
			a.state.form[a.state.formFocus], cmd = a.state.form[a.state.formFocus].Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewEdit:
		if a.state.editFocus < len(a.state.editForm) {
			var cmd tea.Cmd
			a.state.editForm[a.state.editFocus], cmd = a.state.editForm[a.state.editFocus].Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewDetail:
		var cmd tea.Cmd
		a.state.detailBody, cmd = a.state.detailBody.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return a.handleBack()

	case key.Matches(msg, keys.Enter):
		switch a.view {
		case viewWelcome:
			return a.loadDocument()
		case viewPrompt:
			return a.runPrompt()
		case viewPolygons:
			a.openDetail()
			return nil
		}
	}

	switch a.view {
	case viewDocument:
		return a.handleDocumentKey(msg)
	case viewPolygons:
		a.handleListKey(msg)
	case viewDetail:
		if msg.String() == "e" {
			a.openEdit()
		}
	case viewEdit:
		return a.handleEditKey(msg)
	case viewUpdate:
		return a.handleFormKey(msg)
	case viewPreview:
		if key.Matches(msg, keys.Enter) {
			a.view = viewProcessing
			return a.runUpdate()
		}
	case viewResult:
		if msg.String() == "s" {
			a.openPrompt(promptSave)
		}
	}

	return nil
}

// handleBack walks one level up the view hierarchy; from the top it quits.
func (a *App) handleBack() tea.Cmd {
	switch a.view {
	case viewPolygons, viewUpdate, viewHelp, viewError, viewPrompt, viewResult:
		if a.state.session != nil {
			a.view = viewDocument
		} else {
			a.view = viewWelcome
		}
	case viewDetail:
		a.view = viewPolygons
	case viewEdit:
		a.view = viewDetail
	case viewPreview:
		a.view = viewUpdate
	case viewProcessing:
		// No cancellation semantics: the run completes or fails on its own.
	default:
		a.quitting = true
		return tea.Quit
	}
	return nil
}

func (a *App) handleDocumentKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "p":
		a.state.refreshPolygons()
		a.view = viewPolygons
	case "u":
		a.state.focusForm(0)
		a.view = viewUpdate
		return textinput.Blink
	case "t":
		a.openPrompt(promptTemplate)
		return textinput.Blink
	case "s":
		a.openPrompt(promptSave)
		return textinput.Blink
	case "?":
		a.view = viewHelp
	}
	return nil
}

func (a *App) handleListKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.state.cursor > 0 {
			a.state.cursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.cursor < len(a.state.polygons)-1 {
			a.state.cursor++
		}
	}
}

func (a *App) openDetail() {
	if len(a.state.polygons) == 0 {
		return
	}
	p := a.state.polygons[a.state.cursor]
	info, ok := a.state.session.Info(p.Name)
	if !ok {
		return
	}
	a.state.detail = info
	a.state.detailBody.SetContent(info.Description)
	a.state.detailBody.GotoTop()
	a.view = viewDetail
}

func (a *App) openEdit() {
	a.state.editForm[editFieldText].SetValue("")
	a.state.editForm[editFieldImages].SetValue("")
	a.state.focusEdit(0)
	a.view = viewEdit
}

func (a *App) openPrompt(purpose promptPurpose) {
	a.state.promptPurpose = purpose
	a.state.pathInput.Reset()
	switch purpose {
	case promptSave:
		a.state.pathInput.Placeholder = "Save path (empty overwrites " + a.state.session.Path() + ")"
	case promptTemplate:
		a.state.pathInput.Placeholder = "Template path, e.g. survey_template.xlsx"
	}
	a.state.pathInput.Focus()
	a.view = viewPrompt
}

func (a *App) loadDocument() tea.Cmd {
	path := strings.TrimSpace(a.state.kmlInput.Value())
	if path == "" {
		path = a.state.config.KMLPath
	}
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		session, err := pipeline.NewSession(path)
		if err != nil {
			return loadErrorMsg{err}
		}
		return documentLoadedMsg{session}
	}
}

func (a *App) runUpdate() tea.Cmd {
	session := a.state.session
	job := a.state.jobFromForm()
	a.state.progress = nil
	return func() tea.Msg {
		session.SetProgressCallback(func(p pipeline.Progress) {
			if a.program != nil {
				a.program.Send(updateProgressMsg{p})
			}
		})
		defer session.SetProgressCallback(nil)
		return updateDoneMsg{session.UpdateFromWorkbook(job)}
	}
}

func (a *App) runPreview() tea.Cmd {
	session := a.state.session
	job := a.state.jobFromForm()
	return func() tea.Msg {
		entries, err := session.Preview(job)
		if err != nil {
			return previewErrorMsg{err}
		}
		return previewDoneMsg{entries}
	}
}

func (a *App) runPrompt() tea.Cmd {
	session := a.state.session
	path := strings.TrimSpace(a.state.pathInput.Value())
	purpose := a.state.promptPurpose

	switch purpose {
	case promptSave:
		return func() tea.Msg {
			if err := session.Save(path); err != nil {
				return promptErrorMsg{err}
			}
			if path == "" {
				path = session.Path()
			}
			return savedMsg{path}
		}
	case promptTemplate:
		if path == "" {
			return nil
		}
		job := a.state.jobFromForm()
		return func() tea.Msg {
			if err := session.WriteTemplate(path, job); err != nil {
				return promptErrorMsg{err}
			}
			return templateWrittenMsg{path}
		}
	}
	return nil
}

func (a *App) runEdit() tea.Cmd {
	session := a.state.session
	name := a.state.detail.Name
	text := strings.TrimSpace(a.state.editForm[editFieldText].Value())
	images := splitList(a.state.editForm[editFieldImages].Value())
	return func() tea.Msg {
		if err := session.UpdatePolygon(name, text, images, true); err != nil {
			return editErrorMsg{err}
		}
		return editDoneMsg{name}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewWelcome:
		return a.renderWelcome()
	case viewDocument:
		return a.renderDocument()
	case viewPolygons:
		return a.renderPolygons()
	case viewDetail:
		return a.renderDetail()
	case viewEdit:
		return a.renderEdit()
	case viewUpdate:
		return a.renderUpdate()
	case viewPreview:
		return a.renderPreview()
	case viewProcessing:
		return a.renderProcessing()
	case viewResult:
		return a.renderResult()
	case viewPrompt:
		return a.renderPrompt()
	case viewError:
		return a.renderError()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderWelcome()
	}
}
