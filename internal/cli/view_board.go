package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type boardMode int

const (
	modeBoard boardMode = iota
	modeSearch
	modeForm
	modeConfirm
	modeLog
)

// boardLoadedMsg carries a fresh snapshot of the filtered board.
type boardLoadedMsg struct {
	columns  []formatter.BoardColumn
	progress int
}

// boardActionMsg reports the outcome of a mutation; the board reloads after it.
type boardActionMsg struct {
	status string
	err    error
}

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Search    key.Binding
	Priority  key.Binding
	Sort      key.Binding
	Log       key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveLeft:  key.NewBinding(key.WithKeys("<", "shift+left"), key.WithHelp("<", "move left")),
		MoveRight: key.NewBinding(key.WithKeys(">", "shift+right"), key.WithHelp(">", "move right")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Priority:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by due")),
		Log:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "activity")),
		Reset:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveLeft, k.MoveRight, k.Add, k.Edit, k.Delete, k.Search, k.Priority, k.Sort, k.Log, k.Quit}
}

// priorityCycle is the order the priority filter steps through.
var priorityCycle = append([]domain.Priority{domain.PriorityAll}, domain.Priorities...)

// boardModel is the interactive three-column board.
type boardModel struct {
	app   *App
	ctx   context.Context
	keys  boardKeyMap
	help  help.Model
	email string

	columns  []formatter.BoardColumn
	progress int
	focus    int
	cursor   []int

	search   textinput.Model
	priority domain.Priority
	sortDue  bool

	mode      boardMode
	form      *huh.Form
	formDone  func() tea.Cmd
	confirm   string
	onConfirm func() tea.Cmd

	status string
	err    error
	width  int
}

func newBoardModel(ctx context.Context, app *App, filters boardFilterFlags) *boardModel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search titles"
	search.SetValue(filters.search)

	prio := parsePriority(filters.priority)
	if prio == "" {
		prio = domain.PriorityAll
	}

	return &boardModel{
		app:      app,
		ctx:      ctx,
		email:    app.Auth.CurrentEmail(ctx),
		keys:     defaultBoardKeys(),
		help:     help.New(),
		cursor:   make([]int, len(domain.Columns)),
		search:   search,
		priority: prio,
		sortDue:  filters.sortDue,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) filter(col domain.Column) service.TaskFilter {
	return service.TaskFilter{
		Column:    col,
		Search:    m.search.Value(),
		Priority:  m.priority,
		SortByDue: m.sortDue,
	}
}

func (m *boardModel) load() tea.Cmd {
	board := m.app.Board
	filters := make([]service.TaskFilter, len(domain.Columns))
	for i, col := range domain.Columns {
		filters[i] = m.filter(col)
	}
	return func() tea.Msg {
		counts := board.ColumnCounts()
		cols := make([]formatter.BoardColumn, len(filters))
		for i, f := range filters {
			cols[i] = formatter.BoardColumn{Column: f.Column, Count: counts[f.Column], Tasks: board.ListTasks(f)}
		}
		return boardLoadedMsg{columns: cols, progress: board.Progress()}
	}
}

// selected returns the task under the cursor in the focused column.
func (m *boardModel) selected() (domain.Task, bool) {
	if m.focus >= len(m.columns) {
		return domain.Task{}, false
	}
	tasks := m.columns[m.focus].Tasks
	c := m.cursor[m.focus]
	if c < 0 || c >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[c], true
}

func (m *boardModel) clampCursors() {
	for i, col := range m.columns {
		m.cursor[i] = max(0, min(m.cursor[i], len(col.Tasks)-1))
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.columns = msg.columns
		m.progress = msg.progress
		m.clampCursors()
		return m, nil

	case boardActionMsg:
		m.status, m.err = msg.status, msg.err
		return m, m.load()
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeSearch:
		return m.updateSearch(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	case modeLog:
		if km, ok := msg.(tea.KeyMsg); ok {
			if key.Matches(km, m.keys.Quit) && km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.mode = modeBoard
		}
		return m, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status, m.err = "", nil

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Left):
		m.focus = max(m.focus-1, 0)
	case key.Matches(km, m.keys.Right):
		m.focus = min(m.focus+1, len(domain.Columns)-1)
	case key.Matches(km, m.keys.Up):
		m.cursor[m.focus] = max(m.cursor[m.focus]-1, 0)
	case key.Matches(km, m.keys.Down):
		if m.focus < len(m.columns) {
			m.cursor[m.focus] = min(m.cursor[m.focus]+1, max(len(m.columns[m.focus].Tasks)-1, 0))
		}
	case key.Matches(km, m.keys.MoveLeft):
		return m, m.moveSelected(-1)
	case key.Matches(km, m.keys.MoveRight):
		return m, m.moveSelected(1)
	case key.Matches(km, m.keys.Add):
		return m, m.openAddForm()
	case key.Matches(km, m.keys.Edit):
		return m, m.openEditForm()
	case key.Matches(km, m.keys.Delete):
		m.askDelete()
	case key.Matches(km, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(km, m.keys.Priority):
		i := slices.Index(priorityCycle, m.priority)
		m.priority = priorityCycle[(i+1)%len(priorityCycle)]
		return m, m.load()
	case key.Matches(km, m.keys.Sort):
		m.sortDue = !m.sortDue
		return m, m.load()
	case key.Matches(km, m.keys.Log):
		m.mode = modeLog
	case key.Matches(km, m.keys.Reset):
		m.askReset()
	}
	return m, nil
}

func (m *boardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			m.search.Blur()
			m.mode = modeBoard
			return m, m.load()
		case tea.KeyEnter:
			m.search.Blur()
			m.mode = modeBoard
			return m, nil
		}
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.load())
	}
	return m, cmd
}

func (m *boardModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.mode = modeBoard
	m.confirm = ""
	if km.String() == "y" || km.String() == "Y" {
		next := m.onConfirm
		m.onConfirm = nil
		return m, next()
	}
	m.status = "Cancelled"
	return m, nil
}

func (m *boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		done := m.formDone
		m.closeForm()
		return m, done()
	case huh.StateAborted:
		m.closeForm()
		m.status = "Cancelled"
		return m, nil
	}
	return m, cmd
}

func (m *boardModel) closeForm() {
	m.mode = modeBoard
	m.form = nil
	m.formDone = nil
}

func (m *boardModel) openForm(form *huh.Form, done func() tea.Cmd) tea.Cmd {
	m.mode = modeForm
	m.form = form
	m.formDone = done
	return form.Init()
}

func (m *boardModel) openAddForm() tea.Cmd {
	fields := &taskFields{Column: string(domain.Columns[m.focus])}
	return m.openForm(taskForm("New task", fields), func() tea.Cmd {
		return m.action(func(ctx context.Context) (string, error) {
			task, err := m.app.Board.CreateTask(ctx, fields.input())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Task created ✓ %s", task.Title), nil
		})
	})
}

func (m *boardModel) openEditForm() tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	fields := taskFieldsFrom(&task)
	return m.openForm(taskForm("Edit task", &fields), func() tea.Cmd {
		return m.action(func(ctx context.Context) (string, error) {
			if _, err := m.app.Board.UpdateTask(ctx, task.ID, fields.patch()); err != nil {
				return "", err
			}
			return "Task updated ✓", nil
		})
	})
}

func (m *boardModel) moveSelected(step int) tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	target := task.Column.Index() + step
	if target < 0 || target >= len(domain.Columns) {
		return nil
	}
	to := domain.Columns[target]
	return m.action(func(ctx context.Context) (string, error) {
		if _, _, err := m.app.Board.MoveTask(ctx, task.ID, to); err != nil {
			return "", err
		}
		return "Moved to " + string(to), nil
	})
}

func (m *boardModel) askDelete() {
	task, ok := m.selected()
	if !ok {
		return
	}
	m.mode = modeConfirm
	m.confirm = fmt.Sprintf("Delete %q? (y/n)", task.Title)
	m.onConfirm = func() tea.Cmd {
		return m.action(func(ctx context.Context) (string, error) {
			if _, err := m.app.Board.DeleteTask(ctx, task.ID); err != nil {
				return "", err
			}
			return "Task deleted", nil
		})
	}
}

func (m *boardModel) askReset() {
	m.mode = modeConfirm
	m.confirm = "Reset the board to the default tasks and clear the activity log? (y/n)"
	m.onConfirm = func() tea.Cmd {
		return m.action(func(ctx context.Context) (string, error) {
			if err := m.app.Board.ResetToDefaults(ctx); err != nil {
				return "", err
			}
			return "Board reset", nil
		})
	}
}

// action runs a board mutation as a command.
func (m *boardModel) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		status, err := fn(ctx)
		return boardActionMsg{status: status, err: err}
	}
}

func (m *boardModel) View() string {
	switch m.mode {
	case modeForm:
		return m.form.View()
	case modeLog:
		var entries []domain.LogEntry
		for e := range m.app.Activity.List() {
			entries = append(entries, e)
		}
		return formatter.RenderBox("Activity log", formatter.FormatLog(entries, m.app.now())) +
			"\n" + formatter.Dim("any key to return")
	}

	var b strings.Builder
	if m.email != "" {
		b.WriteString(formatter.Dim("Signed in as ") + formatter.Bold(m.email) + "  ")
	}
	b.WriteString(formatter.RenderProgress(m.progress, 20) + formatter.Dim(" done") + "\n")
	b.WriteString(m.filterLine() + "\n\n")

	now := m.app.now()
	rendered := make([]string, len(m.columns))
	for i, col := range m.columns {
		sel := -1
		if i == m.focus {
			sel = m.cursor[i]
		}
		rendered[i] = formatter.FormatColumn(col, now, sel)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	switch {
	case m.mode == modeConfirm:
		b.WriteString(formatter.StyleYellow.Render(m.confirm))
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(formatter.StyleGreen.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *boardModel) filterLine() string {
	parts := []string{}
	if m.mode == modeSearch || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}
	parts = append(parts, formatter.Dim("priority: ")+string(m.priority))
	if m.sortDue {
		parts = append(parts, formatter.Dim("sorted by due date"))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
