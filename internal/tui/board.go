// Package tui implements the interactive taskwise board.
package tui

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskwise-ai/taskwise/internal/board"
	"github.com/taskwise-ai/taskwise/internal/config"
	"github.com/taskwise-ai/taskwise/internal/focus"
	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/store"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewDetail
	viewCalendar
	viewConfirmDelete
)

const (
	keyEsc = "esc"

	boardChrome  = 2 // blank line + status bar below the column area
	errorChrome  = 1 // extra line when error toast is displayed
	tickInterval = time.Minute // re-evaluates the focus pick across midnight
)

// Board is the top-level bubbletea model.
type Board struct {
	cfg       *config.Config
	store     *store.Store
	selector  *focus.Selector
	focusID   string
	columns   []column
	total     int
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error
	now       func() time.Time

	// Calendar view.
	calYear  int
	calMonth time.Month

	// Delete confirmation.
	deleteID    string
	deleteTitle string
}

// column groups the tasks of one kanban column.
type column struct {
	key       string
	tasks     []*task.Task
	scrollOff int // first visible row index
}

// NewBoard creates a Board model backed by the given state storage.
func NewBoard(cfg *config.Config, st *storage.Storage) *Board {
	b := &Board{
		cfg:      cfg,
		store:    store.Open(st),
		selector: focus.New(st),
		now:      time.Now,
	}
	now := b.now()
	b.calYear, b.calMonth = now.Year(), now.Month()
	b.reload()
	return b
}

// SetNow overrides the clock (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
	b.store.SetNow(fn)
}

// WatchPath returns the directory the file watcher should observe.
func (b *Board) WatchPath() string {
	return b.cfg.StatePath()
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil
	case ReloadMsg:
		b.reload()
		return b, nil
	case TickMsg:
		b.reload()
		return b, tickCmd()
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewDetail:
		return b.viewTaskDetail()
	case viewCalendar:
		return b.viewCalendarMonth()
	case viewConfirmDelete:
		return b.viewDeleteConfirm()
	default:
		return b.viewColumns()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewDetail:
		return b.handleDetailKey(msg)
	case viewCalendar:
		return b.handleCalendarKey(msg)
	case viewConfirmDelete:
		return b.handleDeleteKey(msg)
	}
	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "h", "left":
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case "l", "right":
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case "j", "down":
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case "k", "up":
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case " ", "x":
		b.toggleSelected()
	case "enter":
		if b.selectedTask() != nil {
			b.view = viewDetail
		}
	case "c":
		b.view = viewCalendar
	case "r":
		b.focusID = b.selector.Reroll(b.store.Tasks())
		b.reload()
	case "d", "D":
		if t := b.selectedTask(); t != nil {
			b.deleteID = t.ID
			b.deleteTitle = t.Title
			b.view = viewConfirmDelete
		}
	}
	return b, nil
}

func (b *Board) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, "enter":
		b.view = viewBoard
	case " ", "x":
		b.toggleSelected()
		b.view = viewBoard
	}
	return b, nil
}

func (b *Board) handleCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, "c":
		b.view = viewBoard
	case "[", "h", "left":
		b.calMonth--
		if b.calMonth < time.January {
			b.calMonth = time.December
			b.calYear--
		}
	case "]", "l", "right":
		b.calMonth++
		if b.calMonth > time.December {
			b.calMonth = time.January
			b.calYear++
		}
	case "t":
		now := b.now()
		b.calYear, b.calMonth = now.Year(), now.Month()
	}
	return b, nil
}

func (b *Board) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := b.store.Delete(b.deleteID); err != nil {
			b.err = fmt.Errorf("deleting task: %w", err)
		}
		b.view = viewBoard
		b.reload()
	case "n", "N", keyEsc, "q":
		b.view = viewBoard
	}
	return b, nil
}

// toggleSelected flips the selected task's completion. The focus pick is
// re-evaluated right after: completing the focus task picks a successor.
func (b *Board) toggleSelected() {
	t := b.selectedTask()
	if t == nil {
		return
	}
	if err := b.store.ToggleCompletion(t.ID); err != nil {
		b.err = fmt.Errorf("updating task: %w", err)
		return
	}
	b.reload()
}

// reload re-reads the snapshot and rebuilds the kanban columns.
func (b *Board) reload() {
	b.store.Load()
	b.err = nil

	tasks := b.store.Tasks()
	b.total = len(tasks)
	b.focusID = b.selector.Pick(tasks)

	cols := board.Kanban(tasks, b.focusID)
	prev := b.columns
	b.columns = make([]column, len(cols))
	for i, c := range cols {
		b.columns[i] = column{key: c.Key, tasks: c.Tasks}
		if i < len(prev) && prev[i].key == c.Key {
			b.columns[i].scrollOff = prev[i].scrollOff
		}
	}
	b.clampRow()
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.tasks) {
		return col.tasks[b.activeRow]
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.tasks) {
		b.activeRow = len(col.tasks) - 1
	}
	b.ensureVisible()
}

func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns how many cards fit, accounting for the
// scroll indicator lines that consume vertical space.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	avail := budget - 1 // column header
	if col.scrollOff > 0 {
		avail--
	}

	n := b.fitCardsInHeight(col, avail, width)
	if col.scrollOff+n < len(col.tasks) {
		n = b.fitCardsInHeight(col, avail-1, width)
		if n < 1 {
			n = 1
		}
	}
	return n
}

func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	w := b.columnWidth()

	for range len(col.tasks) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.tasks) == 0 || avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.tasks); i++ {
		cardLines := b.cardHeight(col.tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}
	if count < 1 {
		return 1
	}
	return count
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}

// TickMsg fires periodically so the focus pick rolls over at midnight.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	focusCardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	focusMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	vibeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Italic(true)

	tagColorPalette = []lipgloss.Color{"33", "36", "35", "32", "91", "34", "93", "96"}

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// tagStyle hashes the tag name into the palette. Same tag, same color.
func tagStyle(tag string) lipgloss.Style {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	color := tagColorPalette[h.Sum32()%uint32(len(tagColorPalette))]
	return lipgloss.NewStyle().Foreground(color)
}

// --- View rendering ---

func (b *Board) viewColumns() string {
	colWidth := b.columnWidth()
	renderedCols := make([]string, len(b.columns))
	for i, col := range b.columns {
		renderedCols[i] = b.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// Clamp from the bottom at very small terminal sizes, pad otherwise.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", b.renderStatusBar())
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	w := b.width / len(b.columns)
	const maxColWidth = 60
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func columnTitle(key string) string {
	switch key {
	case string(task.PriorityHigh):
		return "High"
	case string(task.PriorityMedium):
		return "Medium"
	case string(task.PriorityLow):
		return "Low"
	case board.ColumnCompleted:
		return "Done"
	}
	return key
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	headerText := fmt.Sprintf("%s (%d)", columnTitle(col.key), len(col.tasks))
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	maxVis := b.visibleCardsForColumn(&col, width)
	start := col.scrollOff
	end := start + maxVis
	if end > len(col.tasks) {
		end = len(col.tasks)
	}
	if start > len(col.tasks) {
		start = len(col.tasks)
	}

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	if len(col.tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			t := col.tasks[rowIdx]
			active := colIdx == b.activeCol && rowIdx == b.activeRow
			parts = append(parts, b.renderCard(t, active, width))
		}
	}

	if end < len(col.tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(col.tasks)-end)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	content := strings.Join(b.cardContentLines(t, width), "\n")

	style := cardStyle
	if t.ID == b.focusID {
		style = focusCardStyle
	}
	if active {
		style = activeCardStyle
	}

	return style.Width(width - 2).Render(content) //nolint:mnd // border width
}

func (b *Board) cardHeight(t *task.Task, width int) int {
	return len(b.cardContentLines(t, width)) + 2 //nolint:mnd // top and bottom borders
}

func (b *Board) cardContentLines(t *task.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := width - cardChrome
	if cardWidth < 1 {
		cardWidth = 1
	}

	titleLines := b.cfg.TUI.TitleLines
	if titleLines < 1 {
		titleLines = 2
	}

	titleStyle := lipgloss.NewStyle()
	if t.Completed {
		titleStyle = doneStyle
	}

	prefix := ""
	if t.ID == b.focusID {
		prefix = focusMarkStyle.Render("★ ")
	}

	var contentLines []string
	for i, line := range wrapText(t.Title, cardWidth, titleLines) {
		if i == 0 && prefix != "" {
			line = truncate(line, cardWidth-2) //nolint:mnd // star prefix width
			contentLines = append(contentLines, prefix+titleStyle.Render(line))
			continue
		}
		contentLines = append(contentLines, titleStyle.Render(line))
	}

	if b.cfg.TUI.ShowDescriptions && t.Description != "" {
		desc := strings.SplitN(strings.TrimSpace(t.Description), "\n", 2)[0]
		contentLines = append(contentLines, dimStyle.Render(truncate(desc, cardWidth)))
	}

	meta := b.cardMetaLine(t, cardWidth)
	if meta != "" {
		contentLines = append(contentLines, meta)
	}

	if len(t.Tags) > 0 {
		var rendered []string
		used := 0
		for _, tag := range t.Tags {
			if used+len(tag)+1 > cardWidth {
				break
			}
			rendered = append(rendered, tagStyle(tag).Render("#"+tag))
			used += len(tag) + 2 //nolint:mnd // hash and separator
		}
		if len(rendered) > 0 {
			contentLines = append(contentLines, strings.Join(rendered, " "))
		}
	}

	return contentLines
}

// cardMetaLine builds the "2/5  due 2026-09-03" line. Overdue dates render
// red; completed tasks never count as overdue.
func (b *Board) cardMetaLine(t *task.Task, width int) string {
	var parts []string

	if done, total := t.SubtaskProgress(); total > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%d/%d", done, total)))
	}

	if t.DueDate != nil {
		label := "due " + t.DueDate.String()
		style := dimStyle
		if !t.Completed && t.DueDate.Time.Before(b.now().Truncate(24*time.Hour)) {
			style = overdueStyle
		}
		parts = append(parts, style.Render(label))
	}

	if t.TaskVibe != "" {
		parts = append(parts, vibeStyle.Render(truncate(t.TaskVibe, width/2))) //nolint:mnd // half width cap
	}

	return truncate(strings.Join(parts, "  "), width)
}

func (b *Board) renderStatusBar() string {
	status := fmt.Sprintf(" %d tasks | space:done enter:detail c:cal r:re-roll d:del q:quit", b.total)
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (b *Board) viewTaskDetail() string {
	t := b.selectedTask()
	if t == nil {
		b.view = viewBoard
		return b.viewColumns()
	}

	width := b.width - 8 //nolint:mnd // dialog border and padding
	if width < 20 {
		width = 20
	}

	var sb strings.Builder
	title := t.Title
	if t.ID == b.focusID {
		title = "★ " + title
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(truncate(title, width)))
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("id " + t.ID + "  priority " + string(t.Priority)))
	if t.DueDate != nil {
		sb.WriteString(dimStyle.Render("  due " + t.DueDate.String()))
	}
	if t.DelegatedTo != "" {
		sb.WriteString(dimStyle.Render("  @" + t.DelegatedTo))
	}
	sb.WriteString("\n")

	if t.Description != "" {
		sb.WriteString("\n")
		for _, line := range wrapText(t.Description, width, 12) { //nolint:mnd // detail body cap
			sb.WriteString(line + "\n")
		}
	}

	if len(t.Subtasks) > 0 {
		sb.WriteString("\n")
		for _, s := range t.Subtasks {
			mark := "[ ]"
			if s.Completed {
				mark = "[x]"
			}
			sb.WriteString(truncate(mark+" "+s.Text, width) + "\n")
		}
	}

	if t.TaskVibe != "" {
		sb.WriteString("\n" + vibeStyle.Render(truncate(t.TaskVibe, width)) + "\n")
	}

	sb.WriteString("\n" + dimStyle.Render("space:toggle done  esc:back"))
	return dialogStyle.Render(sb.String())
}

func (b *Board) viewCalendarMonth() string {
	m := board.CalendarMonth(b.store.Tasks(), b.calYear, b.calMonth)
	now := b.now()

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("%s %d", b.calMonth, b.calYear)))
	sb.WriteString("\n Su  Mo  Tu  We  Th  Fr  Sa\n")

	var line strings.Builder
	line.WriteString(strings.Repeat("    ", int(m.FirstWeekday())))
	weekday := int(m.FirstWeekday())
	for d := 1; d <= m.Days(); d++ {
		cell := fmt.Sprintf(" %2d ", d)
		switch {
		case now.Year() == b.calYear && now.Month() == b.calMonth && now.Day() == d:
			cell = activeColumnHeaderStyle.Padding(0).Render(fmt.Sprintf("[%2d]", d))
		case m.Marked(d):
			cell = focusMarkStyle.Render(fmt.Sprintf(" %2d•", d))
		}
		line.WriteString(cell)
		weekday++
		if weekday == 7 {
			sb.WriteString(line.String() + "\n")
			line.Reset()
			weekday = 0
		}
	}
	if line.Len() > 0 {
		sb.WriteString(line.String() + "\n")
	}

	listed := 0
	for d := 1; d <= m.Days() && listed < 8; d++ {
		if !m.Marked(d) {
			continue
		}
		for _, t := range m.Day(d) {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("\n %2d  ", d)) +
				truncate(t.Title, b.width-10))
			listed++
			if listed == 8 {
				break
			}
		}
	}

	sb.WriteString("\n\n" + dimStyle.Render("[ ]:month  t:today  esc:back"))
	return dialogStyle.Render(sb.String())
}

func (b *Board) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		"  " + truncate(b.deleteTitle, b.width-12) + "\n\n" + //nolint:mnd // dialog chrome
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

// wrapText splits text across maxLines lines at word boundaries, truncating
// the last line when the text does not fit.
func wrapText(text string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	text = strings.Join(strings.Fields(text), " ")
	if lipgloss.Width(text) <= maxWidth || maxLines == 1 {
		return []string{truncate(text, maxWidth)}
	}

	words := strings.Fields(text)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), maxWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
