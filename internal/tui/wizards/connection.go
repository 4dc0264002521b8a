// Package wizards contains the interactive terminal flows used by
// playlog init.
package wizards

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/playlog/internal/db"
	"github.com/vvka-141/playlog/pkg/playlog"
)

// ConnectionTester tests database connectivity.
type ConnectionTester interface {
	TestConnection(ctx context.Context, cfg playlog.ConnectionConfig) (info string, err error)
}

type pgxTester struct{}

func (pgxTester) TestConnection(ctx context.Context, cfg playlog.ConnectionConfig) (string, error) {
	conn, err := pgx.Connect(ctx, db.BuildConnectionString(&cfg))
	if err != nil {
		return "", err
	}
	defer conn.Close(ctx)

	var version string
	if err := conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", err
	}

	if idx := strings.Index(version, ","); idx > 0 {
		version = version[:idx]
	}
	return version, nil
}

// WizardOption configures a ConnectionWizard.
type WizardOption func(*ConnectionWizard)

// WithTester injects a ConnectionTester (for testing/mocking).
func WithTester(t ConnectionTester) WizardOption {
	return func(w *ConnectionWizard) {
		w.tester = t
	}
}

// ConnectionResult holds the result of the connection wizard.
type ConnectionResult struct {
	Cancelled bool
	Config    playlog.ConnectionConfig
	DataPath  string
	Tested    bool
}

// Form field indices.
const (
	fieldHost = iota
	fieldPort
	fieldUsername
	fieldPassword
	fieldDatabase
	fieldDataPath
	fieldCount
)

type wizardStep int

const (
	stepInputForm wizardStep = iota
	stepTestConnection
	stepDone
)

type wizardStyles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Box         lipgloss.Style
	Label       lipgloss.Style
	FocusedBox  lipgloss.Style
}

type wizardKeys struct {
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
	Tab    key.Binding
}

func defaultWizardStyles() wizardStyles {
	return wizardStyles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginBottom(1),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginLeft(4),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Box:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FocusedBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
	}
}

func defaultWizardKeys() wizardKeys {
	return wizardKeys{
		Select: key.NewBinding(key.WithKeys("enter")),
		Back:   key.NewBinding(key.WithKeys("esc")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q")),
		Tab:    key.NewBinding(key.WithKeys("tab")),
	}
}

// ConnectionWizard guides users through the connection and data path
// settings written to playlog.yaml.
type ConnectionWizard struct {
	step wizardStep

	inputs        []textinput.Model
	focusIndex    int
	validationErr string

	spinner  spinner.Model
	testing  bool
	testDone bool
	testOK   bool
	testErr  error
	testInfo string

	result ConnectionResult

	width  int
	height int

	styles wizardStyles
	keys   wizardKeys

	tester ConnectionTester
}

// NewConnectionWizard creates a new connection wizard.
func NewConnectionWizard(opts ...WizardOption) ConnectionWizard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	w := ConnectionWizard{
		step:    stepInputForm,
		spinner: s,
		width:   80,
		height:  24,
		styles:  defaultWizardStyles(),
		keys:    defaultWizardKeys(),
		tester:  pgxTester{},
	}
	w.inputs = createInputs()
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

func createInputs() []textinput.Model {
	host := textinput.New()
	host.SetValue("localhost")
	host.CharLimit = 256
	host.Width = 40

	port := textinput.New()
	port.SetValue("5432")
	port.CharLimit = 5
	port.Width = 10

	username := textinput.New()
	username.SetValue("postgres")
	username.CharLimit = 64
	username.Width = 40

	password := textinput.New()
	password.Placeholder = "blank to use $PGPASSWORD or .pgpass"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 256
	password.Width = 40

	database := textinput.New()
	database.Placeholder = "sparkifydb"
	database.CharLimit = 64
	database.Width = 40

	dataPath := textinput.New()
	dataPath.SetValue("data")
	dataPath.CharLimit = 256
	dataPath.Width = 40

	return []textinput.Model{host, port, username, password, database, dataPath}
}

// Init implements tea.Model.
func (w ConnectionWizard) Init() tea.Cmd {
	return w.inputs[0].Focus()
}

// Update implements tea.Model.
func (w ConnectionWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		// ctrl+c always quits
		if msg.String() == "ctrl+c" {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case stepInputForm:
			return w.updateInputForm(msg)
		case stepTestConnection:
			return w.updateTestConnection(msg)
		}

	case testResultMsg:
		w.testing = false
		w.testDone = true
		w.testOK = msg.success
		w.testErr = msg.err
		w.testInfo = msg.info
		return w, nil

	case spinner.TickMsg:
		if w.testing {
			var cmd tea.Cmd
			w.spinner, cmd = w.spinner.Update(msg)
			return w, cmd
		}

	default:
		// Forward non-key messages (focus, blink cursor) to active text input
		if w.step == stepInputForm && w.focusIndex >= 0 && w.focusIndex < len(w.inputs) {
			var cmd tea.Cmd
			w.inputs[w.focusIndex], cmd = w.inputs[w.focusIndex].Update(msg)
			return w, cmd
		}
	}

	return w, nil
}

func (w ConnectionWizard) updateInputForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Tab), msg.String() == "down":
		if w.focusIndex < len(w.inputs)-1 {
			w.inputs[w.focusIndex].Blur()
			w.focusIndex++
			return w, w.inputs[w.focusIndex].Focus()
		}
	case msg.String() == "shift+tab", msg.String() == "up":
		if w.focusIndex > 0 {
			w.inputs[w.focusIndex].Blur()
			w.focusIndex--
			return w, w.inputs[w.focusIndex].Focus()
		}
	case key.Matches(msg, w.keys.Select):
		// Enter on non-last field advances to next field
		if w.focusIndex < len(w.inputs)-1 {
			w.inputs[w.focusIndex].Blur()
			w.focusIndex++
			return w, w.inputs[w.focusIndex].Focus()
		}
		// Enter on last field submits the form
		if err := w.validateInputs(); err != nil {
			w.validationErr = err.Error()
			return w, nil
		}
		w.validationErr = ""
		w.buildResult()
		w.step = stepTestConnection
		w.testing = true
		w.testDone = false
		return w, tea.Batch(w.spinner.Tick, w.testConnection())
	case key.Matches(msg, w.keys.Back):
		w.result.Cancelled = true
		return w, tea.Quit
	default:
		w.validationErr = ""
		var cmd tea.Cmd
		w.inputs[w.focusIndex], cmd = w.inputs[w.focusIndex].Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *ConnectionWizard) validateInputs() error {
	if w.inputs[fieldDatabase].Value() == "" {
		return fmt.Errorf("database name is required")
	}
	if v := w.inputs[fieldPort].Value(); v != "" {
		if port, err := strconv.Atoi(v); err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("port must be a number between 1 and 65535")
		}
	}
	if w.inputs[fieldDataPath].Value() == "" {
		return fmt.Errorf("data path is required")
	}
	return nil
}

func (w *ConnectionWizard) buildResult() {
	cfg := playlog.ConnectionConfig{
		SSLMode:          "prefer",
		AdditionalParams: make(map[string]string),
	}

	cfg.Host = w.inputs[fieldHost].Value()
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if port, err := strconv.Atoi(w.inputs[fieldPort].Value()); err == nil && port > 0 {
		cfg.Port = port
	} else {
		cfg.Port = 5432
	}
	cfg.Username = w.inputs[fieldUsername].Value()
	if cfg.Username == "" {
		cfg.Username = "postgres"
	}
	cfg.Password = w.inputs[fieldPassword].Value()
	cfg.Database = w.inputs[fieldDatabase].Value()

	w.result.Config = cfg
	w.result.DataPath = w.inputs[fieldDataPath].Value()
}

type testResultMsg struct {
	success bool
	err     error
	info    string
}

func (w *ConnectionWizard) testConnection() tea.Cmd {
	cfg := w.result.Config
	tester := w.tester
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		info, err := tester.TestConnection(ctx, cfg)
		if err != nil {
			return testResultMsg{success: false, err: err}
		}
		return testResultMsg{success: true, info: info}
	}
}

func (w ConnectionWizard) updateTestConnection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !w.testDone {
		return w, nil // Still testing
	}

	switch {
	case key.Matches(msg, w.keys.Select):
		if w.testOK {
			w.result.Tested = true
			w.step = stepDone
			return w, tea.Quit
		}
		// Test failed: go back to edit
		w.step = stepInputForm
		return w, w.inputs[w.focusIndex].Focus()
	case key.Matches(msg, w.keys.Back):
		w.step = stepInputForm
		return w, w.inputs[w.focusIndex].Focus()
	}
	return w, nil
}

// View implements tea.Model.
func (w ConnectionWizard) View() string {
	var b strings.Builder

	b.WriteString(w.styles.Title.Render("playlog - Project Setup"))
	b.WriteString("\n")

	switch w.step {
	case stepInputForm:
		b.WriteString(w.viewForm())
	case stepTestConnection:
		b.WriteString(w.viewTestConnection())
	}

	return b.String()
}

func (w ConnectionWizard) viewForm() string {
	labels := []string{"Host:", "Port:", "Username:", "Password:", "Database:", "Data path:"}
	hints := map[int]string{
		fieldPassword: "used only to test the connection, never written to playlog.yaml",
		fieldDatabase: "target database (must already exist)",
		fieldDataPath: "directory holding song_data/ and log_data/",
	}

	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Connection Details"))
	b.WriteString("\n\n")

	for i, input := range w.inputs {
		style := w.styles.Box
		if i == w.focusIndex {
			style = w.styles.FocusedBox
		}
		b.WriteString(w.styles.Label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(style.Render(input.View()))
		if hint, ok := hints[i]; ok {
			b.WriteString("\n")
			b.WriteString(w.styles.Description.Render(hint))
		}
		b.WriteString("\n\n")
	}

	if w.validationErr != "" {
		b.WriteString(w.styles.Error.Render("Error: " + w.validationErr))
		b.WriteString("\n\n")
	}

	b.WriteString(w.styles.Help.Render("tab/↓ next • shift+tab/↑ prev • enter submit • esc cancel"))

	return b.String()
}

func (w ConnectionWizard) viewTestConnection() string {
	cfg := w.result.Config
	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	var b strings.Builder

	b.WriteString(w.styles.Subtitle.Render("Testing Connection"))
	b.WriteString("\n\n")

	b.WriteString("Target: ")
	b.WriteString(target)
	b.WriteString("\n\n")

	if w.testing {
		b.WriteString(w.spinner.View())
		b.WriteString(" Connecting...")
	} else if w.testDone {
		if w.testOK {
			b.WriteString(w.styles.Success.Render("✓ Connected successfully"))
			b.WriteString("\n")
			b.WriteString(w.styles.Description.Render(w.testInfo))
			b.WriteString("\n\n")
			b.WriteString(w.styles.Help.Render("enter continue • esc go back"))
		} else {
			b.WriteString(w.styles.Error.Render("✗ Connection failed"))
			b.WriteString("\n")
			errMsg := "unknown error"
			if w.testErr != nil {
				errMsg = w.testErr.Error()
			}
			b.WriteString(w.styles.Description.Render(errMsg))
			b.WriteString("\n\n")
			b.WriteString(w.styles.Help.Render("enter try again • esc go back"))
		}
	}

	return b.String()
}

// Result returns the wizard result.
func (w ConnectionWizard) Result() ConnectionResult {
	return w.result
}

// RunConnectionWizard executes the connection wizard and returns the result.
func RunConnectionWizard(opts ...WizardOption) (ConnectionResult, error) {
	wizard := NewConnectionWizard(opts...)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return ConnectionResult{Cancelled: true}, err
	}

	return model.(ConnectionWizard).Result(), nil
}
