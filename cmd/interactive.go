package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/dappier-go"
	"github.com/quocvuong92/dappier-go/internal/constants"
	"github.com/quocvuong92/dappier-go/internal/display"
	"github.com/quocvuong92/dappier-go/internal/history"
)

// InteractiveSession holds the state of one REPL session
type InteractiveSession struct {
	app         *App
	client      *dappier.Client
	ctx         context.Context
	out         io.Writer
	errOut      io.Writer
	modelID     string
	exitFlag    bool
	inputBuffer []string // Buffer for multiline input
	history     history.Store
	sessionID   string
}

func newInteractiveSession(ctx context.Context, app *App, client *dappier.Client, hist history.Store, out, errOut io.Writer) *InteractiveSession {
	return &InteractiveSession{
		app:       app,
		client:    client,
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		modelID:   app.cfg.AIModelID,
		history:   hist,
		sessionID: uuid.NewString(),
	}
}

// completer suggests slash commands and their arguments
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if !strings.HasPrefix(text, "/") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	textLower := strings.ToLower(text)

	if strings.HasPrefix(textLower, "/model ") {
		suggestions := []prompt.Suggest{
			{Text: "realtime", Description: "Real-time web search (" + dappier.RealTimeModelID + ")"},
			{Text: "stock", Description: "Stock market data (" + dappier.StockMarketModelID + ")"},
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	if strings.HasPrefix(textLower, "/algorithm ") {
		var suggestions []prompt.Suggest
		for _, a := range constants.SearchAlgorithms {
			desc := ""
			if a == s.app.cfg.SearchAlgorithm {
				desc = "(current)"
			}
			suggestions = append(suggestions, prompt.Suggest{Text: a, Description: desc})
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	if strings.HasPrefix(textLower, "/render ") {
		suggestions := []prompt.Suggest{
			{Text: "on", Description: "Render answers as markdown"},
			{Text: "off", Description: "Print answers as plain text"},
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "/recommend", Description: "Find related articles (e.g., /recommend electric cars)"},
		{Text: "/model", Description: "Show/switch AI model (current: " + s.modelID + ")"},
		{Text: "/datamodel", Description: "Show/set data model for /recommend"},
		{Text: "/algorithm", Description: "Show/switch search algorithm (current: " + s.app.cfg.SearchAlgorithm + ")"},
		{Text: "/render", Description: "Toggle markdown rendering"},
		{Text: "/history", Description: "Show recent queries"},
		{Text: "/help", Description: "Show all available commands"},
		{Text: "/exit", Description: "Exit interactive mode"},

		// Aliases
		{Text: "/q", Description: "Exit (alias)"},
		{Text: "/h", Description: "Help (alias)"},
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the REPL. Plain lines are real-time searches; lines
// starting with / are commands. A line ending in \ continues on the next.
func (app *App) runInteractive(cmd *cobra.Command) error {
	client, err := app.newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Dappier - Interactive Mode")
	fmt.Fprintf(out, "AI model: %s\n", app.cfg.AIModelID)
	if app.cfg.DataModelID != "" {
		fmt.Fprintf(out, "Data model: %s\n", app.cfg.DataModelID)
	}
	fmt.Fprintln(out, "Type a question to search, /help for commands, Ctrl+C or Ctrl+D to quit")
	fmt.Fprintln(out, "End a line with \\ for multiline input")
	fmt.Fprintln(out)

	hist := history.NewHistory()
	if err := hist.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Note: Could not load history: %v\n", err)
	}

	session := newInteractiveSession(cmd.Context(), app, client, hist, out, cmd.ErrOrStderr())

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithHistory(hist.Queries()),
		prompt.WithPrefix("> "),
		prompt.WithTitle("Dappier"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithScrollbarBGColor(prompt.DarkGray),
		prompt.WithScrollbarThumbColor(prompt.White),
		prompt.WithMaxSuggestion(10),
		prompt.WithCompletionOnDown(),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Fprintln(out, "\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Fprintln(out, "Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
	session.saveHistory()
	return nil
}

// saveHistory persists the recorded queries
func (s *InteractiveSession) saveHistory() {
	if s.history == nil {
		return
	}
	if err := s.history.Save(); err != nil {
		fmt.Fprintf(s.errOut, "Warning: Could not save history: %v\n", err)
	}
}

// executor handles one input line
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	if strings.HasSuffix(input, "\\") {
		s.inputBuffer = append(s.inputBuffer, strings.TrimSuffix(input, "\\"))
		fmt.Fprint(s.out, "... ")
		return
	}

	if len(s.inputBuffer) > 0 {
		s.inputBuffer = append(s.inputBuffer, input)
		input = strings.Join(s.inputBuffer, "\n")
		s.inputBuffer = nil
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	if strings.HasPrefix(input, "/") {
		if s.handleCommand(input) {
			s.exitFlag = true
		}
		return
	}

	s.search(input)
}

// search runs a real-time search with the session's model
func (s *InteractiveSession) search(query string) {
	ctx, cancel := context.WithTimeout(s.ctx, constants.DefaultCommandTimeout)
	defer cancel()

	fmt.Fprintln(s.out)
	sp := display.NewSpinnerTo(s.errOut, "Searching...")
	sp.Start()
	resp := s.client.SearchRealTimeData(ctx, query, s.modelID)
	sp.Stop()

	s.record(history.KindSearch, query, s.modelID, resp != nil)
	if resp == nil {
		display.ShowErrorTo(s.errOut, "Search failed. See the log above for details.")
		return
	}
	display.ShowRealTimeResult(s.out, query, resp, false, s.app.cfg.Render)
	fmt.Fprintln(s.out)
}

// recommend fetches recommendations with the session's settings
func (s *InteractiveSession) recommend(query string) {
	if err := s.app.cfg.RequireDataModelID(); err != nil {
		display.ShowErrorTo(s.errOut, "Set a data model first with /datamodel <id>")
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, constants.DefaultCommandTimeout)
	defer cancel()

	fmt.Fprintln(s.out)
	sp := display.NewSpinnerTo(s.errOut, "Fetching recommendations...")
	sp.Start()
	resp := s.client.GetAIRecommendations(ctx, query, s.app.cfg.DataModelID, s.app.recommendationOptions()...)
	sp.Stop()

	s.record(history.KindRecommend, query, s.app.cfg.DataModelID, resp != nil)
	if resp == nil {
		display.ShowErrorTo(s.errOut, "Recommendations failed. See the log above for details.")
		return
	}
	display.ShowRecommendations(s.out, resp)
}

func (s *InteractiveSession) record(kind history.Kind, query, target string, ok bool) {
	if s.history != nil {
		s.history.Add(s.sessionID, kind, query, target, ok)
	}
}
