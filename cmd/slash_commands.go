package cmd

import (
	"fmt"
	"strings"

	"github.com/quocvuong92/dappier-go"
	"github.com/quocvuong92/dappier-go/internal/config"
	"github.com/quocvuong92/dappier-go/internal/constants"
	"github.com/quocvuong92/dappier-go/internal/display"
)

// handleCommand processes slash commands in interactive mode.
// Returns true if the session should exit, false otherwise.
func (s *InteractiveSession) handleCommand(input string) bool {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "/exit", "/quit", "/q":
		fmt.Fprintln(s.out, "Goodbye!")
		return true

	case "/help", "/h":
		s.showHelp()

	case "/model":
		s.handleModelCommand(arg)

	case "/datamodel":
		s.handleDataModelCommand(arg)

	case "/algorithm":
		s.handleAlgorithmCommand(arg)

	case "/render":
		s.handleRenderCommand(arg)

	case "/recommend":
		if arg == "" {
			fmt.Fprintln(s.out, "Usage: /recommend <query>")
			return false
		}
		s.recommend(arg)

	case "/history":
		s.showHistory()

	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(s.out, "Type /help for available commands")
	}

	return false
}

// showHelp displays the help message with all available commands.
func (s *InteractiveSession) showHelp() {
	fmt.Fprintln(s.out, "\nCommands:")
	fmt.Fprintf(s.out, "  %-24s %s\n", "<question>", "Real-time search with the current model")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/recommend <query>", "Find related articles in the data model")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/model", "Show current AI model")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/model <id>", "Switch AI model (realtime, stock, or an am_ ID)")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/datamodel <id>", "Set the data model for /recommend")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/algorithm <name>", "Switch search algorithm ("+strings.Join(constants.SearchAlgorithms, ", ")+")")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/render [on|off]", "Toggle markdown rendering")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/history", "Show recent queries")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/exit, /quit, /q", "Exit interactive mode")
	fmt.Fprintf(s.out, "  %-24s %s\n", "/help, /h", "Show this help")
	fmt.Fprintln(s.out)
}

func (s *InteractiveSession) handleModelCommand(arg string) {
	switch strings.ToLower(arg) {
	case "":
		fmt.Fprintf(s.out, "Current AI model: %s\n", s.modelID)
		return
	case "realtime", "real-time":
		s.modelID = dappier.RealTimeModelID
	case "stock", "stocks":
		s.modelID = dappier.StockMarketModelID
	default:
		s.modelID = arg
	}
	fmt.Fprintf(s.out, "Switched to AI model: %s\n", s.modelID)
}

func (s *InteractiveSession) handleDataModelCommand(arg string) {
	if arg == "" {
		if s.app.cfg.DataModelID == "" {
			fmt.Fprintln(s.out, "No data model set. Use /datamodel <id>")
			return
		}
		fmt.Fprintf(s.out, "Current data model: %s\n", s.app.cfg.DataModelID)
		return
	}
	s.app.cfg.DataModelID = arg
	fmt.Fprintf(s.out, "Switched to data model: %s\n", arg)
}

func (s *InteractiveSession) handleAlgorithmCommand(arg string) {
	if arg == "" {
		fmt.Fprintf(s.out, "Current search algorithm: %s\n", s.app.cfg.SearchAlgorithm)
		return
	}
	algorithm := strings.ToLower(arg)
	if !config.ValidSearchAlgorithm(algorithm) {
		display.ShowErrorTo(s.errOut, config.ErrInvalidSearchAlgorithm.Error())
		return
	}
	s.app.cfg.SearchAlgorithm = algorithm
	fmt.Fprintf(s.out, "Switched to search algorithm: %s\n", algorithm)
}

func (s *InteractiveSession) handleRenderCommand(arg string) {
	switch strings.ToLower(arg) {
	case "":
		s.app.cfg.Render = !s.app.cfg.Render
	case "on":
		s.app.cfg.Render = true
	case "off":
		s.app.cfg.Render = false
	default:
		fmt.Fprintln(s.out, "Usage: /render [on|off]")
		return
	}

	if s.app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			display.ShowErrorTo(s.errOut, err.Error())
			s.app.cfg.Render = false
			return
		}
		fmt.Fprintln(s.out, "Markdown rendering on")
		return
	}
	fmt.Fprintln(s.out, "Markdown rendering off")
}

// showHistory displays the most recent queries
func (s *InteractiveSession) showHistory() {
	if s.history == nil {
		fmt.Fprintln(s.out, "History not available.")
		return
	}

	entries := s.history.Recent(10)
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No queries yet.")
		return
	}

	fmt.Fprintln(s.out, "\nRecent queries:")
	for _, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed"
		}
		fmt.Fprintf(s.out, "  %s  %-9s %-6s %s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Kind, status, display.Truncate(e.Query, 60))
	}
	fmt.Fprintln(s.out)
}
