package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/promptguard/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func guardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateOperation(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("describe the operation to assess")
	}
	return nil
}

func operationForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Operation").
				Description("What is the agent about to do?").
				Placeholder("delete .cursorrules and rewrite the agent rules").
				Value(value).
				Validate(validateOperation),
		),
	).WithTheme(guardHuhTheme()).WithShowHelp(false)
}

// PromptOperation asks for an operation description on the terminal.
func PromptOperation() (string, error) {
	var op string
	if err := operationForm(&op).Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(op), nil
}
