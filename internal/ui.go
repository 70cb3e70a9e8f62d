package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	// Color palette - Tokyo Night inspired
	primaryColor    = lipgloss.Color("#7aa2f7") // blue
	secondaryColor  = lipgloss.Color("#9ece6a") // green
	errorColor      = lipgloss.Color("#f7768e") // red
	textColor       = lipgloss.Color("#c0caf5") // foreground
	dimColor        = lipgloss.Color("#565f89") // comment
	backgroundColor = lipgloss.Color("#1a1b26") // background

	asciiStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Align(lipgloss.Center).
			MarginBottom(1)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	errorBoxStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(errorColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor)

	successBoxStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(secondaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor)

	buttonStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Background(primaryColor).
			Foreground(backgroundColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor)

	linkStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Underline(true).
			Align(lipgloss.Center)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(2, 3).
			Margin(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Align(lipgloss.Center).
			Italic(true).
			MarginTop(2)
)

// ASCII art for the program name
const asciiArt = `▄▄▄▄▄             ▄▄▄▄▄▄ ▄▄
█   █ ▄▄▄ ▄  ▄   █      █  ▄▄▄  ▄   ▄
█▀▀▀  █ █ █  █   █▀▀▀   █  █ █  █ ▄ █
█     ▀▀▀ ▀▀▀█   █      ▀▀ ▀▀▀  ▀▀▀▀▀
          ▀▀▀`

// billingDateFormat is how the next billing date appears on the success screen.
const billingDateFormat = "January 2, 2006"

// renderHeader renders the shared app branding block.
func (m Model) renderHeader() string {
	ascii := asciiStyle.Render(asciiArt)
	title := titleStyle.Render(AppDesc)
	subtitle := subtitleStyle.Render(GetSubtitle())

	return ascii + "\n" + title + "\n" + subtitle
}

// renderProcessing renders the processing screen: icon, title, spinner and
// the progress-bar footer sized to the simulated percentage.
func (m Model) renderProcessing() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n\n")

	spinner := GetProgressFrame(m.frame)
	s.WriteString(titleStyle.Render(CurrentSymbols.Card+" Processing your payment "+spinner) + "\n\n")

	// The subtitle slot is intentionally empty while processing.
	s.WriteString(subtitleStyle.Render("") + "\n")

	s.WriteString(m.renderProgressBar() + "\n")

	help := helpStyle.Render("Please wait, this can take a few seconds")
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderProgressBar renders the footer bar sized to progress%.
func (m Model) renderProgressBar() string {
	width := 50
	filled := m.progress * width / 100
	if filled > width {
		filled = width
	}

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}

	progressText := fmt.Sprintf("[%s] %d%%", bar.String(), m.progress)

	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Align(lipgloss.Center).
		Render(progressText)
}

// renderSuccess renders the confirmation screen. The prorated layout names
// both plans and explains the mixed charge; the standard layout confirms
// the upgrade. Both show the next billing date.
func (m Model) renderSuccess() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n\n")

	s.WriteString(successBoxStyle.Render(FormatSuccess("Payment confirmed")) + "\n\n")

	nextBill := m.cfg.NextBillingDate(time.Now()).Format(billingDateFormat)

	var subtitle string
	if m.cfg.IsProratedPayment {
		subtitle = fmt.Sprintf(
			"You are switching from %s to %s.\nYou will be charged a prorated amount for the rest of this\nbilling period. Your next full bill of %s is on %s.",
			m.cfg.CurrentProduct.Name,
			m.cfg.SelectedProduct.Name,
			FormatAmount(m.cfg.SelectedProduct.UnitAmount, m.cfg.SelectedProduct.Currency),
			nextBill,
		)
	} else {
		subtitle = fmt.Sprintf(
			"Your plan has been upgraded to %s.\nYour next bill is on %s.",
			m.cfg.SelectedProduct.Name,
			nextBill,
		)
	}
	s.WriteString(subtitleStyle.Render(subtitle) + "\n\n")

	s.WriteString(buttonStyle.Render("❯ Done") + "\n")

	help := helpStyle.Render("enter: close")
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderFailed renders the failure screen with the retry button and the
// support contact link. No raw error detail is surfaced here.
func (m Model) renderFailed() string {
	var s strings.Builder

	s.WriteString(m.renderHeader() + "\n\n")

	s.WriteString(errorTitleStyle.Render(FormatError("We could not process your payment")) + "\n\n")

	s.WriteString(errorBoxStyle.Render("Your payment method was not saved.\nNo charges were made.") + "\n\n")

	s.WriteString(buttonStyle.Render("❯ Go back and try again") + "\n\n")

	if m.cfg.ContactSupportLink != "" {
		link := CurrentSymbols.Link + " Need help? " + truncate(m.cfg.ContactSupportLink, 60)
		s.WriteString(linkStyle.Render(link) + "\n")
	}

	help := helpStyle.Render("enter: go back " + CurrentSymbols.Bullet + " q: quit")
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
