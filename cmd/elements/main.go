// Command elements synthesizes and inspects the style sheets produced for
// styled custom elements, without a browser.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		label := lipgloss.NewRenderer(os.Stderr).NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		fmt.Fprintln(os.Stderr, label.Render("error:"), err)
		os.Exit(1)
	}
}
