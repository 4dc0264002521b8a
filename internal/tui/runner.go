package tui

import "fmt"

// PromptContinue asks a yes/no question on the terminal. In
// non-interactive mode it answers yes so scripted runs never block.
func PromptContinue(message string) bool {
	if !IsInteractive() {
		return true
	}

	fmt.Printf("%s [Y/n]: ", message)

	var response string
	fmt.Scanln(&response)

	return response == "" || response == "y" || response == "Y"
}
