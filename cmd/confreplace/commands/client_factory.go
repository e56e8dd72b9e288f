package commands

import (
	"confreplace/internal/prompt"
	"confreplace/internal/replacer"
)

// newConfluenceClient and newPrompter are package-level variables to allow
// test injection. Production code talks to Confluence over HTTP and prompts
// on the terminal.
var (
	newConfluenceClient replacer.ClientFactory = replacer.DefaultClientFactory

	newPrompter = func() prompt.Prompter {
		return prompt.NewSurvey()
	}
)
