package assistant

import "github.com/verlyx/hub-server/internal/models"

const systemPromptBase = `You are an intelligent assistant for Verlyx Hub, a business management platform.

Your job is to help users with:
- Managing projects, tasks and documents
- Generating and analyzing PDF documents (invoices, contracts, quotes)
- Suggestions for organizing their work
- Questions about how the platform works

Be concise, professional and helpful.`

const projectContextSuffix = `

CONTEXT: This conversation is linked to a specific project. Focus on helping with the project's tasks, planning and organization.`

const taskContextSuffix = `

CONTEXT: This conversation is linked to a specific task. Help break the work into steps, set priorities and unblock progress.`

// SystemPrompt returns the system prompt for a conversation context type.
// Unknown context types get the base prompt.
func SystemPrompt(contextType models.ContextType) string {
	switch contextType {
	case models.ContextProject:
		return systemPromptBase + projectContextSuffix
	case models.ContextTask:
		return systemPromptBase + taskContextSuffix
	default:
		return systemPromptBase
	}
}
