package repository

import "fmt"

// maxPromptContentLen caps how much document text is embedded in a prompt.
const maxPromptContentLen = 4000

// BuildDocumentQAPrompt builds the prompt used to answer a question about a
// financial document.
func BuildDocumentQAPrompt(documentContent, question string) string {
	if len(documentContent) > maxPromptContentLen {
		documentContent = documentContent[:maxPromptContentLen]
	}

	return fmt.Sprintf(`You are a financial analyst assistant. Answer the following question based on the financial document content provided.

Document Content:
%s

Question: %s

Please provide a clear, accurate answer based on the document content. If the information is not available in the document, say so.`, documentContent, question)
}
