package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return the
	// built-in default or an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptRAGAnswer is the question-answering template.
	// It expects two %s placeholders: the context, then the question.
	PromptRAGAnswer = "rag_answer"
)

// DefaultRAGAnswerPrompt is the built-in PromptRAGAnswer template.
// Trailing spaces at line ends are part of the template.
const DefaultRAGAnswerPrompt = "You are an intelligent assistant that answers questions based on provided documents. \n" +
	"Use the following context to answer the user's question. If the answer cannot be found in the context, \n" +
	"say so and provide general guidance if possible.\n" +
	"\n" +
	"Context:\n" +
	"%s\n" +
	"\n" +
	"Question: %s\n" +
	"\n" +
	"Please provide a comprehensive and accurate answer based on the context provided. If you reference \n" +
	"specific information, mention which document it came from."
