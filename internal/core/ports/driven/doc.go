// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser / NormaliserRegistry: Extract text from uploaded files
//   - PostProcessorPipeline: Chunk extracted text and attach metadata
//   - EmbeddingService: Turn text into fixed-dimension vectors
//   - VectorStore: Persist chunk vectors and run similarity search
//   - LLMService: Complete prompts against a hosted language model
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - OCREngine / PageRenderer: Without them, images and scanned PDFs fail extraction.
//   - Archive: Without it, uploaded originals are not kept.
//   - HistoryStore: Without it, chat history lives only for the session.
//   - PromptStore: Without it, the built-in answer template is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
