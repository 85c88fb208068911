package openai

// categorizePrompt instructs the model to label content with topic
// categories. The output contract (bare comma-separated list) keeps
// parsing trivial and token budgets small.
const categorizePrompt = `You are a content categorization assistant.
Analyze the content and return 1-3 relevant category labels.
Categories should be single words or short phrases like:
Technology, Finance, Health, Entertainment, News, Tutorial,
Crypto, AI, Programming, Business, Science, Sports, etc.

Return ONLY the categories as a comma-separated list, nothing else.
Example: Technology, AI, Tutorial`

// summarizePrompt requests a compact summary used as the preferred
// content preview in search results and chat context.
const summarizePrompt = `Summarize the following content in 1-2 sentences. Be concise.`

// featurePrompt asks the model to act as a crude feature extractor. The
// 32 numbers are tiled cyclically to the full embedding dimension, so
// relative ordering matters more than absolute precision.
const featurePrompt = `You are a text feature extractor. Analyze the text and output exactly 32
numeric features describing it, each in the range -1 to 1, covering topic,
tone, specificity, technicality and recency signals.

Return ONLY the 32 numbers as a comma-separated list, nothing else.
Example: 0.5, -0.25, 0.0, 1, -1, 0.75, ...`
