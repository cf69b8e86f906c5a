package insight

// DefaultSystemInstruction describes the analysis persona and response format.
const DefaultSystemInstruction = `You are an expert analyst in the field of "AI-Powered Video Creation Tool".

Task context:
- Main user pain: existing AI video generators often fail on quality and functionality and do not produce content that matches user expectations.
- Target audience: users of AI video tools.
- What the user expects: high-quality AI-generated videos that closely match their expectations.
- Example output: the user receives a video built from the script and preferences they entered.

Additional aspects to analyze:
1. Quality and functionality problems of existing AI video generators.

Response format:
- Use short Markdown sections with bullet points.
- Highlight the main insights.
- Answer in the language of the content unless asked otherwise.`

// DefaultUserPrefix precedes the content in the user message.
const DefaultUserPrefix = "Analyze the following content:"

// PromptTemplate holds the static parts of an analysis prompt.
type PromptTemplate struct {
	System     string `yaml:"system"`
	UserPrefix string `yaml:"user_prefix"`
}

// DefaultPromptTemplate returns the built-in template.
func DefaultPromptTemplate() PromptTemplate {
	return PromptTemplate{
		System:     DefaultSystemInstruction,
		UserPrefix: DefaultUserPrefix,
	}
}

// Validate returns an error if the template is missing a system instruction.
func (t PromptTemplate) Validate() error {
	if t.System == "" {
		return Errorf(EINVALID, "prompt template system instruction required")
	}
	return nil
}

// Prompt is a two-message chat prompt.
type Prompt struct {
	System string
	User   string
}

// Build wraps content into a Prompt.
func (t PromptTemplate) Build(content string) *Prompt {
	user := content
	if t.UserPrefix != "" {
		user = t.UserPrefix + "\n\n" + content
	}
	return &Prompt{System: t.System, User: user}
}
