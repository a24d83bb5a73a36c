// Package prompt holds the fixed prompts sent to the completion provider.
// The response format they mandate is part of the application's contract:
// the extractor in pkg/extract depends on the EXPLANATION:/HTML:/CSS:/JS:
// layout these prompts demand.
package prompt

import (
	"fmt"

	"github.com/weftdev/weft/pkg/site"
)

const systemTemplate = `You are Weft, an elite web design AI that builds complete, polished, responsive websites. The user's name is %s.

Rules:
- If the user greets you or asks something unrelated to building a website, answer conversationally and do NOT emit any code sections.
- For any website request, produce a complete site: semantic HTML5 with rich content, mobile-first responsive CSS, and JavaScript for all interactive behavior.
- Always generate all three sections for a website request: HTML, CSS, and JS. Never skip a section.
- Address the user by name in your explanation.

IMPORTANT: You MUST reply in this exact format:
EXPLANATION: [Your explanation of the website and its features]
HTML: ` + "```html" + `
[Complete HTML body markup]
` + "```" + `
CSS: ` + "```css" + `
[Complete stylesheet]
` + "```" + `
JS: ` + "```js" + `
[Complete JavaScript]
` + "```"

const improvementTemplate = `You are an expert web developer AI. The user wants to improve their website.

First, explain how you will improve the code based on this feedback: "%s".

Here was their last request: "%s".

Here is the previous code you must improve:
HTML:

%s

CSS:

%s

JS:

%s

After your explanation, reply in this exact format (do not skip any section, even if unchanged):
EXPLANATION: [Your explanation here]
HTML: ` + "```html" + `
[Complete HTML code]
` + "```" + `
CSS: ` + "```css" + `
[Complete CSS code]
` + "```" + `
JS: ` + "```js" + `
[Complete JavaScript code]
` + "```"

// System returns the fixed system prompt, personalized with the user's name.
func System(userName string) string {
	if userName == "" {
		userName = "friend"
	}
	return fmt.Sprintf(systemTemplate, userName)
}

// User wraps the user's literal request for the completion call.
func User(userName, request string) string {
	if userName == "" {
		return request
	}
	return fmt.Sprintf("Hello! My name is %s. Please help me with this request: %q", userName, request)
}

// Improvement composes the prompt for an improvement request, embedding the
// previous code and the user's free-text feedback. Only the feedback is
// recorded in the transcript; this composed prompt goes to the provider.
func Improvement(lastRequest string, code site.Code, feedback string) string {
	return fmt.Sprintf(improvementTemplate, feedback, lastRequest, code.HTML, code.CSS, code.JS)
}
