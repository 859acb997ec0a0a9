// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gemini

import "fmt"

const systemPrompt = `You are a helpful AI assistant participating in a prompt battle competition.

TASK: Generate the best possible response for the given prompt.

RULES:
1. Respond naturally and helpfully as if you received this prompt directly
2. Do not compare, judge, or reference any other prompts
3. Give this prompt your full effort - treat it as a standalone request
4. Be concise but thorough (aim for 150-300 words unless the prompt requests otherwise)
5. Match the tone and style requested in the prompt
6. Be creative, accurate, and engaging`

// buildSystemPrompt returns the shared instructional prefix both generation
// calls use, so neither prompt gets a framing advantage.
func buildSystemPrompt(topic string) string {
	if topic == "" {
		return systemPrompt
	}
	return fmt.Sprintf("%s\n\nCONTEXT: This response is for a battle about %q", systemPrompt, topic)
}
