package engine

// LLM prompt templates, data only.

// describeVideoPrompt drafts an editor-facing description for an embed.
// Args: title, provider, duration (display), existing description, transcript excerpt.
const describeVideoPrompt = `You write short descriptions for embedded videos on a website.

Respond with valid JSON only (no markdown, no code fences):
{"answer": "2-3 sentence plain-text description"}

Rules:
- plain text, no markdown, no hashtags, no emoji
- at most %d characters
- describe what a viewer will learn or see; do not invent facts missing from the input
- write in the SAME LANGUAGE as the title

Title: %s
Provider: %s
Duration: %s
Current description: %s

Transcript excerpt:
%s`
