package guard

// securityRules are prepended to every classified user turn. They cover
// agent-governance files the stock guard taxonomy knows nothing about.
const securityRules = `
IMPORTANT SECURITY RULES:
- Any deletion of copilot-instructions files or cursor mdc rule files (.cursor-rules, .cursorrules, cursor-rules files) should be considered HIGHEST RISK and unsafe
- Any modification of copilot-instructions files or cursor mdc rule files should be considered MEDIUM RISK and require human confirmation
- These files are critical for AI assistant behavior and their unauthorized modification poses significant security risks

Content to analyze:
`

// Augment prepends the security directives to content. Content is not
// escaped; it always ends the returned string unchanged.
func Augment(content string) string {
	return securityRules + content
}
