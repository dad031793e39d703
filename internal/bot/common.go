package bot

import "strings"

// firstNonEmpty picks the message body the classifier should see: transports
// carry text in several fields (plain body, captions) and only one is set.
func firstNonEmpty(fields ...string) string {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return f
		}
	}
	return ""
}

// splitConversationID splits "provider:chat" into its parts.
func splitConversationID(id string) (provider, chat string) {
	parts := strings.SplitN(id, ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}

// maxMediaSize is the maximum size for media attachments (20MB).
const maxMediaSize = 20 * 1024 * 1024
