package testutil

// Test constants for consistent test data.
const (
	// TestToken is a valid-format bot token for testing.
	TestToken = "123456789:ABCdefGHIjklMNOpqrsTUVwxyz"

	// TestChatID is a test chat ID.
	TestChatID = "987654321"

	// SendPath is the sendMessage path for TestToken.
	SendPath = "/bot" + TestToken + "/sendMessage"
)

// MessageResult returns a sendMessage result object.
func MessageResult(messageID int) map[string]any {
	return map[string]any{
		"message_id": messageID,
		"date":       1234567890,
		"chat": map[string]any{
			"id":   987654321,
			"type": "private",
		},
		"text": "Test message",
	}
}
