package consts

import "fmt"

// User-facing chat texts
const (
	WelcomeMessage      = "Welcome to the bot! 🚀"
	InvalidInputMessage = "Invalid input! Please send a valid link."
	UnsupportedMessage  = "Unsupported media type!"
)

// HTTP response bodies
const (
	ResponseNoMessage         = "No message found"
	ResponseUpdateHandled     = "Update handled"
	ResponseProcessingStarted = "File processing initiated"
	ResponseMissingParams     = "Missing 'link' or 'userid' parameter"
	ResponseInvalidUserID     = "Invalid 'userid' parameter"
	ResponseLiveness          = "Telegram media relay is running!"
	ResponseShuttingDown      = "Service is shutting down"
)

// UploadFailedMessage is sent when the media could not be fetched or uploaded
func UploadFailedMessage(link string) string {
	return fmt.Sprintf("The file could not be uploaded to Telegram. Download it here: %s", link)
}

// ProcessingFailedMessage is sent when the link itself could not be processed
func ProcessingFailedMessage(link string) string {
	return fmt.Sprintf("The file could not be processed. Download it here: %s", link)
}
