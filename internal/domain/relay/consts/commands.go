// Package consts contains constants for the relay domain
package consts

// Bot commands
const (
	CommandStart = "/start"
)

// Request triggers
const (
	TriggerWebhook = "webhook"
	TriggerDirect  = "direct"
	TriggerCLI     = "cli"
)
