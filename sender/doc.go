// Package sender delivers text notifications to one predetermined Telegram
// chat.
//
// # Features
//
//   - Credential validation at construction; no half-built client
//   - Message sanitization (length cap, line endings, trimming)
//   - Minimum spacing between requests, safe for concurrent callers
//   - Circuit breaker around the Bot API call
//   - Outcomes returned as data, never as errors
//
// # Usage
//
//	cfg, err := sender.LoadConfig(".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := sender.NewFromConfig(*cfg, sender.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res := client.Send(ctx, "<b>deploy finished</b>", tg.ParseModeHTML)
//	if !res.Success {
//	    log.Printf("notify failed: %s", res.Detail)
//	}
//
// Construct one Client per recipient and share it; its throttle only spaces
// requests issued through that instance.
package sender
