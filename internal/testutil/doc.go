// Package testutil provides testing utilities for teleping.
//
// This package is intended for internal testing only and should not be imported
// by external packages.
//
// # Mock Telegram Server
//
// MockTelegramServer provides a mock Telegram Bot API server for testing.
// Unhandled requests get a delivered-message reply with a fresh message ID.
//
//	server := testutil.NewMockServer(t)
//	server.OnSend(func(w http.ResponseWriter, r *http.Request) {
//	    testutil.ReplyStatus(w, http.StatusBadGateway, "Bad Gateway")
//	})
//	client := testutil.NewTestClient(t, server.BaseURL())
//
// # Request Capture
//
// All requests are automatically captured and can be inspected:
//
//	cap := server.LastCapture()
//	cap.AssertMethod(t, "POST")
//	cap.AssertFormField(t, "chat_id", testutil.TestChatID)
//	cap.AssertFormFieldAbsent(t, "parse_mode")
package testutil
