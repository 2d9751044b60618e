// Package tg holds the Telegram-facing value types shared by the teleping
// packages: the redacting SecretToken, ParseMode and the sentinel errors.
package tg
