/*
Package authsdk provides the HTTP client for the BillPoint authentication
backend.

# Overview

The Client issues the three authentication intents (login, signup, logout)
against a fixed base URL and normalises every possible outcome - success,
rejection, server error, connectivity failure - into an Envelope. Callers
never receive a raw Go error from these operations and never see a panic:
a failed call is an Envelope with Success=false and a human-readable message.

	client := authsdk.NewClient("https://api.billpoint.example")

	env := client.Login(ctx, "a@b.com", "secret")
	if env.Success {
		fmt.Println("welcome,", env.Data.User.Username)
	} else {
		fmt.Println("login failed:", env.Err)
	}

# Envelope semantics

Exactly one of Data and Err is populated, gated by Success. The Message field
always carries a human-readable summary (the backend's own message when it
sent one, a fixed default otherwise).

Error kinds (invalid credentials, validation failure, conflict, server error,
connectivity failure) are distinguishable only by their message strings; no
structured code crosses the Envelope boundary. This mirrors the backend
contract and is a known limitation.

# Status-code policy

	200, 201  success; body decoded, nested "user" object extracted
	400       failure; backend's message, or "Invalid request"
	401       failure; "Invalid email or password" (body ignored)
	409       failure; "Email already exists" (signup only)
	other     failure; operation-specific generic message

Transport errors and malformed bodies are absorbed the same way: logged,
converted to a connectivity failure Envelope, never rethrown.

Each call is a single attempt. There is no retry, backoff or caching; a
failure is terminal for that invocation and the caller decides whether to
try again.

# User payloads

The backend's user object is decoded leniently: alternate key spellings
(id/_id, username/userName, phoneNumber/phone, profileImage/avatar) are
accepted, unknown keys are ignored, and absent optional fields become empty
strings rather than errors. See UserRecord.
*/
package authsdk
