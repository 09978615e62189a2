// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch translates user input into webhook exchanges.
//
// Each input kind maps to exactly one outbound request shape and one
// response-handling strategy:
//
//	plain text        JSON {message}          streamed into the placeholder
//	file upload       multipart file+message  JSON, shown as a notification
//	image analysis    multipart image+text    JSON results array or message
//	image generation  JSON {text}             binary, saved and attached
//	voice             JSON {text}/multipart   binary or JSON audio reference
//	tool invocation   JSON {prompt}           JSON output (image tool: binary)
//
// The per-session state machine is idle -> in-flight -> idle; while an
// exchange is in flight further sends for that session are rejected
// with ErrBusy. Transport and decode failures never escape: the pending
// placeholder always resolves to the fixed error text.
package dispatch
