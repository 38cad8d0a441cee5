// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package users stores accounts in the key-value store under two keys,
// user:<lowercased name> and userId:<id>, both holding the same JSON record.
package users
