// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package service runs survey and submission operations as single transactions
// over db.Store, applying the rules from package integrity. Errors are
// *apperr.Error values ready for middleware.WriteError.
package service
