// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth validates admin credentials.

# Admin Key

The admin API is guarded by a single shared key taken from ADMIN_KEY.
Clients send it in the X-Admin-Key header:

	if err := auth.ValidateAdminKey(r.Header.Get(auth.AdminKeyHeader), cfg.AdminKey); err != nil {
		// 401
	}

Both values are hashed with SHA-256 and compared with hmac.Equal, so the
comparison takes the same time whatever the key length.

# Errors

	ErrMissingAdminKey - header absent or blank
	ErrInvalidAdminKey - key does not match, or no key is configured
*/
package auth
