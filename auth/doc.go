// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the pre-shared key sent by join helpers.

# Pre-shared Keys

Callers prove they may approve devices by sending the helper_psk configured
in JOIN_HELPER_PSK. The check is exact string equality:

	if err := auth.ValidatePSK(req.HelperPSK, cfg.HelperPSK); err != nil {
		// err is ErrInvalidPSK; answer 403 Invalid helper_psk
	}

The comparison runs in constant time over SHA-256 digests of both values, so
response timing reveals neither a matching prefix nor the key length.

CheckPSK is the boolean form ValidatePSK is built on:

	ok := auth.CheckPSK(got, want)
*/
package auth
