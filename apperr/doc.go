// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error taxonomy shared by the services and handlers.

Each kind maps to one HTTP status:

	ErrValidation     400  malformed or missing input
	ErrPhase          400  operation invalid for the board's current status
	ErrQuotaExceeded  400  vote budget exhausted
	ErrAuth           401  bad credentials or missing session
	ErrForbidden      403  not the author / not the board creator
	ErrNotFound       404  board or item absent
	ErrConflict       409  duplicate username or lost concurrent update
	ErrInternal       500  anything else

Domain errors carry a user-facing message:

	return apperr.New(apperr.ErrQuotaExceeded, "You have used all your votes")

Errors that are not domain errors are reported to clients as
"Internal server error" and logged server-side.
*/
package apperr
