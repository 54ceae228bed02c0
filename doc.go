/*
quickbooksrelay v0.1.0

Summary:

quickbooksrelay is a thin http relay between a caller and the
QuickBooks Online accounting API. The server performs the OAuth2
authorization-code exchange against Intuit's identity service, stores
one set of session tokens in a flat JSON file, and forwards a handful
of read and write calls (company info, customers, invoice creation,
transaction report) to the upstream API, unwrapping JSON responses
minimally.

After following the Intuit OAuth2 flow via the /auth and /callback
endpoints, the relay attaches the session's bearer token to each
upstream call. Tokens are refreshed on demand using the refresh token;
the relay holds exactly one active session at a time.

This software is provided under an MIT licence, with no warranty.
*/

package main
