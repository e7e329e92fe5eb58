// Package sanitizer normalizes admin input before validation and storage.
//
// All functions are idempotent and never fail: input that cannot be
// normalized comes back empty (or unchanged where noted) and is left for the
// validator to reject.
//
// Normalization includes:
//   - Phone numbers: E.164, parsed against a default region
//   - Emails: trimmed and lower-cased
//   - Names and descriptions: whitespace collapsed and trimmed
//   - Tower and unit codes: whitespace removed, upper-cased
//   - URLs: https enforced, host lower-cased, tracking parameters dropped
//   - Booking references: trimmed and upper-cased
package sanitizer
