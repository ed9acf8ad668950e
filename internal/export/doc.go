// Package export renders the patient record set into portable
// interchange formats: RFC 4180 delimited text and a pretty-printed
// structured JSON document, plus the save-bytes-to-a-named-file
// primitive the CLI uses to land an export on disk.
//
// Output is deterministic given the store contents and the injected
// clock, which is what lets the golden-file tests pin both formats
// byte-for-byte.
package export
