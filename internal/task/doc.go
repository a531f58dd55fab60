// Package task defines the task variants the assistant tracks.
//
// A Task is a tagged variant over three kinds:
//
//   - KindTodo: a plain description.
//   - KindDeadline: a description and a "by" timestamp.
//   - KindEvent: a description and a "from"/"to" time span.
//
// Every task also carries a completion flag, which starts false.
//
// # Display Format
//
// String renders the bracketed form shown to the user:
//
//	[T][ ] read book
//	[D][X] submit report (by: Dec 02 2023, 06:00 PM)
//	[E][ ] trip (from: Jan 01 2024, 09:00 AM to: Jan 01 2024, 05:00 PM)
//
// # Time Layouts
//
// The same instant has three independent textual forms:
//
//   - InputLayout ("d/M/yyyy HHmm"), typed by the user
//   - StorageLayout (ISO local date-time), written to the data file
//   - DisplayLayout ("MMM dd yyyy, hh:mm a"), shown to the user
//
// All times are naive wall-clock values carried in time.UTC, so no local
// zone rule (such as a DST gap) can shift them. No zone is stored.
package task
